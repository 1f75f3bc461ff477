package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/rag-admin/rag-admin/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	dir *Directory
}

// NewService constructs a new Service over the credential directory.
func NewService(dir *Directory) *Service {
	return &Service{dir: dir}
}

// Authenticate validates a username-or-email plus secret pair. Every failure
// mode collapses into shared.ErrInvalidCredentials so callers cannot learn
// which half of the pair was wrong. The lookup has no side effects.
func (s *Service) Authenticate(ctx context.Context, login, secret string) (Identity, error) {
	rec, ok := s.dir.FindByLogin(login)
	if !ok {
		// Burn a comparison anyway so the miss path costs the same.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(secret))
		return Identity{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(secret)); err != nil {
		return Identity{}, shared.ErrInvalidCredentials
	}
	return rec.Identity, nil
}

// Lookup resolves an identity by ID, used when re-validating bearer tokens.
func (s *Service) Lookup(ctx context.Context, id string) (Identity, error) {
	rec, ok := s.dir.FindByID(id)
	if !ok {
		return Identity{}, shared.ErrNotFound
	}
	return rec.Identity, nil
}

// dummyHash is a bcrypt hash of an unguessable throwaway value, compared
// against when the login does not resolve to a directory entry.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
