package users

import (
	"context"
	"sync"

	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/rbac"
	"github.com/rag-admin/rag-admin/internal/shared"
)

// Profile is a user's mutable presentation data. The directory itself is
// immutable, so edits live in an overlay keyed by user ID.
type Profile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Service exposes the user directory plus per-user profile overlays.
type Service struct {
	dir *auth.Directory

	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewService builds a Service over the seeded directory.
func NewService(dir *auth.Directory) *Service {
	return &Service{dir: dir, profiles: make(map[string]Profile)}
}

// List returns every directory identity with profile overlays applied.
func (s *Service) List(ctx context.Context) ([]auth.Identity, error) {
	idents := s.dir.Identities()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, ident := range idents {
		idents[i] = s.overlay(ident)
	}
	return idents, nil
}

// Get returns one identity by ID.
func (s *Service) Get(ctx context.Context, id string) (auth.Identity, error) {
	cred, ok := s.dir.FindByID(id)
	if !ok {
		return auth.Identity{}, shared.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay(cred.Identity), nil
}

// UpdateProfile stores the profile overlay for the given user and returns the
// merged identity.
func (s *Service) UpdateProfile(ctx context.Context, id string, profile Profile) (auth.Identity, error) {
	cred, ok := s.dir.FindByID(id)
	if !ok {
		return auth.Identity{}, shared.ErrNotFound
	}
	s.mu.Lock()
	s.profiles[id] = profile
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay(cred.Identity), nil
}

// Permissions returns the permission strings granted to the identity's role.
func (s *Service) Permissions(ident *auth.Identity) []string {
	if ident == nil {
		return nil
	}
	return rbac.PermissionsFor(ident.Role)
}

// overlay must be called with at least a read lock held.
func (s *Service) overlay(ident auth.Identity) auth.Identity {
	p, ok := s.profiles[ident.ID]
	if !ok {
		return ident
	}
	if p.Name != "" {
		ident.Name = p.Name
	}
	if p.Avatar != "" {
		ident.Avatar = p.Avatar
	}
	return ident
}
