package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rag-admin/rag-admin/internal/shared"
)

// StorageKey is the fixed logical key an identity is persisted under. The
// storage implementation namespaces it per session.
const StorageKey = "rag_auth_user"

// ErrNoIdentity is returned by Storage when no identity is persisted.
var ErrNoIdentity = errors.New("auth: no stored identity")

// Storage is the durable key-value store behind a SessionStore.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SessionStore owns the session lifecycle: it restores a persisted identity
// on initialization, resolves logins, and clears state on logout. It holds at
// most one identity. Instances are injectable so tests and per-session HTTP
// plumbing can construct isolated stores; all methods are safe for concurrent
// use since the server context is multi-request.
type SessionStore struct {
	storage Storage
	auth    *Service
	logger  *slog.Logger

	initOnce sync.Once
	flight   singleflight.Group

	mu        sync.RWMutex
	identity  *Identity
	restoring bool
}

// NewSessionStore constructs a SessionStore. The store starts empty; callers
// run Initialize before reading it.
func NewSessionStore(storage Storage, auth *Service, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{storage: storage, auth: auth, logger: logger, restoring: true}
}

// Initialize restores a persisted identity from durable storage. A malformed
// payload is deleted and treated as never-logged-in. Exactly one restore pass
// runs per store lifetime; the restoring flag drops once it resolves,
// whatever the outcome.
func (s *SessionStore) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.restoring = false
			s.mu.Unlock()
		}()

		raw, err := s.storage.Get(ctx, StorageKey)
		if err != nil {
			if !errors.Is(err, ErrNoIdentity) {
				s.logger.Warn("session restore read", slog.Any("error", err))
			}
			return
		}

		var ident Identity
		if err := json.Unmarshal(raw, &ident); err != nil || !ident.Role.Valid() || ident.ID == "" {
			s.logger.Warn("discarding malformed stored identity")
			if err := s.storage.Delete(ctx, StorageKey); err != nil {
				s.logger.Warn("delete malformed identity", slog.Any("error", err))
			}
			return
		}

		s.mu.Lock()
		s.identity = &ident
		s.mu.Unlock()
	})
}

// Login authenticates the credential pair and, on success, records the
// identity in the store and in durable storage (secret-stripped). Concurrent
// logins against the same store are single-flighted; every failure, expected
// or not, resolves to shared.ErrInvalidCredentials so the caller surfaces one
// generic message. A failed login leaves the current session untouched.
func (s *SessionStore) Login(ctx context.Context, login, secret string) (Identity, error) {
	v, err, _ := s.flight.Do("login", func() (any, error) {
		ident, err := s.auth.Authenticate(ctx, login, secret)
		if err != nil {
			return Identity{}, shared.ErrInvalidCredentials
		}

		payload, err := json.Marshal(ident)
		if err != nil {
			s.logger.Error("marshal identity", slog.Any("error", err))
			return Identity{}, shared.ErrInvalidCredentials
		}
		if err := s.storage.Set(ctx, StorageKey, payload); err != nil {
			s.logger.Error("persist identity", slog.Any("error", err))
			return Identity{}, shared.ErrInvalidCredentials
		}

		s.mu.Lock()
		s.identity = &ident
		s.mu.Unlock()
		return ident, nil
	})
	if err != nil {
		return Identity{}, err
	}
	return v.(Identity), nil
}

// Logout clears the session and removes the persisted identity. It is
// idempotent: logging out an empty session is a no-op with the same end state.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, StorageKey); err != nil && !errors.Is(err, ErrNoIdentity) {
		s.logger.Warn("remove persisted identity", slog.Any("error", err))
	}
}

// Current returns the live session identity, or nil when empty.
func (s *SessionStore) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	ident := *s.identity
	return &ident
}

// IsAuthenticated reports whether the session holds an identity.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Restoring reports whether the initial restore pass is still unresolved.
func (s *SessionStore) Restoring() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restoring
}
