package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/shared"
	_ "github.com/rag-admin/rag-admin/testing"
)

func newTestStore(t *testing.T) (*auth.SessionStore, auth.Storage) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	storage := auth.NewRedisStorage(client, "sess-1", time.Hour)
	dir, err := auth.NewDirectory(auth.DefaultSeeds())
	if err != nil {
		t.Fatalf("build directory: %v", err)
	}
	return auth.NewSessionStore(storage, auth.NewService(dir), nil), storage
}

func TestStoreLoginPersistsIdentity(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()
	store.Initialize(ctx)

	if store.IsAuthenticated() {
		t.Fatalf("fresh store must start unauthenticated")
	}

	ident, err := store.Login(ctx, "editor1", "editor123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if ident.Role != auth.RoleEditor {
		t.Fatalf("expected editor role, got %s", ident.Role)
	}
	if got := store.Current(); got == nil || got.ID != ident.ID {
		t.Fatalf("expected current identity %s", ident.ID)
	}

	raw, err := storage.Get(ctx, auth.StorageKey)
	if err != nil {
		t.Fatalf("read persisted identity: %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("expected persisted identity payload")
	}
}

func TestStoreRestoreAcrossInstances(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()
	store.Initialize(ctx)
	if _, err := store.Login(ctx, "viewer1", "viewer123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	dir, err := auth.NewDirectory(auth.DefaultSeeds())
	if err != nil {
		t.Fatalf("build directory: %v", err)
	}
	restored := auth.NewSessionStore(storage, auth.NewService(dir), nil)
	if !restored.Restoring() {
		t.Fatalf("expected restoring before Initialize")
	}
	restored.Initialize(ctx)
	if restored.Restoring() {
		t.Fatalf("expected restoring to resolve after Initialize")
	}

	ident := restored.Current()
	if ident == nil || ident.Username != "viewer1" {
		t.Fatalf("expected viewer1 restored, got %+v", ident)
	}
}

func TestStoreInitializeDeletesMalformedEntry(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()

	if err := storage.Set(ctx, auth.StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("plant malformed entry: %v", err)
	}

	store.Initialize(ctx)
	if store.IsAuthenticated() {
		t.Fatalf("malformed entry must not authenticate")
	}
	if _, err := storage.Get(ctx, auth.StorageKey); !errors.Is(err, auth.ErrNoIdentity) {
		t.Fatalf("expected malformed entry deleted, got %v", err)
	}
}

func TestStoreInitializeRejectsUnknownRole(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()

	payload := []byte(`{"id":"1","username":"admin","email":"admin@rag.com","role":"superuser","name":"x"}`)
	if err := storage.Set(ctx, auth.StorageKey, payload); err != nil {
		t.Fatalf("plant entry: %v", err)
	}

	store.Initialize(ctx)
	if store.IsAuthenticated() {
		t.Fatalf("entry with unknown role must not authenticate")
	}
	if _, err := storage.Get(ctx, auth.StorageKey); !errors.Is(err, auth.ErrNoIdentity) {
		t.Fatalf("expected invalid entry deleted, got %v", err)
	}
}

func TestStoreLoginFailureLeavesSessionIntact(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	store.Initialize(ctx)

	if _, err := store.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := store.Login(ctx, "admin", "wrong"); !errors.Is(err, shared.ErrInvalidCredentials) {
		t.Fatalf("expected generic credential error, got %v", err)
	}
	if ident := store.Current(); ident == nil || ident.Username != "admin" {
		t.Fatalf("failed login must not clear the existing session")
	}
}

func TestStoreLogoutIdempotent(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()
	store.Initialize(ctx)

	if _, err := store.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	store.Logout(ctx)
	if store.IsAuthenticated() {
		t.Fatalf("expected empty session after logout")
	}
	if _, err := storage.Get(ctx, auth.StorageKey); !errors.Is(err, auth.ErrNoIdentity) {
		t.Fatalf("expected persisted identity removed, got %v", err)
	}

	// A second logout on an empty session is a no-op.
	store.Logout(ctx)
	if store.IsAuthenticated() {
		t.Fatalf("expected session to stay empty")
	}
}
