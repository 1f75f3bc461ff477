package auth_test

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/rag-admin/rag-admin/internal/auth"
	_ "github.com/rag-admin/rag-admin/testing"
)

func TestDefaultSeedsDirectory(t *testing.T) {
	dir, err := auth.NewDirectory(auth.DefaultSeeds())
	if err != nil {
		t.Fatalf("build directory: %v", err)
	}

	idents := dir.Identities()
	if len(idents) != 5 {
		t.Fatalf("expected 5 identities, got %d", len(idents))
	}

	cred, ok := dir.FindByLogin("admin")
	if !ok {
		t.Fatalf("admin not found by username")
	}
	if cred.Role != auth.RoleAdmin {
		t.Fatalf("expected admin role, got %s", cred.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte("admin123")); err != nil {
		t.Fatalf("expected seeded hash to verify admin123: %v", err)
	}
}

func TestFindByLoginEmailAlias(t *testing.T) {
	dir, err := auth.NewDirectory(auth.DefaultSeeds())
	if err != nil {
		t.Fatalf("build directory: %v", err)
	}

	byName, ok := dir.FindByLogin("editor1")
	if !ok {
		t.Fatalf("editor1 not found by username")
	}
	byEmail, ok := dir.FindByLogin(byName.Email)
	if !ok {
		t.Fatalf("editor1 not found by email %q", byName.Email)
	}
	if byEmail.ID != byName.ID {
		t.Fatalf("username and email lookups resolved different users")
	}

	if _, ok := dir.FindByLogin("EDITOR1"); ok {
		t.Fatalf("login matching must be exact, not case-folded")
	}
}

func TestNewDirectoryRejectsDuplicates(t *testing.T) {
	seeds := auth.DefaultSeeds()
	seeds = append(seeds, seeds[0])
	if _, err := auth.NewDirectory(seeds); err == nil {
		t.Fatalf("expected duplicate seed error")
	}
}

func TestServiceAuthenticate(t *testing.T) {
	dir, err := auth.NewDirectory(auth.DefaultSeeds())
	if err != nil {
		t.Fatalf("build directory: %v", err)
	}
	svc := auth.NewService(dir)
	ctx := context.Background()

	ident, err := svc.Authenticate(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("authenticate admin: %v", err)
	}
	if ident.Username != "admin" || ident.Role != auth.RoleAdmin {
		t.Fatalf("unexpected identity %+v", ident)
	}

	if _, err := svc.Authenticate(ctx, "admin", "nope"); err == nil {
		t.Fatalf("expected failure for wrong password")
	}
	if _, err := svc.Authenticate(ctx, "ghost", "admin123"); err == nil {
		t.Fatalf("expected failure for unknown login")
	}
	if _, err := svc.Authenticate(ctx, "viewer1", "viewer456"); err == nil {
		t.Fatalf("expected failure when using another user's password")
	}
}
