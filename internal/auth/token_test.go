package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rag-admin/rag-admin/internal/auth"
	_ "github.com/rag-admin/rag-admin/testing"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	ident := auth.Identity{ID: "1", Username: "admin", Role: auth.RoleAdmin}
	token, err := issuer.Generate(ident)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "1" || claims.Role != auth.RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	other, err := auth.NewTokenIssuer("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Generate(auth.Identity{ID: "1", Role: auth.RoleViewer})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.Parse(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
	if _, err := issuer.Parse(""); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected invalid token error for empty token, got %v", err)
	}
}

func TestTokenRejectsTampering(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, err := issuer.Generate(auth.Identity{ID: "1", Role: auth.RoleViewer})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := issuer.Parse(token + "x"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected tampered token rejection, got %v", err)
	}
}
