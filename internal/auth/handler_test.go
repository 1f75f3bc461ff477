package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rag-admin/rag-admin/internal/auth"
	_ "github.com/rag-admin/rag-admin/testing"
)

func newLoginRouter(t *testing.T) (http.Handler, *auth.SessionStore) {
	t.Helper()
	store, _ := newTestStore(t)
	store.Initialize(context.Background())

	issuer, err := auth.NewTokenIssuer("handler-secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	handler := auth.NewHandler(nil, issuer, nil, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.ContextWithStore(req.Context(), store)))
		})
	})
	r.Route("/api/auth", handler.MountRoutes)
	return r, store
}

func TestLoginSuccessReturnsIdentityAndToken(t *testing.T) {
	router, store := newLoginRouter(t)

	body := strings.NewReader(`{"login":"admin","password":"admin123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp struct {
		User  auth.Identity `json:"user"`
		Token string        `json:"token"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.Username != "admin" || resp.User.Role != auth.RoleAdmin {
		t.Fatalf("unexpected user %+v", resp.User)
	}
	if resp.Token == "" {
		t.Fatalf("expected bearer token in response")
	}
	if !store.IsAuthenticated() {
		t.Fatalf("expected session store authenticated after login")
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	router, _ := newLoginRouter(t)

	for _, body := range []string{
		`{"login":"admin","password":"wrong"}`,
		`{"login":"ghost","password":"admin123"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", res.Code)
		}
		if !strings.Contains(res.Body.String(), "wrong username or password") {
			t.Fatalf("expected generic failure message, got %s", res.Body.String())
		}
	}
}

func TestLoginValidatesPayload(t *testing.T) {
	router, _ := newLoginRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"login":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", res.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	router, store := newLoginRouter(t)

	if _, err := store.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	if store.IsAuthenticated() {
		t.Fatalf("expected store emptied after logout")
	}
}

func TestMeRequiresIdentity(t *testing.T) {
	router, store := newLoginRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", res.Code)
	}

	if _, err := store.Login(context.Background(), "viewer1", "viewer123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 with identity, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "viewer1") {
		t.Fatalf("expected identity in body, got %s", res.Body.String())
	}
}
