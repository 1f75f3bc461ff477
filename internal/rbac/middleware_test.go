package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/rbac"
	"github.com/rag-admin/rag-admin/internal/shared"
	_ "github.com/rag-admin/rag-admin/testing"
)

func newGuardedRouter(perm string) http.Handler {
	guard := rbac.Middleware{}
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(perm))
		r.Get("/api/resource", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func TestGuardAllows(t *testing.T) {
	router := newGuardedRouter(shared.PermPromptsRead)
	req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
	ident := &auth.Identity{ID: "5", Role: auth.RoleViewer}
	req = req.WithContext(auth.ContextWithIdentity(req.Context(), ident))

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestGuardDeniesWithMissingRequirement(t *testing.T) {
	router := newGuardedRouter(shared.PermOfficialsSync)
	req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
	ident := &auth.Identity{ID: "5", Role: auth.RoleViewer}
	req = req.WithContext(auth.ContextWithIdentity(req.Context(), ident))

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), shared.PermOfficialsSync) {
		t.Fatalf("denied response must name the missing requirement: %s", res.Body.String())
	}
}

func TestGuardUnauthenticatedAPIGets401(t *testing.T) {
	router := newGuardedRouter(shared.PermPromptsRead)
	req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for API request, got %d", res.Code)
	}
}

func TestGuardUnauthenticatedBrowserRedirects(t *testing.T) {
	guard := rbac.Middleware{}
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(guard.RequirePermission(shared.PermPromptsRead))
		r.Get("/dashboard", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/auth/login" {
		t.Fatalf("expected redirect to /auth/login, got %q", loc)
	}
}
