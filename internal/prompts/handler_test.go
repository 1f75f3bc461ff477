package prompts_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/prompts"
	"github.com/rag-admin/rag-admin/internal/rbac"
	_ "github.com/rag-admin/rag-admin/testing"
)

func newPromptsRouter(t *testing.T, ident *auth.Identity) http.Handler {
	t.Helper()
	svc := prompts.NewService(prompts.NewMemoryRepository(prompts.DefaultSeeds()), nil, nil)
	handler := prompts.NewHandler(nil, svc, rbac.Middleware{})

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.ContextWithIdentity(req.Context(), ident)))
		})
	})
	r.Route("/api/prompts", handler.MountRoutes)
	return r
}

func TestViewerCanListButNotCreate(t *testing.T) {
	viewer := &auth.Identity{ID: "5", Username: "viewer1", Role: auth.RoleViewer}
	router := newPromptsRouter(t, viewer)

	req := httptest.NewRequest(http.MethodGet, "/api/prompts/", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for viewer list, got %d", res.Code)
	}

	body := strings.NewReader(`{"title":"t","content":"c","category":"x"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/prompts/", body)
	req.Header.Set("Content-Type", "application/json")
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer create, got %d", res.Code)
	}
}

func TestEditorCreateValidates(t *testing.T) {
	editor := &auth.Identity{ID: "2", Username: "editor1", Role: auth.RoleEditor}
	router := newPromptsRouter(t, editor)

	req := httptest.NewRequest(http.MethodPost, "/api/prompts/", strings.NewReader(`{"title":"only"}`))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete payload, got %d", res.Code)
	}

	body := strings.NewReader(`{"title":"t","content":"c","category":"x"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/prompts/", body)
	req.Header.Set("Content-Type", "application/json")
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), `"author_id":"2"`) {
		t.Fatalf("expected author stamped from identity, got %s", res.Body.String())
	}
}

func TestVersionRoutesFollowPermissionSplit(t *testing.T) {
	viewer := &auth.Identity{ID: "5", Username: "viewer1", Role: auth.RoleViewer}
	router := newPromptsRouter(t, viewer)

	req := httptest.NewRequest(http.MethodGet, "/api/prompts/1/versions", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for viewer version history, got %d: %s", res.Code, res.Body.String())
	}

	body := strings.NewReader(`{"version":1}`)
	req = httptest.NewRequest(http.MethodPost, "/api/prompts/1/rollback", body)
	req.Header.Set("Content-Type", "application/json")
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer rollback, got %d", res.Code)
	}
}

func TestEditorCannotDelete(t *testing.T) {
	editor := &auth.Identity{ID: "2", Username: "editor1", Role: auth.RoleEditor}
	router := newPromptsRouter(t, editor)

	req := httptest.NewRequest(http.MethodDelete, "/api/prompts/1", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for editor delete, got %d", res.Code)
	}
}
