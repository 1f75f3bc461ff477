package rbac

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/platform/httpx"
)

// Middleware is the HTTP form of the guarded-rendering contract: it maps the
// pure access decision onto responses for protected routes.
type Middleware struct {
	Logger *slog.Logger
}

// Require guards a route with the given requirement.
func (m Middleware) Require(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := auth.IdentityFromContext(r.Context())
			restoring := false
			if store := auth.StoreFromContext(r.Context()); store != nil && ident == nil {
				restoring = store.Restoring()
			}

			access := Decide(ident, restoring, req)
			switch access.State {
			case StateAllowed:
				next.ServeHTTP(w, r)
			case StateRestoring:
				// Transient, auto-resolving: not the denied view.
				w.Header().Set("Retry-After", "1")
				httpx.Problem(w, http.StatusServiceUnavailable, "Verifying Identity", "session restore in progress")
			case StateUnauthenticated:
				if isAPIRequest(r) {
					httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
					return
				}
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			case StateDenied:
				if m.Logger != nil {
					m.Logger.Warn("access denied",
						slog.String("path", r.URL.Path),
						slog.String("missing", access.Missing))
				}
				httpx.Problem(w, http.StatusForbidden, "Access Denied", "missing requirement: "+access.Missing)
			}
		})
	}
}

// RequirePermission guards a route with a single permission.
func (m Middleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return m.Require(Requirement{Permission: permission})
}

// RequireRole guards a route with a role check.
func (m Middleware) RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return m.Require(Requirement{Roles: roles})
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
