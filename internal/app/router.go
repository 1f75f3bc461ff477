package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/rag-admin/rag-admin/internal/audit"
	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/knowledge"
	"github.com/rag-admin/rag-admin/internal/observability"
	"github.com/rag-admin/rag-admin/internal/officials"
	"github.com/rag-admin/rag-admin/internal/prompts"
	"github.com/rag-admin/rag-admin/internal/shared"
	"github.com/rag-admin/rag-admin/internal/users"
	"github.com/rag-admin/rag-admin/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Redis          *redis.Client
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	AuthService    *auth.Service
	TokenIssuer    *auth.TokenIssuer
	Metrics        *observability.Metrics

	AuthHandler      *auth.Handler
	PromptsHandler   *prompts.Handler
	OfficialsHandler *officials.Handler
	KnowledgeHandler *knowledge.Handler
	AuditHandler     *audit.Handler
	UsersHandler     *users.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		Redis:          params.Redis,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		AuthService:    params.AuthService,
		TokenIssuer:    params.TokenIssuer,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/prompts", params.PromptsHandler.MountRoutes)
		r.Route("/officials", params.OfficialsHandler.MountRoutes)
		r.Route("/knowledge", params.KnowledgeHandler.MountRoutes)
		r.Route("/audit", params.AuditHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
