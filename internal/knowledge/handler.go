package knowledge

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/platform/httpx"
	"github.com/rag-admin/rag-admin/internal/rbac"
	"github.com/rag-admin/rag-admin/internal/shared"
)

// Handler wires HTTP endpoints for the knowledge base.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     rbac.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard, validator: validator.New()}
}

// MountRoutes registers knowledge routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(shared.PermKnowledgeRead))
		r.Get("/", h.list)
		r.Get("/categories", h.categories)
		r.Get("/search", h.search)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(shared.PermKnowledgeWrite))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(shared.PermKnowledgeDelete))
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("limit"))
	filter := ListFilter{
		Page:     page,
		PerPage:  perPage,
		Type:     ItemType(q.Get("type")),
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if raw := q.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "active must be a boolean")
			return
		}
		filter.Active = &active
	}
	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "q is required")
		return
	}
	result, err := h.service.List(r.Context(), ListFilter{Search: query})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string][]string{"categories": cats})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

type itemPayload struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Type     ItemType `json:"type" validate:"required,oneof=sensitive common_error faq guideline"`
	Keywords []string `json:"keywords"`
	Category string   `json:"category" validate:"required"`
	Severity Severity `json:"severity" validate:"required,oneof=low medium high critical"`
	IsActive bool     `json:"is_active"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), actorName(r), Item{
		Title:    payload.Title,
		Content:  payload.Content,
		Type:     payload.Type,
		Keywords: payload.Keywords,
		Category: payload.Category,
		Severity: payload.Severity,
		IsActive: payload.IsActive,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	updated, err := h.service.Update(r.Context(), actorName(r), Item{
		ID:       chi.URLParam(r, "id"),
		Title:    payload.Title,
		Content:  payload.Content,
		Type:     payload.Type,
		Keywords: payload.Keywords,
		Category: payload.Category,
		Severity: payload.Severity,
		IsActive: payload.IsActive,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorName(r), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func actorName(r *http.Request) string {
	if ident := auth.IdentityFromContext(r.Context()); ident != nil {
		return ident.Username
	}
	return ""
}
