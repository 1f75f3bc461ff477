package prompts

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

// Handler wires HTTP endpoints for prompt templates.
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

// MountRoutes registers prompt routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(shared.PermPromptsRead))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Get("/{id}/versions", h.versions)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(shared.PermPromptsWrite))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Post("/{id}/publish", h.publish)
		r.Post("/{id}/rollback", h.rollback)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(shared.PermPromptsDelete))
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("limit"))
	result, err := h.service.List(r.Context(), ListFilter{
		Page:     page,
		PerPage:  perPage,
		Category: q.Get("category"),
		Status:   Status(q.Get("status")),
		Search:   q.Get("search"),
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

type promptPayload struct {
	Title     string     `json:"title" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	Variables []Variable `json:"variables"`
	Category  string     `json:"category" validate:"required"`
	Tags      []string   `json:"tags"`
	Status    Status     `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload promptPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	actor := actorName(r)
	p := Prompt{
		Title:     payload.Title,
		Content:   payload.Content,
		Variables: payload.Variables,
		Category:  payload.Category,
		Tags:      payload.Tags,
		Status:    payload.Status,
		AuthorID:  actorID(r),
	}
	created, err := h.service.Create(r.Context(), actor, p)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var payload promptPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p := Prompt{
		ID:        chi.URLParam(r, "id"),
		Title:     payload.Title,
		Content:   payload.Content,
		Variables: payload.Variables,
		Category:  payload.Category,
		Tags:      payload.Tags,
		Status:    payload.Status,
	}
	updated, err := h.service.Update(r.Context(), actorName(r), p)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	published, err := h.service.Publish(r.Context(), actorName(r), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, published)
}

func (h *Handler) versions(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string][]Version{"versions": records})
}

type rollbackPayload struct {
	Version int `json:"version" validate:"required,gte=1"`
}

func (h *Handler) rollback(w http.ResponseWriter, r *http.Request) {
	var payload rollbackPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	restored, err := h.service.Rollback(r.Context(), actorName(r), chi.URLParam(r, "id"), payload.Version)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, restored)
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

func actorID(r *http.Request) string {
	if ident := auth.IdentityFromContext(r.Context()); ident != nil {
		return ident.ID
	}
	return ""
}
