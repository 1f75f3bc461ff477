package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rag-admin/rag-admin/internal/observability"
	"github.com/rag-admin/rag-admin/internal/platform/httpx"
	"github.com/rag-admin/rag-admin/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	tokens    *TokenIssuer
	csrf      *shared.CSRFManager
	metrics   *observability.Metrics
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, tokens *TokenIssuer, csrf *shared.CSRFManager, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		tokens:    tokens,
		csrf:      csrf,
		metrics:   metrics,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User      Identity `json:"user"`
	Token     string   `json:"token,omitempty"`
	CSRFToken string   `json:"csrf_token,omitempty"`
}

// issueCSRF primes the session-bound CSRF token and hands it to the client in
// both the response header and, on login, the body. Mutating cookie-session
// requests must echo it back in the same header.
func (h *Handler) issueCSRF(w http.ResponseWriter, r *http.Request) string {
	if h.csrf == nil {
		return ""
	}
	sess := shared.SessionFromContext(r.Context())
	token, err := h.csrf.EnsureToken(r.Context(), sess)
	if err != nil {
		return ""
	}
	w.Header().Set(shared.CSRFHeader, token)
	return token
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "login and password are required")
		return
	}

	store := StoreFromContext(r.Context())
	if store == nil {
		h.logger.Error("session store missing during login")
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	ident, err := store.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.metrics.ObserveLogin("failure")
		// One generic message whatever went wrong.
		httpx.Problem(w, http.StatusUnauthorized, "Login Failed", "wrong username or password")
		return
	}
	h.metrics.ObserveLogin("success")

	resp := loginResponse{User: ident, CSRFToken: h.issueCSRF(w, r)}
	if h.tokens != nil {
		token, err := h.tokens.Generate(ident)
		if err != nil {
			h.logger.Warn("generate token", slog.Any("error", err))
		} else {
			resp.Token = token
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())
	if store != nil {
		store.Logout(r.Context())
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromContext(r.Context())
	if ident == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	// A returning browser session picks its CSRF token back up here.
	h.issueCSRF(w, r)
	httpx.JSON(w, http.StatusOK, ident)
}
