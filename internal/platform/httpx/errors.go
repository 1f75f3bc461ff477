package httpx

import (
	"errors"
	"net/http"

	"github.com/rag-admin/rag-admin/internal/shared"
)

// RespondError maps domain errors to HTTP problem responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Invalid Credentials", "wrong username or password")
	case errors.Is(err, shared.ErrSyncInProgress):
		Problem(w, http.StatusConflict, "Sync In Progress", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
