package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/user-api/internal/api/shared"
	"github.com/phrazzld/user-api/internal/domain"
	"github.com/phrazzld/user-api/internal/platform/logger"
	"github.com/phrazzld/user-api/internal/redact"
	"github.com/phrazzld/user-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// A taken email is reported as a bad request, not a conflict.
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return MsgInternalError
	case errors.Is(err, store.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, store.ErrEmailExists):
		return MsgEmailExists
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return MsgFieldsMalformed
	default:
		return MsgInternalError
	}
}

// HandleAPIError writes the error envelope for err. Only 500 responses carry
// an "error" detail, and it is redacted first.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	var detail any
	if status >= http.StatusInternalServerError {
		redacted := redact.Error(err)
		detail = redacted
		log.Error("request failed",
			"error", redacted,
			"path", r.URL.Path,
			"method", r.Method)
	} else {
		log.Debug("request rejected",
			"error", err,
			"status_code", status)
	}

	shared.RespondWithError(w, r, status, message, detail)
}
