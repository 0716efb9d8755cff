package shared

import (
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/phrazzld/user-api/internal/platform/logger"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	StatusCode int              `json:"statusCode"        example:"200"`
	Message    string           `json:"message"           example:"User found"`
	Data       *json.RawMessage `json:"data,omitempty"`
	Error      any              `json:"error,omitempty"`
	TraceID    string           `json:"traceId,omitempty" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithEnvelope writes a success envelope. A nil data value is omitted;
// an empty slice is written as [].
func RespondWithEnvelope(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	env := Envelope{StatusCode: status, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			RespondWithError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		msg := json.RawMessage(raw)
		env.Data = &msg
	}
	RespondWithJSON(w, r, status, env)
}

// RespondWithError writes an error envelope carrying the request's trace ID.
// detail is placed in the "error" field when non-nil.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, detail any) {
	traceID := GetTraceID(r.Context())

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.Log(r.Context(), level, "sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Envelope{
		StatusCode: status,
		Message:    message,
		Error:      detail,
		TraceID:    traceID,
	})
}
