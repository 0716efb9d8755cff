package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/phrazzld/user-api/internal/platform/logger"
)

// AccessLog appends one line per request to a writer, usually a file:
//
//	2024-05-01T10:00:00Z - GET /users?x=1
//
// Writes are serialized so concurrent requests never interleave lines.
type AccessLog struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	logger *slog.Logger
	now    func() time.Time
}

// OpenAccessLog opens path for appending, creating it if missing.
func OpenAccessLog(path string, log *slog.Logger) (*AccessLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open access log %s: %w", path, err)
	}
	a := NewAccessLog(f, log)
	a.closer = f
	return a, nil
}

// NewAccessLog writes access lines to out.
func NewAccessLog(out io.Writer, log *slog.Logger) *AccessLog {
	if log == nil {
		log = slog.Default()
	}
	return &AccessLog{
		out:    out,
		logger: log.With("component", "access_log"),
		now:    time.Now,
	}
}

// Middleware records the request and always passes it on, even when the
// write fails.
func (a *AccessLog) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		line := fmt.Sprintf("%s - %s %s\n",
			a.now().UTC().Format(time.RFC3339), r.Method, r.URL.RequestURI())

		if err := a.write(line); err != nil {
			logger.FromContextOrDefault(r.Context(), a.logger).
				Error("failed to write access log", "error", err)
		}

		next.ServeHTTP(w, r)
	})
}

func (a *AccessLog) write(line string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := io.WriteString(a.out, line)
	return err
}

// Close closes the underlying file when the log was opened by OpenAccessLog.
func (a *AccessLog) Close() error {
	if a.closer == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closer.Close()
}
