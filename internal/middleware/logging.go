package middleware

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecofly/radar/internal/logging"
)

// maxLoggedBody caps how much of an error response is kept for the log line.
const maxLoggedBody = 512

type respLogger struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (l *respLogger) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (l *respLogger) Write(b []byte) (int, error) {
	if l.status >= http.StatusBadRequest && l.buf.Len() < maxLoggedBody {
		room := maxLoggedBody - l.buf.Len()
		if len(b) < room {
			room = len(b)
		}
		l.buf.Write(b[:room])
	}
	return l.ResponseWriter.Write(b)
}

// ErrorLogging logs the body of every 4xx/5xx response at warn level.
// Successful responses are left to MetricsMiddleware.
func ErrorLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lw := &respLogger{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)
		if lw.status < http.StatusBadRequest {
			return
		}

		routePattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}
		logging.WithRequest(RequestIDFromContext(r.Context()), r.Method, routePattern).Warnw(
			"HTTP request failed",
			"status_code", lw.status,
			"body", lw.buf.String(),
		)
	})
}
