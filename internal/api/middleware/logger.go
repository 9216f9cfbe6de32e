package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StructuredLogger writes one access line per request. Client errors log at
// Warn and server errors at Error, so rejected registry operations stand out
// without a debug level.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	logger = logger.With("component", "HTTP")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				attrs := []slog.Attr{
					slog.String("method", r.Method),
					slog.String("route", routePattern(r)),
					slog.String("path", r.URL.Path),
					slog.Int("status", status),
					slog.Duration("latency", time.Since(start)),
					slog.Int("bytes_written", ww.BytesWritten()),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				}
				if id := chi.URLParam(r, "customerID"); id != "" {
					attrs = append(attrs, slog.String("customerID", id))
				}
				if id := chi.URLParam(r, "recordID"); id != "" {
					attrs = append(attrs, slog.String("recordID", id))
				}
				logger.LogAttrs(r.Context(), accessLevel(status), "Request served", attrs...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func accessLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
