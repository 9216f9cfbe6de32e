package middleware

import (
	"net/http"
	"time"
	"xyzbank/internal/infrastructure/monitoring"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const unmatchedRoute = "unmatched"

// routePattern reports the chi pattern that served r. It is only complete
// once the router has finished with the request.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return unmatchedRoute
}

// MetricsMiddleware feeds the monitoring.HTTP collectors.
func MetricsMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			monitoring.HTTP.RequestsInFlight.Inc()
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				monitoring.HTTP.RequestsInFlight.Dec()
				monitoring.RecordHTTPRequest(r.Method, routePattern(r), ww.Status(), time.Since(start).Seconds())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
