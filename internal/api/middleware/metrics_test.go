package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"xyzbank/internal/infrastructure/monitoring"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	monitoring.HTTP.RequestsTotal.Reset()
	monitoring.HTTP.RequestDuration.Reset()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/customers/{customerID}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, 1.0, testutil.ToFloat64(monitoring.HTTP.RequestsInFlight))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	for _, id := range []string{"ABC123", "XYZ789"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/"+id, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	expectedTotal := `
		# HELP xyzbank_http_requests_total HTTP requests by method, route and status code.
		# TYPE xyzbank_http_requests_total counter
		xyzbank_http_requests_total{method="GET",route="/customers/{customerID}",status_code="200"} 2
		xyzbank_http_requests_total{method="GET",route="unmatched",status_code="404"} 1
	`
	if err := testutil.CollectAndCompare(monitoring.HTTP.RequestsTotal, strings.NewReader(expectedTotal)); err != nil {
		t.Errorf("unexpected metrics for xyzbank_http_requests_total: %v", err)
	}
	assert.Equal(t, 2, testutil.CollectAndCount(monitoring.HTTP.RequestDuration))
	assert.Zero(t, testutil.ToFloat64(monitoring.HTTP.RequestsInFlight))
}
