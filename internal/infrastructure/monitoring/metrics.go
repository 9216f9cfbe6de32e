package monitoring

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type RegistryMetrics struct {
	RecordsInUse        prometheus.Gauge
	RecordCapacity      prometheus.Gauge
	CustomersRegistered prometheus.Gauge
	OperationsTotal     *prometheus.CounterVec
}

type BatchMetrics struct {
	AuditRunsTotal *prometheus.CounterVec
}

// HTTPMetrics are labelled by route pattern, never by raw path, so customer
// and record IDs do not become series.
type HTTPMetrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}

var (
	Registry = RegistryMetrics{
		RecordsInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "xyzbank_registry_records_in_use",
			Help: "Number of loan records currently held across all customers.",
		}),
		RecordCapacity: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "xyzbank_registry_record_capacity",
			Help: "Configured maximum number of loan records.",
		}),
		CustomersRegistered: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "xyzbank_registry_customers",
			Help: "Number of registered customers.",
		}),
		OperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xyzbank_registry_operations_total",
				Help: "Registry operations by outcome.",
			},
			[]string{"operation", "status"},
		),
	}

	Batch = BatchMetrics{
		AuditRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xyzbank_registry_audit_runs_total",
				Help: "Registry audit job runs by outcome.",
			},
			[]string{"status"},
		),
	}

	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xyzbank_http_requests_total",
				Help: "HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "status_code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "xyzbank_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "xyzbank_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		}),
	}
)

func RecordOperation(operation, status string) {
	Registry.OperationsTotal.WithLabelValues(operation, status).Inc()
}

func SetRegistryState(records, capacity, customers int) {
	Registry.RecordsInUse.Set(float64(records))
	Registry.RecordCapacity.Set(float64(capacity))
	Registry.CustomersRegistered.Set(float64(customers))
}

const (
	AuditStatusOK        = "success"
	AuditStatusDrift     = "drift"
	AuditStatusCancelled = "cancelled"
)

func RecordAuditRun(status string) {
	Batch.AuditRunsTotal.WithLabelValues(status).Inc()
}

func RecordHTTPRequest(method, route string, status int, seconds float64) {
	HTTP.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTP.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}
