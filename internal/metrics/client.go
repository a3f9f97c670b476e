package metrics

import "github.com/prometheus/client_golang/prometheus"

// Client-side Prometheus metrics.
var (
	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esdex",
			Name:      "engine_requests_total",
			Help:      "Total number of engine requests",
		},
		[]string{"op", "status"},
	)

	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "esdex",
			Name:      "engine_request_duration_seconds",
			Help:      "Engine request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)

	DocumentsAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "esdex",
			Name:      "documents_accepted_total",
			Help:      "Total documents accepted by bulk writes",
		},
	)

	DocumentsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esdex",
			Name:      "documents_rejected_total",
			Help:      "Total documents rejected by bulk writes",
		},
		[]string{"reason"},
	)
)

var clientMetricsRegistered bool

// RegisterClientMetrics registers Prometheus client metrics. Must be called once from main.
func RegisterClientMetrics() {
	if clientMetricsRegistered {
		return
	}
	prometheus.MustRegister(EngineRequestsTotal)
	prometheus.MustRegister(EngineRequestDuration)
	prometheus.MustRegister(DocumentsAcceptedTotal)
	prometheus.MustRegister(DocumentsRejectedTotal)
	clientMetricsRegistered = true
}
