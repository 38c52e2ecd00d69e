// qrpay-gateway/pkg/metrics/metrics.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ReserveRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexus",
			Name:      "reserve_requests_total",
			Help:      "Reserve decisions by outcome and error type",
		},
		[]string{"outcome", "error_type", "authentic"},
	)

	ReserveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nexus",
			Name:      "reserve_duration_seconds",
			Help:      "Reserve handler latency",
			// decisions are in-process, keep buckets tight sub-second
			Buckets: []float64{
				0.001, 0.002, 0.005, 0.01, 0.02, 0.05,
				0.1, 0.2, 0.5, 1, 2,
			},
		},
		[]string{"outcome"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexus",
			Name:      "http_requests_total",
			Help:      "HTTP requests by status class and method",
		},
		[]string{"service", "status", "method"},
	)
)

func init() {
	prometheus.MustRegister(ReserveRequestsTotal, ReserveDuration, HTTPRequestsTotal)
}

// Helpers so handlers stay tidy
func IncReserve(outcome, errType string, authentic bool) {
	a := "false"
	if authentic {
		a = "true"
	}
	ReserveRequestsTotal.WithLabelValues(outcome, errType, a).Inc()
}

func ObserveReserve(outcome string, seconds float64) {
	ReserveDuration.WithLabelValues(outcome).Observe(seconds)
}

func IncHTTP(service, status, method string) {
	HTTPRequestsTotal.WithLabelValues(service, status, method).Inc()
}
