// Package metrics holds the Prometheus collectors of the dashboard API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	customersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_customers",
		Help: "Current number of customers in the collection",
	})

	customerMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_customer_mutations_total",
		Help: "Customer mutations by operation and outcome",
	}, []string{"operation", "outcome"})

	viewsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_views_computed_total",
		Help: "Number of customer list views computed",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// Mutation outcomes
const (
	OutcomeOK       = "ok"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// SetCustomers records the collection size
func SetCustomers(n int) {
	customersTotal.Set(float64(n))
}

// ObserveMutation counts one customer mutation
func ObserveMutation(operation, outcome string) {
	customerMutations.WithLabelValues(operation, outcome).Inc()
}

// ObserveView counts one computed list view
func ObserveView() {
	viewsComputed.Inc()
}

// ObserveRequest records one served HTTP request
func ObserveRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(route).Observe(seconds)
}
