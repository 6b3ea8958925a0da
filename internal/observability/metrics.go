package observability

import "github.com/prometheus/client_golang/prometheus"

// HTTP-level metrics. Requests are labelled by the normalized route (see
// RouteLabel), never the raw path; latency is tracked per route only,
// since the status split on the counter already answers the error-rate
// question and the extra label would multiply histogram series.
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplyq_http_requests_total",
			Help: "HTTP requests served, by method, normalized route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supplyq_http_request_duration_seconds",
			Help:    "HTTP request latency by normalized route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	httpRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "supplyq_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDurationSeconds, httpRequestsInFlight)
}
