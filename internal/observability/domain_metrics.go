package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplyq_queries_total",
			Help: "Total number of natural language queries by outcome status.",
		},
		[]string{"status"},
	)
	queryDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "supplyq_query_duration_seconds",
			Help:    "End-to-end query pipeline latency in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
	stageFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplyq_stage_failures_total",
			Help: "Total number of pipeline stage failures by stage.",
		},
		[]string{"stage"},
	)
	translationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "supplyq_translation_duration_seconds",
			Help:    "Inference service call latency in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
	resultRowsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "supplyq_result_rows_returned",
			Help:    "Rows returned per successful query page.",
			Buckets: []float64{0, 1, 5, 10, 25, 50},
		},
	)
)

func init() {
	prometheus.MustRegister(
		queriesTotal,
		queryDurationSeconds,
		stageFailuresTotal,
		translationDurationSeconds,
		resultRowsReturned,
	)
}

func ObserveQuery(status string, elapsed time.Duration) {
	queriesTotal.WithLabelValues(status).Inc()
	queryDurationSeconds.Observe(elapsed.Seconds())
}

func ObserveTranslation(elapsed time.Duration) {
	translationDurationSeconds.Observe(elapsed.Seconds())
}

func IncrementStageFailure(stage string) {
	stageFailuresTotal.WithLabelValues(stage).Inc()
}

func ObserveResultRows(count int) {
	if count < 0 {
		count = 0
	}
	resultRowsReturned.Observe(float64(count))
}
