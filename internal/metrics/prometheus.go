// Package metrics provides Prometheus exporters for application metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the evaluation service.
var (
	// Counters.
	EvaluationsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluations_recorded_total",
			Help: "Total number of evaluations recorded",
		},
		[]string{"status"},
	)

	TokenValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_validations_total",
			Help: "Total number of judge token validations",
		},
		[]string{"result"},
	)

	RateLimitedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Gauges.
	ProjectsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "projects_tracked",
			Help: "Current number of projects in the store",
		},
	)

	JudgesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "judges_active",
			Help: "Current number of active judges",
		},
	)

	// Histograms.
	DashboardAggregationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_aggregation_seconds",
			Help:    "Time taken to aggregate and rank all project scores",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	RecordedScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recorded_scores",
			Help:    "Distribution of recorded star ratings",
			Buckets: prometheus.LinearBuckets(1, 0.5, 9), // 1 to 5 stars
		},
	)
)

// RecordEvaluation records an evaluation submission outcome.
func RecordEvaluation(status string) {
	EvaluationsRecordedTotal.WithLabelValues(status).Inc()
}

// RecordTokenValidation records a token validation outcome.
func RecordTokenValidation(result string) {
	TokenValidationsTotal.WithLabelValues(result).Inc()
}

// RecordRateLimited records a request rejected by the rate limiter.
func RecordRateLimited() {
	RateLimitedRequestsTotal.Inc()
}

// SetProjectsTracked sets the current number of projects.
func SetProjectsTracked(count int) {
	ProjectsTracked.Set(float64(count))
}

// SetJudgesActive sets the current number of active judges.
func SetJudgesActive(count int) {
	JudgesActive.Set(float64(count))
}

// ObserveAggregation observes the duration of a dashboard aggregation.
func ObserveAggregation(seconds float64) {
	DashboardAggregationSeconds.Observe(seconds)
}

// ObserveScore observes a recorded star rating.
func ObserveScore(score float64) {
	RecordedScores.Observe(score)
}
