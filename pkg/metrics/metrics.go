package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	applyflow = "applyflow"

	// Review pipeline metrics
	aiReviewsTotal        = "ai_reviews_total"
	aiReviewFailuresTotal = "ai_review_failures_total"
	submissionsTotal      = "submissions_total"

	// Labels
	decisionLabel = "decision"
	reasonLabel   = "reason"
)

var aiReviewsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: applyflow,
		Name:      aiReviewsTotal,
		Help:      "number of completed AI screening reviews",
	},
	[]string{decisionLabel},
)

var aiReviewFailuresTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: applyflow,
		Name:      aiReviewFailuresTotal,
		Help:      "number of failed AI screening attempts",
	},
	[]string{reasonLabel},
)

var submissionsTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: applyflow,
		Name:      submissionsTotal,
		Help:      "number of submitted applications",
	},
)

func IncreaseAIReviewsTotalMetric(decision string) {
	aiReviewsTotalMetric.With(prometheus.Labels{decisionLabel: decision}).Inc()
}

func IncreaseAIReviewFailuresTotalMetric(reason string) {
	aiReviewFailuresTotalMetric.With(prometheus.Labels{reasonLabel: reason}).Inc()
}

func IncreaseSubmissionsTotalMetric() {
	submissionsTotalMetric.Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(aiReviewsTotalMetric)
	prometheus.MustRegister(aiReviewFailuresTotalMetric)
	prometheus.MustRegister(submissionsTotalMetric)
}
