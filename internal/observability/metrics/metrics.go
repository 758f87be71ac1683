package metrics

import "github.com/prometheus/client_golang/prometheus"

// SubmissionMetrics exposes counters/histograms for the submission pipeline.
type SubmissionMetrics struct {
	submissions  *prometheus.CounterVec
	stageLatency *prometheus.HistogramVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leads",
			Subsystem: "submission",
			Name:      "total",
			Help:      "Submission attempts by outcome and interest",
		}, []string{"outcome", "interest"}),
		stageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leads",
			Subsystem: "submission",
			Name:      "stage_latency_seconds",
			Help:      "Latency of outbound pipeline stages",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage", "ok"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissions, m.stageLatency)
	return m
}

// ObserveSubmission counts one finished attempt. outcome is "success" or the failing stage.
func (m *SubmissionMetrics) ObserveSubmission(outcome, interest string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome, interest).Inc()
}

func (m *SubmissionMetrics) ObserveStage(stage string, ok bool, seconds float64) {
	if m == nil {
		return
	}
	label := "false"
	if ok {
		label = "true"
	}
	m.stageLatency.WithLabelValues(stage, label).Observe(seconds)
}
