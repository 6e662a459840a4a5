package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Submissions   *prometheus.CounterVec
	Verifications *prometheus.CounterVec
}

// New registers the pipeline counters on the given registerer. Pass
// prometheus.DefaultRegisterer in main; tests use private registries so
// repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total contact form submissions by response status",
		}, []string{"status"}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recaptcha_verifications_total",
			Help: "Total recaptcha verifications by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) RecordSubmission(status int) {
	m.Submissions.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (m *Metrics) RecordVerification(passed bool) {
	result := "rejected"
	if passed {
		result = "passed"
	}
	m.Verifications.WithLabelValues(result).Inc()
}
