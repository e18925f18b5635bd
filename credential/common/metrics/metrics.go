// Package metrics exports prometheus counters for proof creation and
// verification outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ldproof"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// Metrics holds the collectors. A nil *Metrics records nothing.
type Metrics struct {
	signTotal      *prometheus.CounterVec
	verifyTotal    *prometheus.CounterVec
	verifyDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		signTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sign_total",
			Help:      "The number of proofs created, by suite and outcome",
		}, []string{"suite", "outcome"}),
		verifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verify_proofs_total",
			Help:      "The number of proofs evaluated, by suite and outcome",
		}, []string{"suite", "outcome"}),
		verifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verify_duration_seconds",
			Help:      "The number of seconds it takes to verify a document",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.signTotal, m.verifyTotal, m.verifyDuration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// ObserveSign records a sign call for suite.
func (m *Metrics) ObserveSign(suite string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.signTotal.WithLabelValues(suite, outcome).Inc()
}

// ObserveProof records the evaluation of one proof.
func (m *Metrics) ObserveProof(suite string, verified bool) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if !verified {
		outcome = OutcomeFailure
	}
	m.verifyTotal.WithLabelValues(suite, outcome).Inc()
}

// ObserveVerifyError records a verify call aborted by an infrastructure error.
func (m *Metrics) ObserveVerifyError(suite string) {
	if m == nil {
		return
	}
	m.verifyTotal.WithLabelValues(suite, OutcomeError).Inc()
}

// ObserveVerifyDuration records the time taken by a verify call started at start.
func (m *Metrics) ObserveVerifyDuration(start time.Time) {
	if m == nil {
		return
	}
	m.verifyDuration.Observe(time.Since(start).Seconds())
}
