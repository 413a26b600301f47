// Package metrics counts form checks and submissions with Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const DefaultNamespace = "pretriage"

// Results and outcomes used as label values.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"

	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Recorder holds the form counters. A nil *Recorder records nothing.
type Recorder struct {
	fieldChecks *prometheus.CounterVec
	submissions *prometheus.CounterVec
}

// NewRecorder creates the counters and registers them on reg.
// Counters already registered under the same names are reused.
func NewRecorder(reg prometheus.Registerer, namespace string) (*Recorder, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &Recorder{
		fieldChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_checks_total",
			Help:      "Per-keystroke field checks by field and result.",
		}, []string{"field", "result"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Form submissions by form and outcome.",
		}, []string{"form", "outcome"}),
	}
	if reg == nil {
		return r, nil
	}

	var err error
	if r.fieldChecks, err = registerCounterVec(reg, r.fieldChecks); err != nil {
		return nil, err
	}
	if r.submissions, err = registerCounterVec(reg, r.submissions); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adapts NewRecorder to Options.Register.
func Register(namespace string, out **Recorder) func(prometheus.Registerer) error {
	return func(reg prometheus.Registerer) error {
		r, err := NewRecorder(reg, namespace)
		if err != nil {
			return err
		}
		if out != nil {
			*out = r
		}
		return nil
	}
}

// FieldCheck counts one complete per-keystroke check of field.
func (r *Recorder) FieldCheck(field string, valid bool) {
	if r == nil {
		return
	}
	result := ResultInvalid
	if valid {
		result = ResultValid
	}
	r.fieldChecks.WithLabelValues(field, result).Inc()
}

// Submission counts a prepared (accepted) or rejected form.
func (r *Recorder) Submission(form, outcome string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(form, outcome).Inc()
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}
