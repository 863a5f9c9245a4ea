// Package metrics counts the rules matched by the sequence and exports the
// counts in Prometheus text format.
package metrics

import (
	"github.com/agbru/fibbuzz/internal/fizzbuzz"
	"github.com/prometheus/client_golang/prometheus"
)

// Tally records how many lines matched each rule. It implements
// fizzbuzz.Recorder.
//
// Each Tally owns its registry so several can coexist, unlike the global
// default registerer.
type Tally struct {
	registry *prometheus.Registry
	tokens   *prometheus.CounterVec
	lines    prometheus.Counter
}

var _ fizzbuzz.Recorder = (*Tally)(nil)

// singleRules are counted independently; a line can match several.
var singleRules = []fizzbuzz.Rules{fizzbuzz.RuleBuzz, fizzbuzz.RuleFizz, fizzbuzz.RulePrime}

// plainLabel is the rule label of lines printed as a number.
var plainLabel = fizzbuzz.Rules(0).String()

// NewTally creates a Tally with its own registry.
func NewTally() *Tally {
	t := &Tally{
		registry: prometheus.NewRegistry(),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fibbuzz",
			Name:      "tokens_total",
			Help:      "Number of lines on which each rule matched; plain counts lines printed as a number.",
		}, []string{"rule"}),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fibbuzz",
			Name:      "lines_total",
			Help:      "Number of sequence lines written.",
		}),
	}
	t.registry.MustRegister(t.tokens, t.lines)
	// Pre-create every series so that a rule which never matched exports 0.
	for _, r := range singleRules {
		t.tokens.WithLabelValues(r.String())
	}
	t.tokens.WithLabelValues(plainLabel)
	return t
}

// Record counts one line with the given matched rules.
func (t *Tally) Record(rules fizzbuzz.Rules) {
	t.lines.Inc()
	if rules == 0 {
		t.tokens.WithLabelValues(plainLabel).Inc()
		return
	}
	for _, r := range singleRules {
		if rules.Has(r) {
			t.tokens.WithLabelValues(r.String()).Inc()
		}
	}
}

// Gatherer exposes the underlying registry.
func (t *Tally) Gatherer() prometheus.Gatherer {
	return t.registry
}

// WriteTextfile writes the current counts to path in the Prometheus text
// exposition format, replacing the file atomically.
func (t *Tally) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, t.registry)
}
