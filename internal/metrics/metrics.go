// Package metrics exposes Prometheus collectors for the screening service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the set of collectors the screening service updates
type Recorder struct {
	turns       *prometheus.CounterVec
	completions *prometheus.CounterVec
	escalations *prometheus.CounterVec
	sentiment   *prometheus.HistogramVec
}

// NewRecorder builds collectors and registers them on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindscreen",
			Name:      "turns_total",
			Help:      "Webhook turns handled, by trigger kind.",
		}, []string{"trigger"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindscreen",
			Name:      "screenings_completed_total",
			Help:      "Completed questionnaires, by instrument, severity and drive mode.",
		}, []string{"instrument", "severity", "mode"}),
		escalations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindscreen",
			Name:      "escalations_total",
			Help:      "Escalated turns, by reason code.",
		}, []string{"reason"}),
		sentiment: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mindscreen",
			Name:      "sentiment_lookup_seconds",
			Help:      "Latency of external sentiment lookups.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(r.turns, r.completions, r.escalations, r.sentiment)
	}
	return r
}

// Nop returns a recorder that is not registered anywhere
func Nop() *Recorder {
	return NewRecorder(nil)
}

func (r *Recorder) Turn(trigger string) {
	r.turns.WithLabelValues(trigger).Inc()
}

func (r *Recorder) Completed(instrument, severity, mode string) {
	r.completions.WithLabelValues(instrument, severity, mode).Inc()
}

func (r *Recorder) Escalated(reason string) {
	r.escalations.WithLabelValues(reason).Inc()
}

func (r *Recorder) SentimentLookup(outcome string, took time.Duration) {
	r.sentiment.WithLabelValues(outcome).Observe(took.Seconds())
}
