package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.Turn("submit_answer")
	r.Turn("submit_answer")
	r.Escalated("flagged_item")
	r.Completed("phq9", "Mild", "turn_by_turn")
	r.SentimentLookup("ok", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.turns.WithLabelValues("submit_answer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.escalations.WithLabelValues("flagged_item")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.completions.WithLabelValues("phq9", "Mild", "turn_by_turn")))

	n, err := testutil.GatherAndCount(reg, "mindscreen_sentiment_lookup_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}
