package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscreen/internal/model"
)

func TestStateMachine_TurnByTurn(t *testing.T) {
	now := time.Now()
	s := model.NewSession("k")
	assert.Equal(t, model.SessionIdle, s.State())

	_, err := appendAnswer(s, 1, now)
	assert.ErrorIs(t, err, model.ErrInstrumentMismatch)

	startInstrument(s, model.InstrumentGAD7, now)
	assert.Equal(t, model.SessionInProgress, s.State())
	require.NotNil(t, s.StartedAt)

	for i := 0; i < 6; i++ {
		tr, err := appendAnswer(s, 2, now)
		require.NoError(t, err)
		assert.Equal(t, TransitionAdvanced, tr)
	}
	tr, err := appendAnswer(s, 4, now)
	require.NoError(t, err)
	assert.Equal(t, TransitionRejected, tr)
	assert.Equal(t, 6, s.Count())

	tr, err = appendAnswer(s, 0, now)
	require.NoError(t, err)
	assert.Equal(t, TransitionComplete, tr)
	assert.Equal(t, model.SessionComplete, s.State())

	reset(s, now)
	assert.Equal(t, model.SessionIdle, s.State())
	assert.Nil(t, s.Answers)
}

func TestStateMachine_AppendDoesNotAlias(t *testing.T) {
	now := time.Now()
	s := model.NewSession("k")
	startInstrument(s, model.InstrumentPHQ9, now)
	_, err := appendAnswer(s, 1, now)
	require.NoError(t, err)

	before := s.Answers
	_, err = appendAnswer(s, 2, now)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, before)
	assert.Equal(t, []int{1, 2}, s.Answers)
}

func TestStateMachine_StartDiscardsPartial(t *testing.T) {
	now := time.Now()
	s := model.NewSession("k")
	startInstrument(s, model.InstrumentPHQ9, now)
	_, _ = appendAnswer(s, 3, now)

	startInstrument(s, model.InstrumentPHQ9, now)
	assert.Empty(t, s.Answers)
	assert.Equal(t, model.InstrumentPHQ9, s.Instrument)
}

func TestStateMachine_CompleteBatchCopies(t *testing.T) {
	answers := []int{0, 1, 2, 3, 0, 1, 2}
	s := model.NewSession("k")
	completeBatch(s, model.InstrumentGAD7, answers, time.Now())

	answers[0] = 3
	assert.Equal(t, 0, s.Answers[0])
	assert.Equal(t, model.SessionComplete, s.State())
}
