package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscreen/internal/model"
)

func TestMemorySessionStore_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute, 0)

	sess := &model.ScreeningSession{Key: "s1", Instrument: model.InstrumentPHQ9, Answers: []int{1}}
	require.NoError(t, store.Set(ctx, sess))

	sess.Answers[0] = 3
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got.Answers)

	got.Answers = append(got.Answers, 2)
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Answers, 1)
}

func TestMemorySessionStore_TTLAndPrune(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute, 0)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, model.NewSession("old")))
	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Set(ctx, model.NewSession("fresh")))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	assert.Equal(t, 1, store.Prune())
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemorySessionStore_EvictsOldestAtCapacity(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour, 2)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, store.Set(ctx, model.NewSession(k)))
		now = now.Add(time.Second)
	}

	assert.Equal(t, 2, store.Len())
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	_, err = store.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemorySessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute, 0)

	require.NoError(t, store.Set(ctx, model.NewSession("x")))
	require.NoError(t, store.Delete(ctx, "x"))
	require.NoError(t, store.Delete(ctx, "missing"))

	_, err := store.Get(ctx, "x")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}
