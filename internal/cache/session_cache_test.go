package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscreen/internal/model"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSessionCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewSessionCache(client, time.Minute)

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	sess := &model.ScreeningSession{Key: "abc", Instrument: model.InstrumentGAD7, Answers: []int{1, 2}}
	require.NoError(t, store.Set(ctx, sess))
	assert.True(t, mr.Exists("screening:session:abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, model.InstrumentGAD7, got.Instrument)
	assert.Equal(t, []int{1, 2}, got.Answers)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestSessionCache_Expires(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewSessionCache(client, time.Minute)

	require.NoError(t, store.Set(ctx, &model.ScreeningSession{Key: "k", Instrument: model.InstrumentPHQ9}))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}
