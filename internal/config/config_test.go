package config

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("HELPLINE_NUMBER", "")
	t.Setenv("SENTIMENT_API_URL", "")

	cfg := Load()
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, "14416", cfg.HelplineNumber)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.Sentiment.IsEnabled())
	assert.False(t, cfg.UsesRedis())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("SESSION_TTL", "900")
	t.Setenv("SENTIMENT_API_URL", "http://sentiment.local/score")
	t.Setenv("SENTIMENT_TIMEOUT_MS", "500")

	cfg := Load()
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.Sentiment.IsEnabled())
	assert.Equal(t, 500*time.Millisecond, cfg.Sentiment.Timeout())
}

func TestValidate(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("SENTIMENT_API_URL", "")

	cfg := Load()
	assert.NoError(t, cfg.Validate())

	cfg.SessionBackend = "etcd"
	cfg.SessionTTL = 0
	cfg.HelplineNumber = " "

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
	assert.Contains(t, err.Error(), "SESSION_BACKEND")
	assert.Contains(t, err.Error(), "HELPLINE_NUMBER")
}
