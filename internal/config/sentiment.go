package config

import "time"

// SentimentConfig holds the external sentiment service settings
type SentimentConfig struct {
	APIKey     string `json:"-"` // Never serialize
	URL        string `json:"url"`
	TimeoutMS  int    `json:"timeoutMs"`
	MaxRetries int    `json:"maxRetries"`
}

// DefaultSentimentConfig returns the sentiment configuration from env
func DefaultSentimentConfig() *SentimentConfig {
	return &SentimentConfig{
		APIKey:     getEnv("SENTIMENT_API_KEY", ""),
		URL:        getEnv("SENTIMENT_API_URL", ""),
		TimeoutMS:  getIntEnv("SENTIMENT_TIMEOUT_MS", 2000),
		MaxRetries: getIntEnv("SENTIMENT_MAX_RETRIES", 2),
	}
}

// IsEnabled returns true if a sentiment service is configured
func (c *SentimentConfig) IsEnabled() bool {
	return c.URL != ""
}

// Timeout returns the per-request timeout
func (c *SentimentConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
