package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"mindscreen/internal/config"
)

// SentimentAnalyzer scores free text in [-1, 1]
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (float64, error)
}

// SentimentClient calls an external sentiment service
type SentimentClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

// NewSentimentClient creates a client from config. Returns nil when no
// service is configured.
func NewSentimentClient(cfg *config.SentimentConfig) *SentimentClient {
	if cfg == nil || !cfg.IsEnabled() {
		log.Println("[Sentiment] SENTIMENT_API_URL not set, relying on platform sentiment only")
		return nil
	}
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}
	return &SentimentClient{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		maxRetries: retries,
		backoff:    200 * time.Millisecond,
	}
}

type sentimentRequest struct {
	Text string `json:"text"`
}

type sentimentResponse struct {
	Score *float64 `json:"score"`
}

// Analyze posts text and returns the clamped score
func (c *SentimentClient) Analyze(ctx context.Context, text string) (float64, error) {
	payload, err := json.Marshal(sentimentRequest{Text: text})
	if err != nil {
		return 0, err
	}

	body, err := c.doRequest(ctx, payload)
	if err != nil {
		return 0, err
	}

	var resp sentimentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse sentiment response: %w", err)
	}
	if resp.Score == nil || math.IsNaN(*resp.Score) {
		return 0, fmt.Errorf("sentiment response has no score")
	}

	return math.Max(-1, math.Min(1, *resp.Score)), nil
}

// doRequest retries on transport errors, 429 and 5xx with exponential backoff
func (c *SentimentClient) doRequest(ctx context.Context, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(math.Pow(2, float64(attempt-1)))
			log.Printf("[Sentiment] Retry attempt %d/%d in %v", attempt, c.maxRetries, wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("sentiment API status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("sentiment API error %d: %s", resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
