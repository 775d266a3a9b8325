package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config is the process configuration, read once at startup
type Config struct {
	HTTPPort string

	SessionBackend    string
	SessionTTL        time.Duration
	SessionMaxEntries int

	RedisAddr string
	MongoURI  string
	MongoDB   string

	HelplineName   string
	HelplineNumber string

	CounsellorUsername string
	CounsellorPassword string
	JWTSecret          string

	CORSAllowedOrigins string

	// optional YAML file of extra intent -> trigger mappings
	IntentTableFile string

	Sentiment *SentimentConfig
}

// Load reads all env vars and builds the config
func Load() *Config {
	return &Config{
		HTTPPort: getEnv("PORT", "8080"),

		SessionBackend:    strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendMemory)),
		SessionTTL:        getDurationEnv("SESSION_TTL", 30*time.Minute),
		SessionMaxEntries: getIntEnv("SESSION_MAX_ENTRIES", 10000),

		RedisAddr: trimRedisScheme(getEnv("REDIS_URI", "localhost:6379")),
		MongoURI:  getEnv("MONGO_URI", ""),
		MongoDB:   getEnv("MONGO_DB", "mindscreen"),

		HelplineName:   getEnv("HELPLINE_NAME", "Tele-MANAS"),
		HelplineNumber: getEnv("HELPLINE_NUMBER", "14416"),

		CounsellorUsername: getEnv("COUNSELLOR_USERNAME", "counsellor"),
		CounsellorPassword: getEnv("COUNSELLOR_PASSWORD", "password123"),
		JWTSecret:          getEnv("JWT_SECRET", "super-secret-key-change-in-production"),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),

		IntentTableFile: getEnv("INTENT_TABLE_FILE", ""),

		Sentiment: DefaultSentimentConfig(),
	}
}

// Validate reports every setting that would keep the service from running
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		result = multierror.Append(result, fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q",
			SessionBackendMemory, SessionBackendRedis, c.SessionBackend))
	}
	if c.SessionTTL <= 0 {
		result = multierror.Append(result, errors.New("SESSION_TTL must be positive"))
	}
	if c.UsesRedis() && c.RedisAddr == "" {
		result = multierror.Append(result, errors.New("REDIS_URI is required for the redis session backend"))
	}
	if strings.TrimSpace(c.HelplineNumber) == "" {
		result = multierror.Append(result, errors.New("HELPLINE_NUMBER must not be empty"))
	}
	if c.JWTSecret == "" {
		result = multierror.Append(result, errors.New("JWT_SECRET must not be empty"))
	}
	if c.Sentiment != nil && c.Sentiment.IsEnabled() && c.Sentiment.TimeoutMS <= 0 {
		result = multierror.Append(result, errors.New("SENTIMENT_TIMEOUT_MS must be positive"))
	}

	return result.ErrorOrNil()
}

// UsesRedis reports whether sessions live in redis
func (c *Config) UsesRedis() bool {
	return c.SessionBackend == SessionBackendRedis
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// getDurationEnv accepts Go durations ("45m") or plain seconds ("2700")
func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}

// Remove redis:// prefix if present
func trimRedisScheme(addr string) string {
	return strings.TrimPrefix(addr, "redis://")
}
