package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for all binaries. Provider credentials
// are optional: a missing key simply makes that provider unavailable and the
// offline engine takes over.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits for /api/summarize/file
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Providers
	OpenAIKey      string `env:"OPENAI_API_KEY"`
	OpenAIModel    string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GroqKey        string `env:"GROQ_API_KEY"`
	GroqModel      string `env:"GROQ_MODEL" envDefault:"llama-3.1-70b-versatile"`
	AnthropicKey   string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-haiku-latest"`
	GeminiKey      string `env:"GOOGLE_API_KEY"`
	GeminiModel    string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	// Paper catalog
	CatalogBaseURL    string `env:"CATALOG_BASE_URL" envDefault:"https://export.arxiv.org"`
	CatalogMaxResults int    `env:"CATALOG_MAX_RESULTS" envDefault:"25"`

	// Cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"noop"` // "redis" or "noop"
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"3600"` // seconds

	// Library store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"noop"` // "postgres" or "noop"
	DBURL         string `env:"DB_URL"`

	// Queue (used by the alert worker and the scan endpoint)
	QueueProvider string `env:"QUEUE_PROVIDER" envDefault:"none"` // "nats" or "none"
	QueueURL      string `env:"QUEUE_URL"`

	// Alerts and reading list
	AlertsPath string `env:"ALERTS_PATH" envDefault:"alerts_store.json"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
