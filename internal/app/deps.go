package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"research-agent/internal/alerts"
	"research-agent/internal/cache"
	"research-agent/internal/catalog"
	"research-agent/internal/config"
	"research-agent/internal/engine"
	"research-agent/internal/logger"
	"research-agent/internal/provider"
	"research-agent/internal/queue"
	"research-agent/internal/store"
)

// Deps bundles common runtime dependencies for services. Queue is nil when
// QUEUE_PROVIDER=none; handlers that need it must check.
type Deps struct {
	Config  config.Config
	Log     *slog.Logger
	Engine  *engine.Engine
	Catalog catalog.Client
	Cache   cache.Cache
	Store   store.Store
	Queue   queue.Queue
	Alerts  *alerts.Store
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	router := provider.NewRouter(provider.Config{
		OpenAIKey:      cfg.OpenAIKey,
		OpenAIModel:    cfg.OpenAIModel,
		GroqKey:        cfg.GroqKey,
		GroqModel:      cfg.GroqModel,
		AnthropicKey:   cfg.AnthropicKey,
		AnthropicModel: cfg.AnthropicModel,
		GeminiKey:      cfg.GeminiKey,
		GeminiModel:    cfg.GeminiModel,
	})

	ca, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	al, err := alerts.NewStore(cfg.AlertsPath)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize alerts store: %w", err)
	}

	return Deps{
		Config:  cfg,
		Log:     log,
		Engine:  engine.New(router, log),
		Catalog: catalog.NewArxiv(cfg.CatalogBaseURL, http.DefaultClient),
		Cache:   ca,
		Store:   st,
		Queue:   q,
		Alerts:  al,
	}, nil
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		c, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis cache", "addr", cfg.RedisAddr)
		return c, nil
	case "noop", "":
		return cache.NewNoOp(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: redis, noop)", cfg.CacheProvider)
	}
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreProvider {
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres store")
		return db, nil
	case "noop", "":
		return store.NewNoOp(), nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid options: postgres, noop)", cfg.StoreProvider)
	}
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, error) {
	switch cfg.QueueProvider {
	case "nats":
		if cfg.QueueURL == "" {
			return nil, fmt.Errorf("QUEUE_URL is required when QUEUE_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.QueueURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("using NATS queue")
		return queue.NewNATS(log, nc), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid QUEUE_PROVIDER: %s (valid options: nats, none)", cfg.QueueProvider)
	}
}
