package database

import (
	"fmt"
	"time"

	"github.com/airmaint/airmaint/internal/common/config"

	"go.uber.org/zap"
)

const (
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

// NewStore creates a Store based on configuration. SQL backends are retried
// with exponential backoff; when all attempts fail the seeded in-memory store
// is used instead, unless the database is marked required (production), in
// which case the connection error is returned.
func NewStore(cfg *config.DatabaseConfig, logger *zap.Logger) (Store, error) {
	if cfg.Type == "" || cfg.Type == "memory" {
		return NewSeededMemory()
	}

	store, err := connectWithRetry(cfg, logger)
	if err == nil {
		return store, nil
	}

	if cfg.Required {
		return nil, fmt.Errorf("database is required but unreachable: %w", err)
	}

	logger.Warn("falling back to in-memory storage",
		zap.String("type", cfg.Type),
		zap.Error(err))
	return NewSeededMemory()
}

func connectWithRetry(cfg *config.DatabaseConfig, logger *zap.Logger) (Store, error) {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	interval := cfg.RetryInterval.Std()
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		store, err := open(cfg)
		if err == nil {
			logger.Info("connected to database",
				zap.String("type", cfg.Type),
				zap.Int("attempt", attempt))
			return store, nil
		}
		lastErr = err
		logger.Warn("database connection failed",
			zap.String("type", cfg.Type),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < retries {
			time.Sleep(interval)
			interval *= 2
		}
	}
	return nil, lastErr
}

func open(cfg *config.DatabaseConfig) (Store, error) {
	switch cfg.Type {
	case "sqlite":
		return NewSQLite(cfg)
	case "postgres":
		return NewPostgres(cfg)
	case "mysql":
		return NewMySQL(cfg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
