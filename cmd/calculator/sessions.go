package main

import (
	"context"
	"fmt"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
	"go-chi-calculator/internal/session/memory"
	"go-chi-calculator/internal/session/redis"

	"go.uber.org/zap"
)

// newSessionManager builds the configured store and a manager over it. The
// returned close function releases the store's connections.
func newSessionManager(ctx context.Context, c config.Config) (*session.Manager, func() error, error) {
	logger := observability.Logger.With(zap.String("store", c.Store))

	switch c.Store {
	case config.StoreRedis:
		store := redis.New(c.Redis.Addr, c.Redis.Password, c.Redis.DB,
			redis.WithPrefix(c.Redis.Prefix),
			redis.WithTTL(c.SessionTTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect redis at %s: %w", c.Redis.Addr, err)
		}
		logger.Info("session store ready", zap.String("addr", c.Redis.Addr), zap.Duration("ttl", c.SessionTTL))
		return session.NewManager(store, session.WithLogger(logger)), store.Close, nil
	default:
		logger.Info("session store ready")
		return session.NewManager(memory.NewStore(), session.WithLogger(logger)), func() error { return nil }, nil
	}
}
