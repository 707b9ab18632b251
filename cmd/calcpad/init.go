package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"calcpad/internal/calculator"
	"calcpad/internal/config"
	"calcpad/internal/observability"
	"calcpad/internal/session"
)

// initTelemetry initialises the OTel providers and the calculator metric
// instruments. The instruments are created even with telemetry disabled so
// handlers always have something to record into.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	shutdown, err := observability.Setup(ctx, cfg.Telemetry, cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}

// openStore builds the configured session store. The returned close func is
// never nil.
func openStore(ctx context.Context, cfg config.Config) (session.Store, func() error, error) {
	switch cfg.Store {
	case config.StoreRedis:
		store := session.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			session.WithPrefix(cfg.Redis.Prefix),
			session.WithTTL(cfg.SessionTTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		observability.Logger.Info("using redis session store",
			zap.String("addr", cfg.Redis.Addr),
			zap.Int("db", cfg.Redis.DB),
			zap.Duration("ttl", cfg.SessionTTL),
		)
		return store, store.Close, nil

	case config.StoreMemory:
		observability.Logger.Info("using in-memory session store", zap.Duration("ttl", cfg.SessionTTL))
		return session.NewMemoryStore(session.WithMemoryTTL(cfg.SessionTTL)), func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}
