package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/bomsight/bomsight/internal/resilience"
	"github.com/bomsight/bomsight/internal/router"
	"github.com/bomsight/bomsight/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "bomsight.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initRouter(st store.Store) *router.Router {
	return router.New(st, nil, router.Config{
		Thresholds: router.Thresholds{
			AutoPromote: cfg.Quality.AutoPromoteThreshold,
			Review:      cfg.Quality.ReviewThreshold,
		},
		Retry: resilience.RetryConfig{
			MaxAttempts:    cfg.Quality.TransitionMaxAttempts,
			InitialBackoff: time.Duration(cfg.Quality.TransitionBackoffMS) * time.Millisecond,
		},
	})
}
