package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"lightbnb/internal/cache"
	"lightbnb/internal/config"
	"lightbnb/internal/database"
	"lightbnb/internal/logger"
	"lightbnb/internal/service"
	"lightbnb/internal/store"
)

var (
	loadConfig     = config.Load
	newLogger      = logger.New
	newPgxPool     = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
)

// app holds the wired dependencies shared by all subcommands.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	db    database.DB
	cache cache.Cache
	store store.Querier
	auth  *service.Authenticator
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.Log).With().Str("env", cfg.Primary.Env).Logger()

	db, err := newPgxPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	gw := store.New(db, log)
	gw.DefaultLimit = cfg.Search.DefaultLimit
	a := &app{cfg: cfg, log: log, db: db, store: gw}

	if cfg.Redis.Addr != "" {
		c, err := newRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("search cache disabled")
		} else {
			a.cache = c
			a.store = store.NewCachedGateway(gw, c, cfg.Search.CacheTTL, log)
		}
	}

	a.auth = service.NewAuthenticator(a.store, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	return a, nil
}

func (a *app) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn().Err(err).Msg("closing redis")
		}
	}
	a.db.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writeJSON: %w", err)
	}
	return nil
}
