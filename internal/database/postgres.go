package database

import (
	"context"
	"fmt"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"lightbnb/internal/config"
	"lightbnb/internal/logger"
)

var (
	pgxpoolParseConfig   = pgxpool.ParseConfig
	pgxpoolNewWithConfig = pgxpool.NewWithConfig
)

// NewPgxPool builds a lazily connecting pool for cfg.URL. When
// cfg.LogQueries is set every statement is traced through log.
func NewPgxPool(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (DB, error) {
	poolCfg, err := pgxpoolParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.LogQueries {
		poolCfg.ConnConfig.Tracer = newQueryTracer(log)
	}

	pool, err := pgxpoolNewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	return pool, nil
}

func newQueryTracer(log zerolog.Logger) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger:   pgxzero.NewLogger(log.With().Str("component", "pgx").Logger()),
		LogLevel: logger.PgxTraceLevel(log.GetLevel()),
	}
}
