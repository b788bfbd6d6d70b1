package database

import (
	"context"
	"fmt"
	"time"

	"sheetmart/internal/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NewPool connects to Postgres and makes sure the delivery log table exists.
func NewPool(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	config.MaxConns = 5
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, repositories.CreateDeliveriesTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create deliveries table: %w", err)
	}

	logger.Info("database connected")
	return pool, nil
}

// ClosePool releases the pool if one was opened.
func ClosePool(pool *pgxpool.Pool, logger *zap.Logger) {
	if pool == nil {
		return
	}
	pool.Close()
	logger.Info("database disconnected")
}
