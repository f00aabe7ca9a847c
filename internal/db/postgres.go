// Package db provides database connection helpers.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

// OpenPostgres opens a verified pgx pool and exposes it through sqlx.
// The returned close func releases both the sql.DB wrapper and the pool.
func OpenPostgres(ctx context.Context, databaseURL string) (*sqlx.DB, func(), error) {
	pool, err := NewPostgresPool(ctx, databaseURL)
	if err != nil {
		return nil, func() {}, err
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	closeFn := func() {
		_ = sqlDB.Close()
		pool.Close()
	}

	return sqlx.NewDb(sqlDB, "pgx"), closeFn, nil
}
