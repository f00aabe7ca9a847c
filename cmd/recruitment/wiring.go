package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"jobmate/recruitment-service/internal/config"
	"jobmate/recruitment-service/internal/db"
)

// openDatabase connects to the configured backend and returns a close func
// that releases it.
func openDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sqlx.DB, func(), error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		log.Info("opening SQLite", zap.String("dsn", cfg.DatabaseURL))
		conn, err := db.OpenSQLite(cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		return conn, func() { _ = conn.Close() }, nil
	case config.DriverPostgres:
		log.Info("connecting to PostgreSQL")
		return db.OpenPostgres(ctx, cfg.DatabaseURL)
	}
	return nil, func() {}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}
