package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
)

// Connect opens PostgreSQL via GORM and pings it within five seconds.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Open connects and applies the schema. An empty DSN or any failure returns a
// nil DB so callers fall back to in-memory adapters.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*gorm.DB, func()) {
	noop := func() {}
	if log == nil {
		log = slog.Default()
	}
	if strings.TrimSpace(dsn) == "" {
		log.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, noop
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		log.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, noop
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, noop
	}
	if err := migrations.Run(db); err != nil {
		_ = sqlDB.Close()
		log.Warn("failed to migrate postgres schema, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, noop
	}
	log.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}
