package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectOptional dials dsn and returns the DB plus a cleanup function.
// An empty dsn or a failed connection logs a warning and returns nil with a
// no-op cleanup, leaving the caller on its in-memory store.
func ConnectOptional(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(dsn) == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory order repository", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory order repository", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}
