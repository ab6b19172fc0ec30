// Package db は銘柄カタログ用のGORM接続を提供します。
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"market_backend/internal/app/config"
	"market_backend/internal/feature/symbollist/domain/entity"
)

const (
	// connectTimeout は起動時の接続リトライの上限です。
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Opener はDSNからGORM接続を開く関数です（テストで差し替え可能）。
type Opener func(dsn string) (*gorm.DB, error)

// DialectorOpener は driver 名に対応する Opener を返します。
func DialectorOpener(driver string) (Opener, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch driver {
	case "postgres", "postgresql", "":
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), cfg) }, nil
	case "sqlite", "sqlite3":
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), cfg) }, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// OpenDB は cfg に従ってDBへ接続し、必要ならマイグレーションを実行します。
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	open, err := DialectorOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(ctx, cfg.DSN, connectTimeout, open)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// ConnectWithRetry は timeout まで retryInterval ごとに接続を試みます。
func ConnectWithRetry(ctx context.Context, dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("db connect aborted: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}
}

// Migrate は銘柄カタログのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Symbol{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
