// Package redis はレスポンスキャッシュ用のRedis接続を提供します。
package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"market_backend/internal/app/config"
)

// pingTimeout は起動時の接続確認の上限です。
const pingTimeout = 3 * time.Second

// NewRedisClient は cfg でRedisへ接続し、疎通を確認したクライアントを返します。
// 接続に失敗した場合はクライアントを閉じてエラーを返します（呼び出し側はメモリキャッシュへ切り替える）。
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Addr()
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	if err := Ping(ctx, rdb); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}

// Ping は pingTimeout 以内にRedisが応答するかを確認します。ヘルスチェックからも使います。
func Ping(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return rdb.Ping(ctx).Err()
}
