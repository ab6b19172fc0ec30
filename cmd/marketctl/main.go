package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"market_backend/internal/app/config"
	"market_backend/internal/app/di"
	"market_backend/internal/cli"
	"market_backend/internal/platform/jwt"
	"market_backend/internal/platform/logger"
	infraredis "market_backend/internal/platform/redis"
)

// tokenTTL はCLIで発行するアドバイザー用トークンの有効期間です。
const tokenTTL = 24 * time.Hour

func main() {
	// .envを読み込む（無ければ環境変数のみ）
	_ = godotenv.Load(".env")

	cfg := config.Load()
	// 表の出力を汚さないようログは標準エラーへ
	slog.SetDefault(logger.New(os.Stderr, cfg.Log.Level, "text"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redisが設定されていればサーバーとキャッシュを共有する
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if c, err := infraredis.NewRedisClient(ctx, cfg.Redis); err == nil {
			rdb = c
			defer func() { _ = rdb.Close() }()
		}
	}

	deps := cli.Deps{Market: di.NewMarketUsecase(cfg, rdb)}
	if cfg.Advisor.JWTSecret != "" {
		deps.Tokens = jwtmw.NewGenerator(cfg.Advisor.JWTSecret, tokenTTL)
	}

	if err := cli.NewRootCmd(deps).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
