package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"market_backend/internal/app/config"
	"market_backend/internal/app/di"
	"market_backend/internal/app/router"
	advisorhandler "market_backend/internal/feature/advisor/transport/handler"
	advisorusecase "market_backend/internal/feature/advisor/usecase"
	markethandler "market_backend/internal/feature/market/transport/handler"
	symbollisthandler "market_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "market_backend/internal/feature/symbollist/usecase"
	infradb "market_backend/internal/platform/db"
	"market_backend/internal/platform/http/handler"
	"market_backend/internal/platform/logger"
	infraredis "market_backend/internal/platform/redis"
	"market_backend/internal/platform/tracing"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	tp, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		slog.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down tracer provider", "error", err)
		}
	}()

	if !cfg.Market.HasAPIKey() {
		slog.Warn("ALPHA_VANTAGE_API_KEY is not set; market endpoints will return 503")
	}

	checks := map[string]handler.CheckFunc{}

	// Redis（任意）。使えなければメモリキャッシュで動く
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if c, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Using in-memory response cache.")
		} else {
			rdb = c
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			checks["redis"] = func(ctx context.Context) error { return infraredis.Ping(ctx, rdb) }
		}
	}

	// DB（任意）。未設定なら組み込みの銘柄カタログを使う
	var db *gorm.DB
	if cfg.Database.Enabled() {
		db, err = infradb.OpenDB(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		checks["db"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	// Usecase
	marketUC := di.NewMarketUsecase(cfg, rdb)
	symbolUC := symbollistusecase.NewSymbolUsecase(di.NewSymbolRepository(ctx, db, cfg.Database.RunMigrations))

	chatModel, err := di.NewChatModel(ctx, cfg.Advisor)
	if err != nil {
		slog.Error("failed to initialize advisor model", "error", err)
		os.Exit(1)
	}
	if chatModel == nil {
		slog.Warn("advisor API key is not set; advisor endpoints will return 503")
	}
	advisorUC := advisorusecase.NewAdvisorUsecase(chatModel, marketUC, nil)

	// Handler / Router
	r := router.NewRouter(router.Handlers{
		Market:  markethandler.NewMarketHandler(marketUC, symbolUC),
		Symbols: symbollisthandler.NewSymbolHandler(symbolUC),
		Advisor: advisorhandler.NewAdvisorHandler(advisorUC),
		Health:  handler.Health(checks),
	}, router.Options{
		ServiceName:      cfg.Tracing.ServiceName,
		AdvisorJWTSecret: cfg.Advisor.JWTSecret,
	})

	if cfg.Advisor.JWTSecret == "" {
		slog.Warn("ADVISOR_JWT_SECRET is not set; advisor endpoints are unauthenticated")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("Server exiting")
}
