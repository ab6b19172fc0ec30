// Package di はアプリケーションの各コンポーネントを設定から組み立てます。
package di

import (
	"github.com/redis/go-redis/v9"

	"market_backend/internal/app/config"
	"market_backend/internal/feature/market/formatter"
	"market_backend/internal/feature/market/usecase"
	"market_backend/internal/platform/cache"
	"market_backend/internal/platform/externalapi/alphavantage"
	infrahttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/ratelimiter"
)

// NewResponseCache はレスポンスキャッシュを生成します。
// rdb が nil の場合はプロセス内メモリに保存します。
func NewResponseCache(cfg config.Config, rdb *redis.Client) *cache.ResponseCache {
	var store cache.Store
	if rdb != nil {
		store = cache.NewRedisStore(rdb, cfg.Redis.Namespace, cfg.Market.CacheExpiration)
	} else {
		store = cache.NewMemoryStore()
	}
	return cache.NewResponseCache(store, cfg.Market.CacheExpiration, cfg.Market.CachingEnabled)
}

// NewMarketClient は上流APIクライアントを生成します。
func NewMarketClient(cfg config.MarketConfig) *alphavantage.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.RequestTimeout)
	return alphavantage.NewClient(alphavantage.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
	}, httpClient)
}

// NewMarketUsecase は上流クライアント・キャッシュ・スロットラーを組み合わせた MarketUsecase を生成します。
func NewMarketUsecase(cfg config.Config, rdb *redis.Client) *usecase.MarketUsecase {
	opts := usecase.Options{
		APIKeyConfigured: cfg.Market.HasAPIKey(),
		RequestTimeout:   cfg.Market.RequestTimeout,
	}
	if cfg.Market.SyntheticCryptoChange {
		opts.CryptoChange = formatter.SyntheticChange(nil)
	}
	return usecase.NewMarketUsecase(
		NewMarketClient(cfg.Market),
		NewResponseCache(cfg, rdb),
		ratelimiter.NewThrottler(cfg.Market.RequestDelay),
		opts,
	)
}
