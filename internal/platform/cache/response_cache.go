package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"market_backend/internal/platform/metrics"
)

// ResponseCache は正規化済みレスポンスをTTL付きで保持する読み取り用キャッシュです。
//
// 保存から ttl 以内（境界を含む）のエントリだけを返し、期限切れのエントリはミスと同じ扱いにします。
// 無効化されている場合、Get は常にミスを返し Put は何もしません。
type ResponseCache struct {
	store   Store
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// Option は ResponseCache の生成オプションです。
type Option func(*ResponseCache)

// WithClock は現在時刻の取得関数を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(c *ResponseCache) { c.now = now }
}

// NewResponseCache は ResponseCache を生成します。store が nil ならメモリに保持します。
func NewResponseCache(store Store, ttl time.Duration, enabled bool, opts ...Option) *ResponseCache {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &ResponseCache{
		store:   store,
		ttl:     ttl,
		enabled: enabled,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled はキャッシュが有効かを返します。
func (c *ResponseCache) Enabled() bool { return c.enabled }

// TTL はエントリの有効期間を返します。
func (c *ResponseCache) TTL() time.Duration { return c.ttl }

// Get は新鮮なエントリがあれば out にデコードして true を返します。
// ストアのエラーはログに残してミスとして扱います。
func (c *ResponseCache) Get(ctx context.Context, key string, out any) bool {
	if !c.enabled {
		metrics.CacheLookups.WithLabelValues("disabled").Inc()
		return false
	}

	e, ok, err := c.store.Load(ctx, key)
	if err != nil {
		slog.Warn("cache lookup failed", "key", key, "error", err)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return false
	}
	if !ok || !c.fresh(e) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(e.Payload, out); err != nil {
		slog.Warn("cache payload decode failed", "key", key, "error", err)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	slog.Debug("cache hit", "key", key)
	return true
}

// Put は値を保存時刻とともに書き込みます（ベストエフォート）。
func (c *ResponseCache) Put(ctx context.Context, key string, value any) {
	if !c.enabled {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache payload encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Save(ctx, Entry{Key: key, Payload: b, StoredAt: c.now()}); err != nil {
		slog.Warn("cache store failed", "key", key, "error", err)
	}
}

// fresh は age <= ttl のときに true を返します。
func (c *ResponseCache) fresh(e Entry) bool {
	return c.now().Sub(e.StoredAt) <= c.ttl
}
