package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore はエントリをRedisに保存する Store です。
// 複数プロセスでキャッシュを共有したい場合に使います。
type RedisStore struct {
	rdb       *redis.Client
	namespace string
	expiry    time.Duration
}

var _ Store = (*RedisStore)(nil)

// redisRecord はRedisに保存するJSONの形です。
type redisRecord struct {
	Payload  json.RawMessage `json:"payload"`
	StoredAt time.Time       `json:"stored_at"`
}

// NewRedisStore は RedisStore を生成します。
// namespace が空なら "market" を使い、Redis側の有効期限は ttl の2倍に設定します。
func NewRedisStore(rdb *redis.Client, namespace string, ttl time.Duration) *RedisStore {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &RedisStore{
		rdb:       rdb,
		namespace: namespace,
		expiry:    storeExpiry(ttl),
	}
}

// Load はRedisからエントリを読み出します。
// 壊れた値は削除したうえでミスとして扱います。
func (s *RedisStore) Load(ctx context.Context, key string) (Entry, bool, error) {
	rk := s.redisKey(key)

	b, err := s.rdb.Get(ctx, rk).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get %s: %w", rk, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(b, &rec); err != nil || len(rec.Payload) == 0 {
		// Delete corrupted cache entry
		if derr := s.rdb.Del(ctx, rk).Err(); derr != nil {
			slog.Warn("failed to delete corrupted cache entry", "key", rk, "error", derr)
		}
		return Entry{}, false, nil
	}
	return Entry{Key: key, Payload: rec.Payload, StoredAt: rec.StoredAt}, true, nil
}

// Save はエントリをRedisに書き込みます。
func (s *RedisStore) Save(ctx context.Context, e Entry) error {
	b, err := json.Marshal(redisRecord{Payload: e.Payload, StoredAt: e.StoredAt})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	rk := s.redisKey(e.Key)
	if err := s.rdb.Set(ctx, rk, b, s.expiry).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", rk, err)
	}
	return nil
}

func (s *RedisStore) redisKey(key string) string {
	return s.namespace + ":" + safe(key)
}
