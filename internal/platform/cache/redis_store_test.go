package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisStore_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		namespace         string
		ttl               time.Duration
		expectedNamespace string
		expectedExpiry    time.Duration
	}{
		{"defaults when empty", "", 0, "market", 10 * time.Minute},
		{"custom values preserved", "custom", time.Minute, "custom", 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewRedisStore(nil, tt.namespace, tt.ttl)
			assert.Equal(t, tt.expectedNamespace, s.namespace)
			assert.Equal(t, tt.expectedExpiry, s.expiry)
		})
	}
}

func TestRedisStore_Save(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	storedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	payload := []byte(`{"symbol":"AAPL"}`)
	expected, _ := json.Marshal(redisRecord{Payload: payload, StoredAt: storedAt})

	mock.ExpectSet("market:stock-quote-AAPL", expected, 10*time.Minute).SetVal("OK")

	s := NewRedisStore(rdb, "market", 5*time.Minute)
	err := s.Save(context.Background(), Entry{Key: "stock-quote-AAPL", Payload: payload, StoredAt: storedAt})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Load_Hit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	storedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	raw, _ := json.Marshal(redisRecord{Payload: []byte(`[1,2,3]`), StoredAt: storedAt})
	mock.ExpectGet("market:market-indices").SetVal(string(raw))

	s := NewRedisStore(rdb, "market", 5*time.Minute)
	e, ok, err := s.Load(context.Background(), "market-indices")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "market-indices", e.Key)
	assert.JSONEq(t, `[1,2,3]`, string(e.Payload))
	assert.True(t, storedAt.Equal(e.StoredAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Load_Miss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("market:crypto-data").RedisNil()

	s := NewRedisStore(rdb, "market", 5*time.Minute)
	_, ok, err := s.Load(context.Background(), "crypto-data")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRedisStore_Load_CorruptedEntry は破損したエントリを削除してミスとして扱うことを検証します。
func TestRedisStore_Load_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("market:market-news").SetVal("invalid json")
	mock.ExpectDel("market:market-news").SetVal(1)

	s := NewRedisStore(rdb, "market", 5*time.Minute)
	_, ok, err := s.Load(context.Background(), "market-news")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Load_Error(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("market:market-news").SetErr(errors.New("connection refused"))

	s := NewRedisStore(rdb, "market", 5*time.Minute)
	_, ok, err := s.Load(context.Background(), "market-news")
	assert.Error(t, err)
	assert.False(t, ok)
}

// TestResponseCache_WithRedisStore はRedisを保存先にした場合のラウンドトリップを検証します。
func TestResponseCache_WithRedisStore(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	clock := newClock()
	value := quote{Symbol: "MSFT", Price: "410.00"}
	payload, _ := json.Marshal(value)
	record, _ := json.Marshal(redisRecord{Payload: payload, StoredAt: clock.Now()})

	mock.ExpectSet("market:stock-quote-MSFT", record, 10*time.Minute).SetVal("OK")
	mock.ExpectGet("market:stock-quote-MSFT").SetVal(string(record))

	c := NewResponseCache(NewRedisStore(rdb, "", 5*time.Minute), 5*time.Minute, true, WithClock(clock.Now))
	c.Put(context.Background(), "stock-quote-MSFT", value)

	var got quote
	require.True(t, c.Get(context.Background(), "stock-quote-MSFT", &got))
	assert.Equal(t, value, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
