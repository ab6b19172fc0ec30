package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

// failingStore は常にエラーを返す Store です。
type failingStore struct{}

func (failingStore) Load(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, errors.New("store down")
}
func (failingStore) Save(context.Context, Entry) error { return errors.New("store down") }

type quote struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// TestResponseCache_TTLBoundary は age <= TTL のエントリだけが返されることを検証します。
func TestResponseCache_TTLBoundary(t *testing.T) {
	t.Parallel()

	const ttl = 5 * time.Minute

	tests := []struct {
		name    string
		elapsed time.Duration
		wantHit bool
	}{
		{"just stored", 0, true},
		{"one ms before expiry", ttl - time.Millisecond, true},
		{"exactly at expiry", ttl, true},
		{"one ms after expiry", ttl + time.Millisecond, false},
		{"long after expiry", time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clock := newClock()
			c := NewResponseCache(NewMemoryStore(), ttl, true, WithClock(clock.Now))
			c.Put(context.Background(), "stock-quote-AAPL", quote{Symbol: "AAPL", Price: "190.12"})

			clock.Advance(tt.elapsed)

			var got quote
			hit := c.Get(context.Background(), "stock-quote-AAPL", &got)
			assert.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.Equal(t, quote{Symbol: "AAPL", Price: "190.12"}, got)
			}
		})
	}
}

func TestResponseCache_Miss(t *testing.T) {
	t.Parallel()

	c := NewResponseCache(nil, time.Minute, true)
	var got quote
	assert.False(t, c.Get(context.Background(), "unknown", &got))
}

func TestResponseCache_PutOverwritesAndRestampsEntry(t *testing.T) {
	t.Parallel()

	clock := newClock()
	c := NewResponseCache(NewMemoryStore(), time.Minute, true, WithClock(clock.Now))
	c.Put(context.Background(), "k", quote{Price: "1"})

	clock.Advance(50 * time.Second)
	c.Put(context.Background(), "k", quote{Price: "2"})

	clock.Advance(50 * time.Second)
	var got quote
	require.True(t, c.Get(context.Background(), "k", &got))
	assert.Equal(t, "2", got.Price)
}

// TestResponseCache_Disabled は無効時に Get が常にミスし Put が何も保存しないことを検証します。
func TestResponseCache_Disabled(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	c := NewResponseCache(store, time.Minute, false)
	c.Put(context.Background(), "k", quote{Price: "1"})

	var got quote
	assert.False(t, c.Get(context.Background(), "k", &got))
	assert.Equal(t, 0, store.Len())
	assert.False(t, c.Enabled())
}

func TestResponseCache_GetIsSideEffectFree(t *testing.T) {
	t.Parallel()

	clock := newClock()
	store := NewMemoryStore()
	c := NewResponseCache(store, time.Minute, true, WithClock(clock.Now))
	c.Put(context.Background(), "k", quote{Price: "1"})
	clock.Advance(2 * time.Minute)

	var got quote
	assert.False(t, c.Get(context.Background(), "k", &got))
	// 期限切れでも物理削除はしない
	assert.Equal(t, 1, store.Len())
}

func TestResponseCache_StoreErrorsAreMisses(t *testing.T) {
	t.Parallel()

	c := NewResponseCache(failingStore{}, time.Minute, true)
	c.Put(context.Background(), "k", quote{Price: "1"})

	var got quote
	assert.False(t, c.Get(context.Background(), "k", &got))
}

func TestResponseCache_UndecodablePayloadIsMiss(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), Entry{Key: "k", Payload: []byte("not json"), StoredAt: time.Now()}))

	c := NewResponseCache(store, time.Minute, true)
	var got quote
	assert.False(t, c.Get(context.Background(), "k", &got))
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	c := NewResponseCache(store, time.Minute, true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Put(context.Background(), "shared", quote{Price: "1"})
			var got quote
			c.Get(context.Background(), "shared", &got)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, store.Len())
}
