// Package cache はTTL付きのレスポンスキャッシュと、その保存先（メモリ / Redis）を提供します。
package cache

import (
	"context"
	"sync"
	"time"
)

// Entry はキャッシュに保存される1件のエントリです。
// Payload は正規化済みの値をJSONにしたもの、StoredAt は保存時刻です。
type Entry struct {
	Key      string
	Payload  []byte
	StoredAt time.Time
}

// Store はエントリの保存先を抽象化します。鮮度の判定は行いません。
type Store interface {
	Load(ctx context.Context, key string) (Entry, bool, error)
	Save(ctx context.Context, e Entry) error
}

// MemoryStore はプロセス内のマップにエントリを保持する Store です。
// 上書きされるかプロセスが終了するまで保持し続けます。
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore は空の MemoryStore を生成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Load はキーに対応するエントリを返します。
func (m *MemoryStore) Load(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

// Save はエントリを挿入または上書きします。
func (m *MemoryStore) Save(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Key] = e
	return nil
}

// Len は保持しているエントリ数を返します。
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
