package kvstore

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryStore)
}

// memoryStore wraps hashicorp/golang-lru/v2/expirable to implement the Store interface.
// Entries never expire; with Size > 0 the least recently used key is dropped when full.
type memoryStore struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryStore(cfg ProviderConfig) (Store, error) {
	return &memoryStore{
		inner: lru.NewLRU[string, []byte](cfg.Size, nil, 0),
	}, nil
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := m.inner.Get(key)
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.inner.Add(key, stored)
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.inner.Remove(key)
	return nil
}

func (m *memoryStore) Contains(_ context.Context, key string) (bool, error) {
	return m.inner.Contains(key), nil
}

func (m *memoryStore) Len(_ context.Context) (int, error) {
	return m.inner.Len(), nil
}

func (m *memoryStore) Close() error {
	return nil
}
