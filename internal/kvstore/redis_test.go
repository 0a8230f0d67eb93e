package kvstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestRedisStore requires a running Redis/Valkey server.
// Set REDIS_ADDRESS (e.g., "localhost:6379") to enable these tests.
// They are skipped by default.

func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("Skipping Redis tests: set REDIS_ADDRESS to enable")
	}
	return addr
}

// flushTestRedisDB clears all data in DB 15 so tests start with a clean slate.
func flushTestRedisDB(t *testing.T, addr string) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush Redis test DB: %v", err)
	}
}

func newTestRedisStore(t *testing.T) Store {
	t.Helper()
	addr := skipIfNoRedis(t)
	flushTestRedisDB(t, addr)
	s, err := New("redis", ProviderConfig{
		RedisAddress: addr,
		RedisDB:      15, // use a high DB number for tests
	})
	if err != nil {
		t.Fatalf("New redis store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedisStore_Contract(t *testing.T) {
	skipIfNoRedis(t)
	runStoreContract(t, newTestRedisStore)
}

func TestRedisStore_KeyPrefixIsolation(t *testing.T) {
	addr := skipIfNoRedis(t)
	flushTestRedisDB(t, addr)
	ctx := context.Background()

	a, err := New("redis", ProviderConfig{RedisAddress: addr, RedisDB: 15, KeyPrefix: "a:"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	b, err := New("redis", ProviderConfig{RedisAddress: addr, RedisDB: 15, KeyPrefix: "b:"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	_ = a.Set(ctx, "library", []byte("from-a"))
	if ok, _ := b.Contains(ctx, "library"); ok {
		t.Fatal("Stores with different prefixes must not share keys")
	}
}
