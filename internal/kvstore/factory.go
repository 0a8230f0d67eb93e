package kvstore

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ProviderConfig holds the configuration needed to create a store instance.
type ProviderConfig struct {
	// Size is the maximum number of entries for the memory store. Zero means unbounded.
	Size int

	// Path is the file or database path for the file and sqlite stores.
	Path string

	// BusyTimeout bounds how long the file and sqlite stores wait for a lock.
	BusyTimeout time.Duration

	// Logger receives error reports from store operations. If nil, errors are only returned.
	Logger Logger

	// RedisAddress is the Redis/Valkey server address (e.g., "localhost:6379").
	RedisAddress string

	// RedisPassword is the password for the Redis/Valkey server.
	RedisPassword string

	// RedisDB is the Redis/Valkey database number.
	RedisDB int

	// KeyPrefix namespaces keys in shared backends (Redis).
	KeyPrefix string

	// Group is an optional label value used to namespace Prometheus metrics
	// (kvstore_hits_total, kvstore_misses_total, etc.).
	// When non-empty the store is automatically wrapped with metric instrumentation.
	Group string
}

// Provider is a constructor function that creates a Store from config.
type Provider func(cfg ProviderConfig) (Store, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register registers a store provider under the given name.
// It panics if the name is already registered or the provider is nil.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("kvstore: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("kvstore: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a new Store using the named provider and the given config.
// When cfg.Group is non-empty the resulting store is wrapped with metric
// instrumentation: hits, misses, writes, deletes and errors are tracked with a
// "store" label equal to Group, and a lazy entries collector is registered
// that queries Len() at scrape time.
func New(name string, cfg ProviderConfig) (Store, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("kvstore: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, fmt.Errorf("kvstore: create %s store: %w", name, err)
	}

	if cfg.Group == "" {
		return inner, nil
	}
	return newInstrumentedStore(inner, cfg.Group), nil
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
