// Package kvstore provides the string-keyed stores the show library is persisted to.
//
// Backends register themselves by name (memory, file, sqlite, redis) and are
// created through New, which optionally wraps them with Prometheus instrumentation.
package kvstore

import "context"

// Store defines the interface for a persistent string-keyed byte store.
// Implementations may use in-memory storage, a local file, SQLite, or Redis/Valkey.
type Store interface {
	// Get retrieves a value by key. Returns the value and true if found, or nil and false if not.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given key. If the key already exists, it is overwritten.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Contains checks whether a key exists.
	Contains(ctx context.Context, key string) (bool, error)

	// Len returns the number of keys currently stored.
	Len(ctx context.Context) (int, error)

	// Close releases any resources held by the store (e.g., network connections).
	Close() error
}

// Logger receives error reports from background store operations.
type Logger interface {
	Error(msg string, err error)
}
