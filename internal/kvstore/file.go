package kvstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const fileLockRetryDelay = 25 * time.Millisecond

func init() {
	Register("file", newFileStore)
}

// fileStore keeps every key in one JSON object file, the local equivalent of
// browser storage. Values are arbitrary bytes, written base64-encoded.
//
// Writes go to a temporary file that is renamed over the original, so readers
// never observe a partial document. A sibling ".lock" file serialises access
// between processes; the mutex serialises access within one.
type fileStore struct {
	path        string
	lock        *flock.Flock
	busyTimeout time.Duration
	mu          sync.Mutex
}

func newFileStore(cfg ProviderConfig) (Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("file store requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	timeout := cfg.BusyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &fileStore{
		path:        cfg.Path,
		lock:        flock.New(cfg.Path + ".lock"),
		busyTimeout: timeout,
	}, nil
}

func (f *fileStore) withLock(ctx context.Context, exclusive bool, fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, f.busyTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = f.lock.TryLockContext(ctx, fileLockRetryDelay)
	} else {
		locked, err = f.lock.TryRLockContext(ctx, fileLockRetryDelay)
	}
	if err != nil {
		return fmt.Errorf("lock %s: %w", f.path, err)
	}
	if !locked {
		return fmt.Errorf("lock %s: not acquired", f.path)
	}
	defer func() { _ = f.lock.Unlock() }()

	return fn()
}

func (f *fileStore) read() (map[string][]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]byte{}, nil
	}
	if err != nil {
		return nil, err
	}
	entries := map[string][]byte{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return entries, nil
}

func (f *fileStore) write(entries map[string][]byte) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path)
}

func (f *fileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		val []byte
		ok  bool
	)
	err := f.withLock(ctx, false, func() error {
		entries, err := f.read()
		if err != nil {
			return err
		}
		val, ok = entries[key]
		return nil
	})
	if err != nil || !ok {
		return nil, false, err
	}
	return val, true, nil
}

func (f *fileStore) Set(ctx context.Context, key string, value []byte) error {
	return f.withLock(ctx, true, func() error {
		entries, err := f.read()
		if err != nil {
			return err
		}
		entries[key] = bytes.Clone(value)
		return f.write(entries)
	})
}

func (f *fileStore) Delete(ctx context.Context, key string) error {
	return f.withLock(ctx, true, func() error {
		entries, err := f.read()
		if err != nil {
			return err
		}
		if _, ok := entries[key]; !ok {
			return nil
		}
		delete(entries, key)
		return f.write(entries)
	})
}

func (f *fileStore) Contains(ctx context.Context, key string) (bool, error) {
	_, ok, err := f.Get(ctx, key)
	return ok, err
}

func (f *fileStore) Len(ctx context.Context) (int, error) {
	var n int
	err := f.withLock(ctx, false, func() error {
		entries, err := f.read()
		if err != nil {
			return err
		}
		n = len(entries)
		return nil
	})
	return n, err
}

func (f *fileStore) Close() error {
	return f.lock.Close()
}
