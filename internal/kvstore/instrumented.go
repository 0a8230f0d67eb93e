package kvstore

import "context"

// instrumentedStore wraps a Store and automatically records Prometheus metrics
// for hits, misses, writes, deletes, errors, and current entry count under the given group label.
// All metric tracking lives in the store layer so callers do not need to manage it.
type instrumentedStore struct {
	inner Store
	group string
}

// newInstrumentedStore wraps inner with metric instrumentation for the given group.
// A lazy entries collector is registered that queries inner.Len() at scrape time,
// which stays correct when another process writes to the same backend.
func newInstrumentedStore(inner Store, group string) *instrumentedStore {
	registerEntriesCollector(group, func() int {
		n, err := inner.Len(context.Background())
		if err != nil {
			return 0
		}
		return n
	})
	return &instrumentedStore{inner: inner, group: group}
}

func (s *instrumentedStore) recordError(op string, err error) {
	if err != nil {
		ErrorsTotal.WithLabelValues(s.group, op).Inc()
	}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, ok, err := s.inner.Get(ctx, key)
	switch {
	case err != nil:
		s.recordError("get", err)
	case ok:
		HitsTotal.WithLabelValues(s.group).Inc()
	default:
		MissesTotal.WithLabelValues(s.group).Inc()
	}
	return val, ok, err
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	err := s.inner.Set(ctx, key, value)
	if err == nil {
		WritesTotal.WithLabelValues(s.group).Inc()
	}
	s.recordError("set", err)
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	err := s.inner.Delete(ctx, key)
	if err == nil {
		DeletesTotal.WithLabelValues(s.group).Inc()
	}
	s.recordError("delete", err)
	return err
}

func (s *instrumentedStore) Contains(ctx context.Context, key string) (bool, error) {
	ok, err := s.inner.Contains(ctx, key)
	s.recordError("contains", err)
	return ok, err
}

func (s *instrumentedStore) Len(ctx context.Context) (int, error) {
	n, err := s.inner.Len(ctx)
	s.recordError("len", err)
	return n, err
}

// Close unregisters the entries collector and closes the underlying store.
func (s *instrumentedStore) Close() error {
	unregisterEntriesCollector(s.group)
	return s.inner.Close()
}
