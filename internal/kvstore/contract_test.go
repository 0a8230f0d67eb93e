package kvstore

import (
	"context"
	"testing"
)

// runStoreContract exercises the behaviour every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetSet", func(t *testing.T) {
		s := newStore(t)

		val, ok, err := s.Get(ctx, "key1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if ok || val != nil {
			t.Fatalf("Expected miss for key1, got %q", val)
		}

		if err := s.Set(ctx, "key1", []byte("value1")); err != nil {
			t.Fatalf("Set: %v", err)
		}
		val, ok, err = s.Get(ctx, "key1")
		if err != nil || !ok {
			t.Fatalf("Expected hit for key1, ok=%v err=%v", ok, err)
		}
		if string(val) != "value1" {
			t.Fatalf("Expected value1, got %s", string(val))
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := newStore(t)

		_ = s.Set(ctx, "key", []byte("v1"))
		_ = s.Set(ctx, "key", []byte("v2"))

		val, ok, _ := s.Get(ctx, "key")
		if !ok || string(val) != "v2" {
			t.Fatalf("Expected v2, got %q (ok=%v)", val, ok)
		}
		if n, _ := s.Len(ctx); n != 1 {
			t.Fatalf("Expected Len 1 after overwrite, got %d", n)
		}
	})

	t.Run("ContainsAndDelete", func(t *testing.T) {
		s := newStore(t)

		if ok, _ := s.Contains(ctx, "present"); ok {
			t.Fatal("Expected absent key to not be contained")
		}
		_ = s.Set(ctx, "present", []byte("data"))
		if ok, _ := s.Contains(ctx, "present"); !ok {
			t.Fatal("Expected present key to be contained")
		}

		if err := s.Delete(ctx, "present"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if ok, _ := s.Contains(ctx, "present"); ok {
			t.Fatal("Expected deleted key to be gone")
		}
		if err := s.Delete(ctx, "never-set"); err != nil {
			t.Fatalf("Delete of a missing key should not fail: %v", err)
		}
	})

	t.Run("Len", func(t *testing.T) {
		s := newStore(t)

		if n, _ := s.Len(ctx); n != 0 {
			t.Fatalf("Expected Len 0, got %d", n)
		}
		_ = s.Set(ctx, "a", []byte("1"))
		_ = s.Set(ctx, "b", []byte("2"))
		if n, _ := s.Len(ctx); n != 2 {
			t.Fatalf("Expected Len 2, got %d", n)
		}
	})

	t.Run("EmptyValue", func(t *testing.T) {
		s := newStore(t)

		if err := s.Set(ctx, "empty", []byte{}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		val, ok, err := s.Get(ctx, "empty")
		if err != nil || !ok {
			t.Fatalf("Expected hit for empty value, ok=%v err=%v", ok, err)
		}
		if len(val) != 0 {
			t.Fatalf("Expected empty value, got %q", val)
		}
	})
}
