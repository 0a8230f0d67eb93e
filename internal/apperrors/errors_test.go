// Package apperrors tests verify the custom error types (ErrNotFound,
// ErrDuplicateShow, ErrInvalidEpisodeCount), their Error() messages, Is()
// matching semantics, constructor helpers, and compatibility with errors.Is()
// including through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrNotFound
// ---------------------------------------------------------------------------

func TestErrNotFound_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrNotFound
		expected string
	}{
		{
			name:     "with string ID",
			err:      &ErrNotFound{Resource: "show", ID: "Foo"},
			expected: "show with ID Foo not found",
		},
		{
			name:     "with int ID",
			err:      &ErrNotFound{Resource: "key", ID: 42},
			expected: "key with ID 42 not found",
		},
		{
			name:     "with nil ID",
			err:      &ErrNotFound{Resource: "show", ID: nil},
			expected: "show not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrNotFound_Is(t *testing.T) {
	t.Parallel()
	err := NewShowNotFoundError("Foo")

	t.Run("matches another ErrNotFound", func(t *testing.T) {
		if !errors.Is(err, &ErrNotFound{}) {
			t.Error("expected errors.Is to match *ErrNotFound")
		}
	})

	t.Run("does not match ErrDuplicateShow", func(t *testing.T) {
		if errors.Is(err, &ErrDuplicateShow{}) {
			t.Error("expected errors.Is not to match *ErrDuplicateShow")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", err)
		if !errors.Is(wrapped, &ErrNotFound{}) {
			t.Error("expected errors.Is to match *ErrNotFound through wrapping")
		}
	})
}

func TestNewShowNotFoundError(t *testing.T) {
	t.Parallel()
	err := NewShowNotFoundError("Severance")

	if err.Resource != "show" {
		t.Errorf("Resource = %q, want %q", err.Resource, "show")
	}
	if err.ID != "Severance" {
		t.Errorf("ID = %v, want %v", err.ID, "Severance")
	}
	if err.Error() != "show with ID Severance not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

// ---------------------------------------------------------------------------
// ErrDuplicateShow
// ---------------------------------------------------------------------------

func TestErrDuplicateShow_Error(t *testing.T) {
	t.Parallel()
	err := NewDuplicateShowError("Foo")

	if err.Title != "Foo" {
		t.Errorf("Title = %q, want %q", err.Title, "Foo")
	}
	if err.Error() != DuplicateShowMessage {
		t.Errorf("Error() = %q, want %q", err.Error(), DuplicateShowMessage)
	}
}

func TestErrDuplicateShow_Is(t *testing.T) {
	t.Parallel()
	err := NewDuplicateShowError("Foo")

	t.Run("matches with different title", func(t *testing.T) {
		if !errors.Is(err, &ErrDuplicateShow{Title: "Bar"}) {
			t.Error("expected errors.Is to match *ErrDuplicateShow regardless of title")
		}
	})

	t.Run("matches through double wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", err))
		if !errors.Is(wrapped, &ErrDuplicateShow{}) {
			t.Error("expected errors.Is to match *ErrDuplicateShow through double wrapping")
		}
	})

	t.Run("does not match plain error", func(t *testing.T) {
		if errors.Is(err, errors.New(DuplicateShowMessage)) {
			t.Error("expected errors.Is not to match a plain error")
		}
	})
}

// ---------------------------------------------------------------------------
// ErrInvalidEpisodeCount
// ---------------------------------------------------------------------------

func TestErrInvalidEpisodeCount_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"text", "twelve", `invalid episode count "twelve": must be a non-negative integer`},
		{"negative", "-1", `invalid episode count "-1": must be a non-negative integer`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := &ErrInvalidEpisodeCount{Value: tt.value}
			if got := err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Cross-type isolation: no error type matches any other type
// ---------------------------------------------------------------------------

func TestErrorTypes_CrossTypeIsolation(t *testing.T) {
	t.Parallel()
	errs := []error{
		&ErrNotFound{Resource: "x", ID: 1},
		&ErrDuplicateShow{Title: "x"},
		&ErrInvalidEpisodeCount{Value: "x"},
	}

	for i, a := range errs {
		for j, b := range errs {
			if i == j {
				continue
			}
			if errors.Is(a, b) {
				t.Errorf("expected errors.Is(%T, %T) to be false", a, b)
			}
		}
	}
}
