package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChangeKind identifies the command that produced a Change
type ChangeKind int

const (
	ChangeUnknown ChangeKind = iota
	ChangeAdded
	ChangeRemoved
	ChangeWatchedToggled
	ChangeRestored
	ChangeImported
)

// String returns the string representation of the change kind
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeWatchedToggled:
		return "watched-toggled"
	case ChangeRestored:
		return "restored"
	case ChangeImported:
		return "imported"
	default:
		return "unknown"
	}
}

// ParseChangeKind converts a string to ChangeKind
func ParseChangeKind(kind string) ChangeKind {
	switch strings.ToLower(kind) {
	case "added":
		return ChangeAdded
	case "removed":
		return ChangeRemoved
	case "watched-toggled":
		return ChangeWatchedToggled
	case "restored":
		return ChangeRestored
	case "imported":
		return ChangeImported
	default:
		return ChangeUnknown
	}
}

// MarshalJSON implements json.Marshaler interface
func (k ChangeKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (k *ChangeKind) UnmarshalJSON(data []byte) error {
	*k = ParseChangeKind(strings.Trim(string(data), `"`))
	return nil
}

// Change describes the outcome of a single library command
type Change struct {
	ID      uuid.UUID  `json:"id"`
	Kind    ChangeKind `json:"kind"`
	Title   string     `json:"title,omitempty"` // Title the command targeted, empty for whole-library changes
	Show    Show       `json:"show"`            // State of the show after the command
	Applied bool       `json:"applied"`         // False when the command was a no-op
	Count   int        `json:"count"`           // Number of shows in the library after the command
	At      time.Time  `json:"at"`
}

// NewChange creates a Change with a fresh ID stamped with the current time.
func NewChange(kind ChangeKind, title string, show Show, applied bool, count int) Change {
	return Change{
		ID:      uuid.New(),
		Kind:    kind,
		Title:   title,
		Show:    show,
		Applied: applied,
		Count:   count,
		At:      time.Now(),
	}
}
