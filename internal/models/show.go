package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
)

// DefaultTitle is used when a show is created without a title.
const DefaultTitle = "Unknown"

// Show represents a single catalogue entry
type Show struct {
	Title     string       `json:"title"`     // Unique key within a library (case-sensitive)
	Episodes  EpisodeCount `json:"episodes"`  // Number of episodes, stored as text
	IsWatched bool         `json:"isWatched"` // Whether the user has finished the show
}

// NewShow creates a show, defaulting an empty title to DefaultTitle.
func NewShow(title string, episodes EpisodeCount, watched bool) Show {
	if title == "" {
		title = DefaultTitle
	}
	return Show{
		Title:     title,
		Episodes:  episodes,
		IsWatched: watched,
	}
}

// NormalizeTitle converts user input to Unicode NFC so that composed and
// decomposed forms of the same title compare equal. Case is preserved.
func NormalizeTitle(title string) string {
	return norm.NFC.String(title)
}

// EpisodeCount is the number of episodes of a show. It is persisted as a JSON
// string ("12") and accepts either a string or a number when decoding.
type EpisodeCount int

// ParseEpisodeCount parses user or stored text into an EpisodeCount.
// Empty text is 0; anything that is not a non-negative integer is rejected.
func ParseEpisodeCount(text string) (EpisodeCount, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 {
		return 0, &apperrors.ErrInvalidEpisodeCount{Value: text}
	}
	return EpisodeCount(n), nil
}

// String returns the decimal representation of the count
func (c EpisodeCount) String() string {
	return strconv.Itoa(int(c))
}

// MarshalJSON implements json.Marshaler interface
func (c EpisodeCount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (c *EpisodeCount) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*c = 0
	case float64:
		n, ok := episodeCountFromFloat(v)
		if !ok {
			return &apperrors.ErrInvalidEpisodeCount{Value: string(data)}
		}
		*c = n
	case string:
		n, err := ParseEpisodeCount(v)
		if err != nil {
			return err
		}
		*c = n
	default:
		return fmt.Errorf("unsupported episode count type %T", raw)
	}
	return nil
}

// episodeCountFromFloat converts a decoded JSON number. Negative, fractional and
// out-of-range values are rejected.
func episodeCountFromFloat(v float64) (EpisodeCount, bool) {
	// float64(math.MaxInt) rounds up to 2^63, which does not fit in an int.
	if v < 0 || v != math.Trunc(v) || v >= float64(math.MaxInt) {
		return 0, false
	}
	return EpisodeCount(v), true
}
