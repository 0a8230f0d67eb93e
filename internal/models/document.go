package models

import (
	"fmt"
	"strconv"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
)

// Document field names shared by every plain-data encoding of a show.
const (
	FieldTitle     = "title"
	FieldEpisodes  = "episodes"
	FieldIsWatched = "isWatched"
)

// ToDocument converts a show to a plain document with the persisted field names.
func (s Show) ToDocument() map[string]any {
	return map[string]any{
		FieldTitle:     s.Title,
		FieldEpisodes:  s.Episodes.String(),
		FieldIsWatched: s.IsWatched,
	}
}

// ShowFromDocument converts a plain document back to a show.
// A missing title falls back to DefaultTitle, a missing episode count to 0.
func ShowFromDocument(doc map[string]any) (Show, error) {
	var title string
	switch v := doc[FieldTitle].(type) {
	case nil:
	case string:
		title = v
	default:
		return Show{}, fmt.Errorf("field %q: expected string, got %T", FieldTitle, v)
	}

	var episodes EpisodeCount
	switch v := doc[FieldEpisodes].(type) {
	case nil:
	case string:
		n, err := ParseEpisodeCount(v)
		if err != nil {
			return Show{}, fmt.Errorf("field %q: %w", FieldEpisodes, err)
		}
		episodes = n
	case float64:
		n, ok := episodeCountFromFloat(v)
		if !ok {
			return Show{}, fmt.Errorf("field %q: %w", FieldEpisodes, invalidCount(v))
		}
		episodes = n
	case int:
		if v < 0 {
			return Show{}, fmt.Errorf("field %q: %w", FieldEpisodes, invalidCount(float64(v)))
		}
		episodes = EpisodeCount(v)
	default:
		return Show{}, fmt.Errorf("field %q: expected string or number, got %T", FieldEpisodes, v)
	}

	var watched bool
	switch v := doc[FieldIsWatched].(type) {
	case nil:
	case bool:
		watched = v
	default:
		return Show{}, fmt.Errorf("field %q: expected bool, got %T", FieldIsWatched, v)
	}

	return NewShow(title, episodes, watched), nil
}

// ShowsFromDocuments converts a list of documents, stopping at the first invalid one.
func ShowsFromDocuments(docs []map[string]any) ([]Show, error) {
	shows := make([]Show, 0, len(docs))
	for i, doc := range docs {
		show, err := ShowFromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		shows = append(shows, show)
	}
	return shows, nil
}

func invalidCount(v float64) error {
	return &apperrors.ErrInvalidEpisodeCount{Value: strconv.FormatFloat(v, 'f', -1, 64)}
}
