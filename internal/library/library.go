// Package library holds the in-memory catalogue of shows.
//
// A Library is an ordered collection of shows that are unique by title
// (case-sensitive, exact match). Insertion order is preserved; there is no
// sorting or indexing. A Library is owned by a single caller and is not safe
// for concurrent use.
package library

import "github.com/Belphemur/ShowShelf/internal/models"

// Library is an ordered, unique-by-title collection of shows
type Library struct {
	shows []models.Show
}

// New creates an empty library.
func New() *Library {
	return &Library{}
}

// AddShow appends show unless a show with the same title is already present.
// It reports whether the show was added.
func (l *Library) AddShow(show models.Show) bool {
	if l.IsInLibrary(show) {
		return false
	}
	l.shows = append(l.shows, show)
	return true
}

// RemoveShow removes the show with the given title and reports whether one was removed.
func (l *Library) RemoveShow(title string) bool {
	i := l.indexOf(title)
	if i < 0 {
		return false
	}
	l.shows = append(l.shows[:i], l.shows[i+1:]...)
	return true
}

// GetShow returns the show with the given title.
func (l *Library) GetShow(title string) (models.Show, bool) {
	i := l.indexOf(title)
	if i < 0 {
		return models.Show{}, false
	}
	return l.shows[i], true
}

// IsInLibrary reports whether a show with the same title as show exists.
func (l *Library) IsInLibrary(show models.Show) bool {
	return l.indexOf(show.Title) >= 0
}

// ToggleWatched flips the watched flag of the show with the given title and
// returns its new state.
func (l *Library) ToggleWatched(title string) (models.Show, bool) {
	i := l.indexOf(title)
	if i < 0 {
		return models.Show{}, false
	}
	l.shows[i].IsWatched = !l.shows[i].IsWatched
	return l.shows[i], true
}

// Shows returns a copy of the shows in insertion order.
func (l *Library) Shows() []models.Show {
	out := make([]models.Show, len(l.shows))
	copy(out, l.shows)
	return out
}

// Len returns the number of shows.
func (l *Library) Len() int {
	return len(l.shows)
}

// Replace discards the current contents and adds every show in order.
// Later shows whose title was already seen are dropped; the number dropped is returned.
func (l *Library) Replace(shows []models.Show) int {
	l.shows = make([]models.Show, 0, len(shows))
	dropped := 0
	for _, show := range shows {
		if !l.AddShow(show) {
			dropped++
		}
	}
	return dropped
}

func (l *Library) indexOf(title string) int {
	for i := range l.shows {
		if l.shows[i].Title == title {
			return i
		}
	}
	return -1
}
