// Package render turns shows into cards, terminal tables and the HTML card page.
package render

import "github.com/Belphemur/ShowShelf/internal/models"

// Button classes for the watched toggle.
const (
	ClassWatched    = "btn-light-green"
	ClassNotWatched = "btn-light-red"
)

// Card is the view model of a single show.
type Card struct {
	Title        string // Raw title, posted back by the card actions
	Heading      string // Quoted title as displayed
	Episodes     string
	WatchedLabel string
	WatchedClass string
	IsWatched    bool
}

// NewCard builds the card for show.
func NewCard(show models.Show) Card {
	card := Card{
		Title:        show.Title,
		Heading:      `"` + show.Title + `"`,
		Episodes:     episodesLabel(show.Episodes),
		WatchedLabel: "Not watched",
		WatchedClass: ClassNotWatched,
		IsWatched:    show.IsWatched,
	}
	if show.IsWatched {
		card.WatchedLabel = "Watched"
		card.WatchedClass = ClassWatched
	}
	return card
}

// Cards builds one card per show, keeping order.
func Cards(shows []models.Show) []Card {
	cards := make([]Card, len(shows))
	for i, show := range shows {
		cards[i] = NewCard(show)
	}
	return cards
}

func episodesLabel(n models.EpisodeCount) string {
	return n.String() + " episodes"
}
