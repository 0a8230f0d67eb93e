// Package testutil holds helpers shared by transport tests.
// It must not be imported by production code.
package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowShelf/internal/catalogue"
	"github.com/Belphemur/ShowShelf/internal/kvstore"
	"github.com/Belphemur/ShowShelf/internal/models"
	"github.com/Belphemur/ShowShelf/internal/persistence"
)

// NewCatalogue returns a catalogue backed by a fresh memory store, seeded with shows.
func NewCatalogue(t *testing.T, shows ...models.Show) *catalogue.Service {
	t.Helper()
	store, err := kvstore.New("memory", kvstore.ProviderConfig{})
	if err != nil {
		t.Fatalf("kvstore.New: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc := catalogue.New(persistence.NewRepository(store, persistence.Options{}, zerolog.Nop()), zerolog.Nop())
	for _, show := range shows {
		if _, err := svc.Add(context.Background(), show); err != nil {
			t.Fatalf("seed %q: %v", show.Title, err)
		}
	}
	return svc
}

// ParseHTML parses an HTML document for assertions.
func ParseHTML(t *testing.T, r io.Reader) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		t.Fatalf("parse HTML: %v", err)
	}
	return doc
}

// CardTitles returns the data-title of every rendered card in order.
func CardTitles(doc *goquery.Document) []string {
	var titles []string
	doc.Find(".card").Each(func(_ int, s *goquery.Selection) {
		if title, ok := s.Attr("data-title"); ok {
			titles = append(titles, title)
		}
	})
	return titles
}
