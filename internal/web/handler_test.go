package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/catalogue"
	"github.com/Belphemur/ShowShelf/internal/models"
	"github.com/Belphemur/ShowShelf/internal/testutil"
)

func newTestHandler(t *testing.T, shows ...models.Show) (http.Handler, *catalogue.Service) {
	t.Helper()
	svc := testutil.NewCatalogue(t, shows...)
	return NewHandler(svc, zerolog.Nop()), svc
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Index_Empty(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if testutil.ParseHTML(t, rec.Body).Find(".empty").Length() != 1 {
		t.Error("empty library should show the placeholder")
	}
}

func TestHandler_AddShow(t *testing.T) {
	h, svc := newTestHandler(t)

	rec := postForm(h, "/shows", url.Values{"title": {"Foo"}, "episodes": {"12"}, "isWatched": {"on"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /shows status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}

	got, ok := svc.Get("Foo")
	if !ok || got != models.NewShow("Foo", 12, true) {
		t.Errorf("Get(Foo) = %+v, %v", got, ok)
	}

	_ = postForm(h, "/shows", url.Values{"title": {"Bar"}})
	doc := testutil.ParseHTML(t, get(h, "/").Body)
	if got := testutil.CardTitles(doc); !reflect.DeepEqual(got, []string{"Foo", "Bar"}) {
		t.Errorf("card titles = %v, want [Foo Bar]", got)
	}
}

func TestHandler_AddShow_Errors(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "duplicate title",
			form:       url.Values{"title": {"Foo"}, "episodes": {"5"}},
			wantStatus: http.StatusConflict,
			wantMsg:    apperrors.DuplicateShowMessage,
		},
		{
			name:       "invalid episodes",
			form:       url.Values{"title": {"Bar"}, "episodes": {"twelve"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid episode count",
		},
		{
			name:       "negative episodes",
			form:       url.Values{"title": {"Bar"}, "episodes": {"-2"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid episode count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestHandler(t, models.NewShow("Foo", 12, false))

			rec := postForm(h, "/shows", tt.form)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			doc := testutil.ParseHTML(t, rec.Body)
			if msg := doc.Find(".error").Text(); !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("error message = %q, want it to contain %q", msg, tt.wantMsg)
			}
			if n := len(svc.List()); n != 1 {
				t.Errorf("library size = %d, want 1", n)
			}
		})
	}
}

func TestHandler_ToggleAndRemove(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"plain title", "Dark"},
		{"title with slash", "AC/DC Live"},
		{"single dot", "."},
		{"double dot", ".."},
		{"percent and question mark", "100%?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestHandler(t, models.NewShow(tt.title, 3, false), models.NewShow("Other", 1, false))
			form := url.Values{"title": {tt.title}}

			rec := postForm(h, "/shows/toggle", form)
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("toggle status = %d, want 303", rec.Code)
			}
			if got, _ := svc.Get(tt.title); !got.IsWatched {
				t.Error("toggle should mark the show watched")
			}

			rec = postForm(h, "/shows/remove", form)
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("remove status = %d, want 303", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != "/" {
				t.Errorf("Location = %q, want /", loc)
			}
			if _, ok := svc.Get(tt.title); ok {
				t.Errorf("remove should delete %q, library = %+v", tt.title, svc.List())
			}
			if n := len(svc.List()); n != 1 {
				t.Errorf("library size = %d, want 1", n)
			}
		})
	}
}

func TestHandler_ToggleAndRemove_MissingShow(t *testing.T) {
	h, _ := newTestHandler(t)

	// Unknown titles are no-ops, not errors.
	if rec := postForm(h, "/shows/remove", url.Values{"title": {"Missing"}}); rec.Code != http.StatusSeeOther {
		t.Errorf("remove of missing show status = %d, want 303", rec.Code)
	}
	if rec := postForm(h, "/shows/toggle", url.Values{}); rec.Code != http.StatusBadRequest {
		t.Errorf("toggle without title status = %d, want 400", rec.Code)
	}
}

func TestHandler_ListShowsJSON(t *testing.T) {
	h, svc := newTestHandler(t)
	_, _ = svc.Add(context.Background(), models.NewShow("Foo", 12, true))

	rec := get(h, "/api/shows")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var docs []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&docs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 1 || docs[0]["title"] != "Foo" || docs[0]["episodes"] != "12" || docs[0]["isWatched"] != true {
		t.Errorf("docs = %+v", docs)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)
	if rec := get(h, "/shows"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /shows status = %d, want 405", rec.Code)
	}
	if rec := get(h, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope status = %d, want 404", rec.Code)
	}
}

func TestHandler_GzipCompression(t *testing.T) {
	h, svc := newTestHandler(t)
	for i := range 50 {
		_, _ = svc.Add(context.Background(), models.NewShow(fmt.Sprintf("Show %d", i), models.EpisodeCount(i), false))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if enc := rec.Header().Get("Content-Encoding"); enc != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", enc)
	}
}

// failingCatalogue fails every mutation.
type failingCatalogue struct{}

var errSave = errors.New("save library: disk full")

func (failingCatalogue) Add(context.Context, models.Show) (models.Change, error) {
	return models.Change{}, errSave
}
func (failingCatalogue) Remove(context.Context, string) (models.Change, error) {
	return models.Change{}, errSave
}
func (failingCatalogue) ToggleWatched(context.Context, string) (models.Change, error) {
	return models.Change{}, errSave
}
func (failingCatalogue) List() []models.Show { return nil }

func TestHandler_SaveFailure(t *testing.T) {
	h := NewHandler(failingCatalogue{}, zerolog.Nop())

	if rec := postForm(h, "/shows", url.Values{"title": {"Foo"}}); rec.Code != http.StatusInternalServerError {
		t.Errorf("add status = %d, want 500", rec.Code)
	}
	if rec := postForm(h, "/shows/toggle", url.Values{"title": {"Foo"}}); rec.Code != http.StatusInternalServerError {
		t.Errorf("toggle status = %d, want 500", rec.Code)
	}
}

func TestNewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 0, http.NotFoundHandler())
	if srv.Addr != "localhost:8080" {
		t.Errorf("Addr = %q, want localhost:8080", srv.Addr)
	}
}
