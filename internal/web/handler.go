// Package web serves the HTML card view and a small JSON endpoint.
//
// Every mutation redirects back to the card page, which is rendered from the
// current library in full.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/models"
	"github.com/Belphemur/ShowShelf/internal/render"
)

// Catalogue is the subset of catalogue.Service the web UI drives.
type Catalogue interface {
	Add(ctx context.Context, show models.Show) (models.Change, error)
	Remove(ctx context.Context, title string) (models.Change, error)
	ToggleWatched(ctx context.Context, title string) (models.Change, error)
	List() []models.Show
}

type handler struct {
	catalogue Catalogue
	logger    zerolog.Logger
}

// NewHandler returns the compressed HTTP handler for the web UI.
func NewHandler(c Catalogue, logger zerolog.Logger) http.Handler {
	h := &handler{
		catalogue: c,
		logger:    logger.With().Str("component", "web").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /shows", h.addShow)
	mux.HandleFunc("POST /shows/toggle", h.toggleShow)
	mux.HandleFunc("POST /shows/remove", h.removeShow)
	mux.HandleFunc("GET /api/shows", h.listShows)

	return gzhttp.GzipHandler(h.logRequests(mux))
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	h.page(w, http.StatusOK, "")
}

func (h *handler) addShow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.page(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	episodes, err := models.ParseEpisodeCount(r.PostForm.Get("episodes"))
	if err != nil {
		h.page(w, http.StatusBadRequest, err.Error())
		return
	}
	watched, _ := strconv.ParseBool(r.PostForm.Get("isWatched"))
	if r.PostForm.Get("isWatched") == "on" {
		watched = true
	}

	show := models.NewShow(r.PostForm.Get("title"), episodes, watched)
	if _, err := h.catalogue.Add(r.Context(), show); err != nil {
		if errors.Is(err, &apperrors.ErrDuplicateShow{}) {
			h.page(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("title", show.Title).Msg("Failed to add show")
		h.page(w, http.StatusInternalServerError, "Failed to save the catalogue")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) toggleShow(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.catalogue.ToggleWatched)
}

func (h *handler) removeShow(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.catalogue.Remove)
}

// mutate runs command on the title posted in the form body.
func (h *handler) mutate(w http.ResponseWriter, r *http.Request, command func(context.Context, string) (models.Change, error)) {
	if err := r.ParseForm(); err != nil {
		h.page(w, http.StatusBadRequest, "Invalid form submission")
		return
	}
	title := r.PostForm.Get("title")
	if title == "" {
		h.page(w, http.StatusBadRequest, "Missing show title")
		return
	}
	if _, err := command(r.Context(), title); err != nil {
		h.logger.Error().Err(err).Str("title", title).Msg("Failed to update show")
		h.page(w, http.StatusInternalServerError, "Failed to save the catalogue")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) listShows(w http.ResponseWriter, r *http.Request) {
	shows := h.catalogue.List()
	docs := make([]map[string]any, len(shows))
	for i, show := range shows {
		docs[i] = show.ToDocument()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(docs); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write show list")
	}
}

// page renders the card grid with an optional message and status code.
func (h *handler) page(w http.ResponseWriter, status int, message string) {
	var buf bytes.Buffer
	if err := render.Page(&buf, render.PageData{Shows: h.catalogue.List(), Message: message}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Int("status", rec.status).Msg("HTTP request")
	})
}
