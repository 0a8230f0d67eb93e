// Package catalogue runs the library commands shared by the CLI, the web UI and the gRPC API.
//
// A Service owns one library.Library and persists it after every applied
// command. Commands are serialized with a mutex so concurrent transports see
// the same single-writer behaviour as an interactive session.
package catalogue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/library"
	"github.com/Belphemur/ShowShelf/internal/metrics"
	"github.com/Belphemur/ShowShelf/internal/models"
)

// Repository persists the full show list.
type Repository interface {
	Save(ctx context.Context, shows []models.Show) error
	Load(ctx context.Context) ([]models.Show, error)
}

// Listener is notified after every applied command.
type Listener func(models.Change)

// Service is the command surface over a single library.
type Service struct {
	mu      sync.Mutex
	library *library.Library
	repo    Repository
	logger  zerolog.Logger

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// New creates a service with an empty library. Call Restore to load saved shows.
func New(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		library:   library.New(),
		repo:      repo,
		logger:    logger.With().Str("component", "catalogue").Logger(),
		listeners: make(map[int]Listener),
	}
}

// Restore replaces the in-memory library with the persisted one.
// A missing or unreadable library leaves the catalogue empty; the failure is only logged.
// Stored titles are normalized like command input, so titles that only differ in
// Unicode composition collapse into the first one.
func (s *Service) Restore(ctx context.Context) (models.Change, error) {
	shows, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load saved library, starting empty")
		shows = nil
	}
	normalized := make([]models.Show, len(shows))
	for i, show := range shows {
		normalized[i] = models.NewShow(models.NormalizeTitle(show.Title), show.Episodes, show.IsWatched)
	}

	s.mu.Lock()
	dropped := s.library.Replace(normalized)
	count := s.library.Len()
	s.mu.Unlock()

	if dropped > 0 {
		s.logger.Warn().Int("dropped", dropped).Msg("Dropped duplicate titles from saved library")
	}
	s.logger.Info().Int("shows", count).Msg("Library restored")

	change := models.NewChange(models.ChangeRestored, "", models.Show{}, true, count)
	s.record("restore", metrics.ResultApplied)
	s.notify(change)
	return change, nil
}

// Add appends show to the library and saves it.
// A show whose title is already present is rejected with apperrors.ErrDuplicateShow.
func (s *Service) Add(ctx context.Context, show models.Show) (models.Change, error) {
	show = models.NewShow(models.NormalizeTitle(show.Title), show.Episodes, show.IsWatched)

	s.mu.Lock()
	if !s.library.AddShow(show) {
		count := s.library.Len()
		s.mu.Unlock()
		s.record("add", metrics.ResultDuplicate)
		return models.NewChange(models.ChangeAdded, show.Title, show, false, count), apperrors.NewDuplicateShowError(show.Title)
	}
	change, err := s.saveLocked(ctx, models.ChangeAdded, show.Title, show)
	s.mu.Unlock()

	return s.finish("add", change, err)
}

// Remove deletes the show with the given title. Removing an unknown title is a no-op.
func (s *Service) Remove(ctx context.Context, title string) (models.Change, error) {
	title = models.NormalizeTitle(title)

	s.mu.Lock()
	show, ok := s.library.GetShow(title)
	if !ok || !s.library.RemoveShow(title) {
		count := s.library.Len()
		s.mu.Unlock()
		s.record("remove", metrics.ResultNoop)
		return models.NewChange(models.ChangeRemoved, title, models.Show{}, false, count), nil
	}
	change, err := s.saveLocked(ctx, models.ChangeRemoved, title, show)
	s.mu.Unlock()

	return s.finish("remove", change, err)
}

// ToggleWatched flips the watched flag of the show with the given title.
// Toggling an unknown title is a no-op.
func (s *Service) ToggleWatched(ctx context.Context, title string) (models.Change, error) {
	title = models.NormalizeTitle(title)

	s.mu.Lock()
	show, ok := s.library.ToggleWatched(title)
	if !ok {
		count := s.library.Len()
		s.mu.Unlock()
		s.record("toggle", metrics.ResultNoop)
		return models.NewChange(models.ChangeWatchedToggled, title, models.Show{}, false, count), nil
	}
	change, err := s.saveLocked(ctx, models.ChangeWatchedToggled, title, show)
	s.mu.Unlock()

	return s.finish("toggle", change, err)
}

// Import adds every show whose title is not already present and saves once.
func (s *Service) Import(ctx context.Context, shows []models.Show) (added, skipped int, err error) {
	s.mu.Lock()
	for _, show := range shows {
		show = models.NewShow(models.NormalizeTitle(show.Title), show.Episodes, show.IsWatched)
		if s.library.AddShow(show) {
			added++
		} else {
			skipped++
		}
	}
	if added == 0 {
		s.mu.Unlock()
		s.record("import", metrics.ResultNoop)
		return 0, skipped, nil
	}
	change, saveErr := s.saveLocked(ctx, models.ChangeImported, "", models.Show{})
	s.mu.Unlock()

	if _, err := s.finish("import", change, saveErr); err != nil {
		return added, skipped, err
	}
	return added, skipped, nil
}

// Get returns the show with the given title.
func (s *Service) Get(title string) (models.Show, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.library.GetShow(models.NormalizeTitle(title))
}

// List returns a copy of the shows in insertion order.
func (s *Service) List() []models.Show {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.library.Shows()
}

// Subscribe registers fn to be called after every applied command.
// The returned function removes the listener.
func (s *Service) Subscribe(fn Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// saveLocked persists the current library. s.mu must be held.
// The in-memory mutation is kept even when saving fails.
func (s *Service) saveLocked(ctx context.Context, kind models.ChangeKind, title string, show models.Show) (models.Change, error) {
	start := time.Now()
	err := s.repo.Save(ctx, s.library.Shows())
	metrics.CatalogueSaveDuration.Observe(time.Since(start).Seconds())

	change := models.NewChange(kind, title, show, true, s.library.Len())
	if err != nil {
		return change, fmt.Errorf("persist %s %q: %w", kind, title, err)
	}
	return change, nil
}

func (s *Service) finish(operation string, change models.Change, err error) (models.Change, error) {
	if err != nil {
		s.logger.Error().Err(err).Str("operation", operation).Str("title", change.Title).Msg("Failed to save library")
		s.record(operation, metrics.ResultError)
	} else {
		s.logger.Debug().Str("operation", operation).Str("title", change.Title).Int("shows", change.Count).Msg("Library updated")
		s.record(operation, metrics.ResultApplied)
	}
	s.notify(change)
	return change, err
}

func (s *Service) record(operation, result string) {
	metrics.CatalogueOperationsTotal.WithLabelValues(operation, result).Inc()
	s.mu.Lock()
	metrics.CatalogueShows.Set(float64(s.library.Len()))
	s.mu.Unlock()
}

func (s *Service) notify(change models.Change) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
}
