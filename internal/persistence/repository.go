// Package persistence saves and loads the show list under a single key of a kvstore.Store.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowShelf/internal/kvstore"
	"github.com/Belphemur/ShowShelf/internal/models"
)

// DefaultKey is the store key the library is written under.
const DefaultKey = "library"

// Options tune the retry behaviour around store calls.
type Options struct {
	Key        string
	Retries    int
	RetryDelay time.Duration
}

// Repository persists the show list as a JSON array of documents.
type Repository struct {
	store  kvstore.Store
	key    string
	retry  retrypolicy.RetryPolicy[any]
	logger zerolog.Logger
}

// NewRepository creates a repository over store.
func NewRepository(store kvstore.Store, opts Options, logger zerolog.Logger) *Repository {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 100 * time.Millisecond
	}

	logger = logger.With().Str("component", "persistence").Str("key", opts.Key).Logger()
	policy := retrypolicy.NewBuilder[any]().
		WithMaxRetries(opts.Retries).
		WithBackoff(opts.RetryDelay, 10*opts.RetryDelay).
		ReturnLastFailure().
		OnRetry(func(e failsafe.ExecutionEvent[any]) {
			logger.Warn().Err(e.LastError()).Int("attempt", e.Attempts()).Msg("Retrying store operation")
		}).
		Build()

	return &Repository{store: store, key: opts.Key, retry: policy, logger: logger}
}

// Key returns the store key the repository writes to.
func (r *Repository) Key() string {
	return r.key
}

// Save replaces the stored show list with shows.
func (r *Repository) Save(ctx context.Context, shows []models.Show) error {
	docs := make([]map[string]any, len(shows))
	for i, show := range shows {
		docs[i] = show.ToDocument()
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}

	err = failsafe.With[any](r.retry).WithContext(ctx).Run(func() error {
		return r.store.Set(ctx, r.key, data)
	})
	if err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	r.logger.Debug().Int("shows", len(shows)).Msg("Library saved")
	return nil
}

// Load returns the stored show list. A missing key yields nil and no error.
// Decode errors are returned so the caller can decide how to degrade.
func (r *Repository) Load(ctx context.Context) ([]models.Show, error) {
	var (
		data  []byte
		found bool
	)
	err := failsafe.With[any](r.retry).WithContext(ctx).Run(func() error {
		var err error
		data, found, err = r.store.Get(ctx, r.key)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	if !found {
		return nil, nil
	}

	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	shows, err := models.ShowsFromDocuments(docs)
	if err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	return shows, nil
}
