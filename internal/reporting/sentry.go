// Package reporting sends unexpected errors and panics to Sentry.
// Without a DSN every call is a no-op.
package reporting

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

type Options struct {
	DSN         string
	Environment string
	Release     string
}

// Init configures the global Sentry client. The returned flush waits for
// buffered events and should be deferred by the caller.
func Init(opts Options) (flush func(), err error) {
	if opts.DSN == "" {
		return func() {}, nil
	}
	err = sentry.Init(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
	})
	if err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

func hubFrom(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// CaptureError reports err with the given tags.
func CaptureError(ctx context.Context, err error, tags map[string]string) {
	if err == nil {
		return
	}
	hub := hubFrom(ctx)
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}

// Recover reports a recovered panic value with the given tags.
func Recover(ctx context.Context, recovered any, tags map[string]string) {
	hub := hubFrom(ctx)
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.RecoverWithContext(ctx, recovered)
	})
}
