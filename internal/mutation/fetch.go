package mutation

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/domain"
)

// Fetcher loads entries from the network into the cache. Concurrent
// fetches of the same key share one request.
type Fetcher struct {
	env   Env
	group singleflight.Group
}

// NewFetcher creates a Fetcher writing into env.Cache
func NewFetcher(env Env) *Fetcher {
	return &Fetcher{env: env}
}

// Env returns the environment the fetcher writes into
func (f *Fetcher) Env() Env {
	return f.env
}

// Fetch runs load and saves its result at key. Callers joining an
// in-flight fetch of the same key share its result, including its error.
// A canceled fetch leaves the cache untouched and returns api.ErrCanceled.
func Fetch[V any](ctx context.Context, f *Fetcher, key domain.CacheKey, load func(ctx context.Context) (V, error)) (V, error) {
	log := f.env.logger().With("key", key.String())

	v, err, shared := f.group.Do(key.String(), func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := f.env.Cache.Save(key, value); err != nil {
			log.Error("failed to save fetched entry", "error", err)
		}
		return value, nil
	})
	if err != nil {
		var zero V
		if api.IsCanceled(err) || errors.Is(err, context.Canceled) {
			log.Debug("fetch canceled")
			return zero, api.ErrCanceled
		}
		log.Error("fetch failed", "error", err)
		return zero, err
	}

	log.Debug("fetched entry", "shared", shared)
	return v.(V), nil
}

// Cached returns the entry at key, fetching it when absent
func Cached[V any](ctx context.Context, f *Fetcher, key domain.CacheKey, load func(ctx context.Context) (V, error)) (V, error) {
	var v V
	if f.env.Cache.Load(key, &v) {
		return v, nil
	}
	return Fetch(ctx, f, key, load)
}
