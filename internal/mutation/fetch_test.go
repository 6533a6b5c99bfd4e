package mutation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/store"
)

func TestFetch_SharesConcurrentRequests(t *testing.T) {
	f := newFixture(t, nil)
	fetcher := NewFetcher(f.env)

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(ctx context.Context) ([]item, error) {
		calls.Add(1)
		<-release
		return []item{{ID: domain.Saved(1), Name: "A"}}, nil
	}

	var wg sync.WaitGroup
	results := make([][]item, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := Fetch(context.Background(), fetcher, f.key, load)
			assert.NoError(t, err)
			results[i] = got
		}(i)
	}

	// Let every goroutine reach the group before the load returns
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(5))
	for _, got := range results {
		assert.Equal(t, []item{{ID: domain.Saved(1), Name: "A"}}, got)
	}
	assert.Equal(t, []item{{ID: domain.Saved(1), Name: "A"}}, f.list(t))
}

func TestFetch_CanceledLeavesCacheUntouched(t *testing.T) {
	f := newFixture(t, []item{{ID: domain.Saved(1), Name: "A"}})
	fetcher := NewFetcher(f.env)
	before := f.cache.Snapshot(f.key)

	_, err := Fetch(context.Background(), fetcher, f.key, func(ctx context.Context) ([]item, error) {
		return nil, api.ErrCanceled
	})
	assert.ErrorIs(t, err, api.ErrCanceled)
	assert.Equal(t, before.Data, f.cache.Snapshot(f.key).Data)
	assert.Empty(t, f.notifier.Toasts)
}

func TestFetch_ErrorIsReturned(t *testing.T) {
	f := newFixture(t, nil)
	fetcher := NewFetcher(f.env)
	boom := errors.New("boom")

	_, err := Fetch(context.Background(), fetcher, f.key, func(ctx context.Context) ([]item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok := store.Get[[]item](f.cache, f.key)
	assert.False(t, ok)
}

func TestCached_UsesCacheFirst(t *testing.T) {
	f := newFixture(t, []item{{ID: domain.Saved(1), Name: "A"}})
	fetcher := NewFetcher(f.env)

	got, err := Cached(context.Background(), fetcher, f.key, func(ctx context.Context) ([]item, error) {
		t.Fatal("load should not be called on a cache hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: domain.Saved(1), Name: "A"}}, got)
}
