package waypoint

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/api/apitest"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/mutation"
	"github.com/mmcdole/flightdeck/internal/notify"
	"github.com/mmcdole/flightdeck/internal/store"
)

func setup(t *testing.T, mux *http.ServeMux) (*Commands, *Queries, *store.Store, *notify.Recorder) {
	t.Helper()
	cache := store.NewMemoryStore(nil)
	rec := &notify.Recorder{}
	commands := NewCommands(apitest.NewTransport(t, mux), mutation.Env{Cache: cache, Notifier: rec})
	return commands, NewQueries(cache), cache, rec
}

func TestAddWaypoint_ConcurrentAdds(t *testing.T) {
	var (
		mu     sync.Mutex
		nextID = 10
		ready  = make(chan struct{})
		once   sync.Once
		hits   sync.WaitGroup
	)
	hits.Add(2)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /waypoint/user", func(w http.ResponseWriter, r *http.Request) {
		body := apitest.DecodeBody[domain.WaypointData](t, r)

		// Hold both requests until each placeholder is in the cache
		hits.Done()
		once.Do(func() {
			go func() {
				hits.Wait()
				close(ready)
			}()
		})
		<-ready

		mu.Lock()
		id := nextID
		nextID++
		mu.Unlock()
		apitest.WriteJSON(w, http.StatusCreated, map[string]any{"id": id, "code": body.Code, "name": body.Name})
	})
	commands, queries, cache, _ := setup(t, mux)
	require.NoError(t, cache.Save(ListKey(), []domain.Waypoint{}))

	var wg sync.WaitGroup
	for _, code := range []string{"ALPHA", "BRAVO"} {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			_, err := commands.AddWaypoint(context.Background(), domain.WaypointData{Code: code, Name: code})
			assert.NoError(t, err)
		}(code)
	}
	wg.Wait()

	list, ok := queries.GetCachedWaypoints()
	require.True(t, ok)
	require.Len(t, list, 2)

	codes := map[string]bool{}
	for _, w := range list {
		assert.False(t, w.ID.IsPending(), "placeholder for %s was not replaced", w.Code)
		codes[w.Code] = true
	}
	assert.Equal(t, map[string]bool{"ALPHA": true, "BRAVO": true}, codes)
}

func TestEditWaypoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /waypoint/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		body := apitest.DecodeBody[domain.WaypointData](t, r)
		apitest.WriteJSON(w, http.StatusOK, map[string]any{"id": 4, "code": body.Code, "name": body.Name, "lat": body.Lat})
	})
	commands, queries, cache, rec := setup(t, mux)
	require.NoError(t, cache.Save(ListKey(), []domain.Waypoint{{ID: domain.Saved(4), Code: "OLD"}}))

	_, err := commands.EditWaypoint(context.Background(), domain.Saved(4), domain.WaypointData{Code: "NEW", Name: "New", Lat: 49.5})
	require.NoError(t, err)

	list, _ := queries.GetCachedWaypoints()
	assert.Equal(t, []domain.Waypoint{{ID: domain.Saved(4), Code: "NEW", Name: "New", Lat: 49.5}}, list)
	assert.Equal(t, []string{"Waypoint NEW updated"}, rec.Messages(notify.LevelSuccess))
}

func TestDeleteWaypoint_Rollback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /waypoint/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteDetail(w, http.StatusBadRequest, "Waypoint is used in a flight")
	})
	commands, queries, cache, rec := setup(t, mux)
	initial := []domain.Waypoint{{ID: domain.Saved(1), Code: "ALPHA"}}
	require.NoError(t, cache.Save(ListKey(), initial))

	_, err := commands.DeleteWaypoint(context.Background(), domain.Saved(1))
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	list, _ := queries.GetCachedWaypoints()
	assert.Equal(t, initial, list)
	assert.Equal(t, []string{"Could not delete waypoint: Waypoint is used in a flight"}, rec.Messages(notify.LevelError))
}

func TestFetchWaypoints_CancelLeavesCacheUntouched(t *testing.T) {
	started := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /waypoint/user", func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})
	commands, _, cache, rec := setup(t, mux)
	require.NoError(t, cache.Save(ListKey(), []domain.Waypoint{{ID: domain.Saved(1), Code: "ALPHA"}}))
	before := cache.Snapshot(ListKey())

	done := make(chan error, 1)
	go func() {
		_, err := commands.FetchWaypoints(context.Background())
		done <- err
	}()

	<-started
	commands.CancelRequests()

	err := <-done
	assert.ErrorIs(t, err, api.ErrCanceled)
	assert.Equal(t, before.Data, cache.Snapshot(ListKey()).Data)
	assert.Empty(t, rec.Toasts)
}

func TestFetchAerodromes_Cached(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /waypoint/aerodrome/registered", func(w http.ResponseWriter, r *http.Request) {
		calls++
		apitest.WriteJSON(w, http.StatusOK, []map[string]any{{"id": 1, "code": "CYVR", "registered": true}})
	})
	commands, queries, _, _ := setup(t, mux)

	for range 3 {
		list, err := commands.FetchAerodromes(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, "CYVR", list[0].Code)
	}
	assert.Equal(t, 1, calls)

	_, ok := queries.GetCachedAerodromes(false)
	assert.False(t, ok)
}
