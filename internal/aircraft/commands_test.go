package aircraft

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flightdeck/internal/api/apitest"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/mutation"
	"github.com/mmcdole/flightdeck/internal/notify"
	"github.com/mmcdole/flightdeck/internal/store"
)

type harness struct {
	commands *Commands
	queries  *Queries
	cache    *store.Store
	notifier *notify.Recorder
}

func newHarness(t *testing.T, mux *http.ServeMux) *harness {
	t.Helper()
	h := &harness{
		cache:    store.NewMemoryStore(nil),
		notifier: &notify.Recorder{},
	}
	env := mutation.Env{Cache: h.cache, Notifier: h.notifier}
	h.commands = NewCommands(apitest.NewTransport(t, mux), env)
	h.queries = NewQueries(h.cache)
	return h
}

func TestFetchAircraft(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /aircraft", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+apitest.Token, r.Header.Get("Authorization"))
		apitest.WriteJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "registration": "C-GABC", "make": "Cessna", "model": "172S", "abbreviated_model": "C172"},
		})
	})
	h := newHarness(t, mux)

	list, err := h.commands.FetchAircraft(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	cached, ok := h.queries.GetCachedAircraft()
	require.True(t, ok)
	assert.Equal(t, list, cached)
	assert.Equal(t, "C172", cached[0].AbbreviatedModel)
}

func TestAddAircraft(t *testing.T) {
	var h *harness
	mux := http.NewServeMux()
	mux.HandleFunc("POST /aircraft", func(w http.ResponseWriter, r *http.Request) {
		body := apitest.DecodeBody[domain.AircraftData](t, r)
		assert.Equal(t, "C-FXYZ", body.Registration)

		during, _ := h.queries.GetCachedAircraft()
		if assert.Len(t, during, 2) {
			assert.True(t, during[1].ID.IsPending())
			assert.Equal(t, "C-FXYZ", during[1].Registration)
		}

		apitest.WriteJSON(w, http.StatusCreated, map[string]any{
			"id":                7,
			"registration":      "C-FXYZ",
			"make":              "Piper",
			"model":             "PA-28",
			"abbreviated_model": "P28A",
		})
	})
	h = newHarness(t, mux)
	require.NoError(t, h.cache.Save(ListKey(), []domain.Aircraft{{ID: domain.Saved(1), Registration: "C-GABC"}}))

	a, err := h.commands.AddAircraft(context.Background(), domain.AircraftData{
		Registration: "C-FXYZ", Make: "Piper", Model: "PA-28", AbbreviatedModel: "P28A",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Saved(7), a.ID)

	list, _ := h.queries.GetCachedAircraft()
	require.Len(t, list, 2)
	assert.Equal(t, domain.Saved(1), list[0].ID)
	assert.Equal(t, domain.Saved(7), list[1].ID)
	assert.Equal(t, []string{"Aircraft C-FXYZ added"}, h.notifier.Messages(notify.LevelSuccess))
}

func TestDeleteAircraft_Failure(t *testing.T) {
	testCases := []struct {
		name     string
		respond  func(w http.ResponseWriter)
		expected string
	}{
		{
			name:     "string_detail",
			respond:  func(w http.ResponseWriter) { apitest.WriteDetail(w, http.StatusConflict, "Aircraft is used by a flight") },
			expected: "Could not delete aircraft: Aircraft is used by a flight",
		},
		{
			name:     "server_error",
			respond:  func(w http.ResponseWriter) { w.WriteHeader(http.StatusInternalServerError) },
			expected: "Could not delete aircraft: " + notify.GenericErrorMessage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("DELETE /aircraft/{id}", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "2", r.PathValue("id"))
				tc.respond(w)
			})
			h := newHarness(t, mux)

			initial := []domain.Aircraft{{ID: domain.Saved(1), Registration: "A"}, {ID: domain.Saved(2), Registration: "B"}}
			require.NoError(t, h.cache.Save(ListKey(), initial))
			before := h.cache.Snapshot(ListKey())

			_, err := h.commands.DeleteAircraft(context.Background(), domain.Saved(2))
			require.Error(t, err)

			assert.Equal(t, before.Data, h.cache.Snapshot(ListKey()).Data)
			assert.Equal(t, []string{tc.expected}, h.notifier.Messages(notify.LevelError))
		})
	}
}

func TestDeleteAircraft_CascadesDerivedEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /aircraft/{id}", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, http.StatusOK, "C-GABC")
	})
	h := newHarness(t, mux)

	id := domain.Saved(1)
	profile := domain.Saved(3)
	require.NoError(t, h.cache.Save(ListKey(), []domain.Aircraft{{ID: id, Registration: "C-GABC"}}))
	require.NoError(t, h.cache.Save(DetailKey(id), domain.Aircraft{ID: id}))
	require.NoError(t, h.cache.Save(ProfilesKey(id), []domain.PerformanceProfile{{ID: profile}}))
	require.NoError(t, h.cache.Save(WeightBalanceKey(id, profile), []domain.WeightBalanceProfile{}))

	name, err := h.commands.DeleteAircraft(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "C-GABC", name)

	list, ok := h.queries.GetCachedAircraft()
	require.True(t, ok)
	assert.Empty(t, list)

	_, ok = h.queries.GetCachedAircraftByID(id)
	assert.False(t, ok)
	_, ok = h.queries.GetCachedProfiles(id)
	assert.False(t, ok)
	_, ok = h.queries.GetCachedWeightBalance(id, profile)
	assert.False(t, ok)
	assert.Equal(t, []string{"Aircraft C-GABC deleted"}, h.notifier.Messages(notify.LevelSuccess))
}

func TestEditAircraft_OverwritesDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /aircraft/{id}", func(w http.ResponseWriter, r *http.Request) {
		body := apitest.DecodeBody[domain.AircraftData](t, r)
		apitest.WriteJSON(w, http.StatusOK, map[string]any{
			"id":                1,
			"registration":      body.Registration,
			"make":              body.Make,
			"model":             body.Model,
			"abbreviated_model": body.AbbreviatedModel,
			"profiles": []map[string]any{
				{"id": 3, "performance_profile_name": "Standard", "is_preferred": true},
			},
		})
	})
	h := newHarness(t, mux)
	id := domain.Saved(1)
	require.NoError(t, h.cache.Save(ListKey(), []domain.Aircraft{{ID: id, Registration: "C-GABC"}}))

	_, err := h.commands.EditAircraft(context.Background(), id, domain.AircraftData{
		Registration: "C-GABD", Make: "Cessna", Model: "172S", AbbreviatedModel: "C172",
	})
	require.NoError(t, err)

	list, _ := h.queries.GetCachedAircraft()
	assert.Equal(t, "C-GABD", list[0].Registration)

	detail, ok := h.queries.GetCachedAircraftByID(id)
	require.True(t, ok)
	preferred, ok := detail.PreferredProfile()
	require.True(t, ok)
	assert.Equal(t, "Standard", preferred.Name)
}

func TestPendingRecordsAreRejected(t *testing.T) {
	h := newHarness(t, http.NewServeMux())

	_, err := h.commands.EditAircraft(context.Background(), domain.Pending(), domain.AircraftData{})
	assert.ErrorIs(t, err, domain.ErrPendingRecord)
	_, err = h.commands.DeleteAircraft(context.Background(), domain.Pending())
	assert.ErrorIs(t, err, domain.ErrPendingRecord)
	assert.Empty(t, h.notifier.Toasts)
}

func TestAddProfileFromModel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /performance-profile/{aircraft}/{model}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12", r.PathValue("aircraft"))
		assert.Equal(t, "4", r.PathValue("model"))
		apitest.WriteJSON(w, http.StatusCreated, map[string]any{
			"id":                       9,
			"performance_profile_name": "Copied",
			"is_preferred":             false,
			"is_complete":              true,
			"fuel_type":                "100LL",
			"cruise_data":              []map[string]any{{"weight_lb": 2400, "pressure_alt_ft": 4000, "temperature_c": 5, "value": 122}},
		})
	})
	h := newHarness(t, mux)
	aircraftID := domain.Saved(12)
	require.NoError(t, h.cache.Save(ProfilesKey(aircraftID), []domain.PerformanceProfile{}))
	require.NoError(t, h.cache.Save(ListKey(), []domain.Aircraft{}))

	p, err := h.commands.AddProfileFromModel(context.Background(), aircraftID, domain.Saved(4), domain.PerformanceProfileData{Name: "Copied"})
	require.NoError(t, err)
	assert.Equal(t, domain.PerformanceProfile{ID: domain.Saved(9), Name: "Copied", IsComplete: true}, p)

	profiles, ok := h.queries.GetCachedProfiles(aircraftID)
	require.True(t, ok)
	assert.Equal(t, []domain.PerformanceProfile{p}, profiles)

	// The aircraft list embeds profile summaries
	_, ok = h.queries.GetCachedAircraft()
	assert.False(t, ok)
}

func TestSelectPreferredProfile(t *testing.T) {
	var h *harness
	aircraftID := domain.Saved(12)

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /performance-profile/{id}", func(w http.ResponseWriter, r *http.Request) {
		body := apitest.DecodeBody[domain.PerformanceProfileData](t, r)
		assert.Equal(t, "Heavy", body.Name)
		assert.True(t, body.Preferred)

		during, _ := h.queries.GetCachedProfiles(aircraftID)
		if assert.Len(t, during, 2) {
			assert.False(t, during[0].Preferred)
			assert.True(t, during[1].Preferred)
		}

		apitest.WriteJSON(w, http.StatusOK, map[string]any{
			"id": 2, "performance_profile_name": "Heavy", "is_preferred": true, "is_complete": true,
		})
	})
	h = newHarness(t, mux)
	require.NoError(t, h.cache.Save(ProfilesKey(aircraftID), []domain.PerformanceProfile{
		{ID: domain.Saved(1), Name: "Standard", Preferred: true},
		{ID: domain.Saved(2), Name: "Heavy"},
	}))

	_, err := h.commands.SelectPreferredProfile(context.Background(), aircraftID, domain.Saved(2))
	require.NoError(t, err)

	profiles, _ := h.queries.GetCachedProfiles(aircraftID)
	var preferred []string
	for _, p := range profiles {
		if p.Preferred {
			preferred = append(preferred, p.Name)
		}
	}
	assert.Equal(t, []string{"Heavy"}, preferred)
	assert.True(t, profiles[1].IsComplete)
}

func TestSelectPreferredProfile_FailureRestores(t *testing.T) {
	aircraftID := domain.Saved(12)
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /performance-profile/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	h := newHarness(t, mux)
	initial := []domain.PerformanceProfile{
		{ID: domain.Saved(1), Name: "Standard", Preferred: true},
		{ID: domain.Saved(2), Name: "Heavy"},
	}
	require.NoError(t, h.cache.Save(ProfilesKey(aircraftID), initial))

	_, err := h.commands.SelectPreferredProfile(context.Background(), aircraftID, domain.Saved(2))
	require.Error(t, err)

	profiles, _ := h.queries.GetCachedProfiles(aircraftID)
	assert.Equal(t, initial, profiles)
}

func TestSelectPreferredProfile_UnknownProfile(t *testing.T) {
	aircraftID := domain.Saved(12)
	h := newHarness(t, http.NewServeMux())
	require.NoError(t, h.cache.Save(ProfilesKey(aircraftID), []domain.PerformanceProfile{{ID: domain.Saved(1)}}))

	_, err := h.commands.SelectPreferredProfile(context.Background(), aircraftID, domain.Saved(5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWeightBalance(t *testing.T) {
	aircraftID, profileID := domain.Saved(12), domain.Saved(3)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /weight-balance-profile/profile/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.PathValue("id"))
		apitest.WriteJSON(w, http.StatusOK, []map[string]any{{"id": 1, "name": "Normal", "max_take_off_weight_lb": 2550}})
	})
	mux.HandleFunc("POST /weight-balance-profile/profile/{id}", func(w http.ResponseWriter, r *http.Request) {
		body := apitest.DecodeBody[domain.WeightBalanceData](t, r)
		apitest.WriteJSON(w, http.StatusCreated, map[string]any{"id": 2, "name": body.Name, "max_take_off_weight_lb": body.MaxTakeoffWeightLb})
	})
	mux.HandleFunc("DELETE /weight-balance-profile/{id}", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, http.StatusOK, map[string]any{"name": "Normal"})
	})
	h := newHarness(t, mux)
	ctx := context.Background()

	_, err := h.commands.FetchWeightBalance(ctx, aircraftID, profileID)
	require.NoError(t, err)

	_, err = h.commands.AddWeightBalance(ctx, aircraftID, profileID, domain.WeightBalanceData{Name: "Utility", MaxTakeoffWeightLb: 2200})
	require.NoError(t, err)

	_, err = h.commands.DeleteWeightBalance(ctx, aircraftID, profileID, domain.Saved(1))
	require.NoError(t, err)

	list, ok := h.queries.GetCachedWeightBalance(aircraftID, profileID)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "Utility", list[0].Name)
	assert.Equal(t, []string{
		"Weight and balance profile Utility added",
		"Weight and balance profile Normal deleted",
	}, h.notifier.Messages(notify.LevelSuccess))
}
