package aircraft

import (
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/store"
)

// Queries provides synchronous, cache-only reads.
type Queries struct {
	cache domain.Cache
}

// NewQueries creates a new Queries instance.
func NewQueries(cache domain.Cache) *Queries {
	return &Queries{cache: cache}
}

func (q *Queries) GetCachedAircraft() ([]domain.Aircraft, bool) {
	return store.Get[[]domain.Aircraft](q.cache, ListKey())
}

func (q *Queries) GetCachedAircraftByID(id domain.RecordID) (domain.Aircraft, bool) {
	return store.Get[domain.Aircraft](q.cache, DetailKey(id))
}

func (q *Queries) GetCachedProfiles(aircraftID domain.RecordID) ([]domain.PerformanceProfile, bool) {
	return store.Get[[]domain.PerformanceProfile](q.cache, ProfilesKey(aircraftID))
}

func (q *Queries) GetCachedWeightBalance(aircraftID, profileID domain.RecordID) ([]domain.WeightBalanceProfile, bool) {
	return store.Get[[]domain.WeightBalanceProfile](q.cache, WeightBalanceKey(aircraftID, profileID))
}
