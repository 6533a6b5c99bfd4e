package flight

import (
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/store"
)

// Queries provides synchronous, cache-only reads.
type Queries struct {
	cache domain.Cache
}

func NewQueries(cache domain.Cache) *Queries {
	return &Queries{cache: cache}
}

func (q *Queries) GetCachedFlights() ([]domain.Flight, bool) {
	return store.Get[[]domain.Flight](q.cache, ListKey())
}

func (q *Queries) GetCachedFlight(id domain.RecordID) (domain.Flight, bool) {
	return store.Get[domain.Flight](q.cache, DetailKey(id))
}
