package waypoint

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

func (q *Queries) GetCachedWaypoints() ([]domain.Waypoint, bool) {
	return store.Get[[]domain.Waypoint](q.cache, ListKey())
}

func (q *Queries) GetCachedAerodromes(registered bool) ([]domain.Aerodrome, bool) {
	return store.Get[[]domain.Aerodrome](q.cache, AerodromesKey(registered))
}
