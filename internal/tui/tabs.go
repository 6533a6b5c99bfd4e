package tui

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/flightdeck/internal/aircraft"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/flight"
	"github.com/mmcdole/flightdeck/internal/search"
	"github.com/mmcdole/flightdeck/internal/table"
	"github.com/mmcdole/flightdeck/internal/waypoint"
)

// query is the view state of one tab
type query struct {
	Search  string
	Filters map[string][]string
	Sort    *table.Sort
	Page    int
}

// page is one rendered table page
type page struct {
	Headers  []string
	Rows     [][]string
	Items    []domain.ListItem
	NumPages int
	Total    int
	Loaded   bool
}

type column struct {
	Key   string
	Title string
}

// tab is one browsable list. Implementations are generic over the record
// type; the model only sees rendered cells.
type tab interface {
	Title() string
	Kind() search.Kind
	Columns() []column
	Watches(key domain.CacheKey) bool
	Page(q query, pageSize int, mode table.SearchMode) page
	Fetch(ctx context.Context) error
	Refresh(ctx context.Context) error
	CanDelete() bool
	Delete(ctx context.Context, id domain.RecordID) error
	Cancel()
}

type resourceTab[T domain.ListItem] struct {
	title   string
	kind    search.Kind
	keys    []domain.CacheKey
	columns []table.Column[T]
	load    func() ([]T, bool)
	fetch   func(ctx context.Context) error
	// refresh bypasses cache-first loads; nil means fetch
	refresh func(ctx context.Context) error
	remove  func(ctx context.Context, id domain.RecordID) error
	cancel  func()
}

func (t *resourceTab[T]) Title() string     { return t.title }
func (t *resourceTab[T]) Kind() search.Kind { return t.kind }
func (t *resourceTab[T]) CanDelete() bool   { return t.remove != nil }

func (t *resourceTab[T]) Columns() []column {
	cols := make([]column, len(t.columns))
	for i, c := range t.columns {
		cols[i] = column{Key: c.Key, Title: c.Title}
	}
	return cols
}

func (t *resourceTab[T]) Watches(key domain.CacheKey) bool {
	return slices.ContainsFunc(t.keys, func(k domain.CacheKey) bool {
		return k.Covers(key) || key.Covers(k)
	})
}

func (t *resourceTab[T]) Page(q query, pageSize int, mode table.SearchMode) page {
	p := page{Headers: make([]string, len(t.columns))}
	for i, c := range t.columns {
		p.Headers[i] = c.Title
	}

	rows, ok := t.load()
	if !ok {
		return p
	}
	p.Loaded = true

	res := table.Process(rows, table.Options[T]{
		Columns:    t.columns,
		Search:     q.Search,
		SearchMode: mode,
		Filters:    q.Filters,
		Sort:       q.Sort,
		PageSize:   pageSize,
		Page:       max(q.Page, 1),
	})
	p.NumPages = res.NumPages
	p.Total = res.Total

	for _, row := range res.Rows {
		cells := make([]string, len(t.columns))
		for i, c := range t.columns {
			cells[i] = c.Value(row)
		}
		p.Rows = append(p.Rows, cells)
		p.Items = append(p.Items, row)
	}
	return p
}

func (t *resourceTab[T]) Fetch(ctx context.Context) error {
	return t.fetch(ctx)
}

func (t *resourceTab[T]) Refresh(ctx context.Context) error {
	if t.refresh != nil {
		return t.refresh(ctx)
	}
	return t.fetch(ctx)
}

func (t *resourceTab[T]) Delete(ctx context.Context, id domain.RecordID) error {
	if t.remove == nil {
		return errReadOnly
	}
	return t.remove(ctx, id)
}

func (t *resourceTab[T]) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

func aircraftTab(cmds *aircraft.Commands, queries *aircraft.Queries) tab {
	return &resourceTab[domain.Aircraft]{
		title:   "Aircraft",
		kind:    search.KindAircraft,
		keys:    []domain.CacheKey{aircraft.ListKey()},
		columns: aircraft.Columns(),
		load:    queries.GetCachedAircraft,
		fetch: func(ctx context.Context) error {
			_, err := cmds.FetchAircraft(ctx)
			return err
		},
		remove: func(ctx context.Context, id domain.RecordID) error {
			_, err := cmds.DeleteAircraft(ctx, id)
			return err
		},
		cancel: cmds.CancelRequests,
	}
}

func waypointTab(cmds *waypoint.Commands, queries *waypoint.Queries) tab {
	return &resourceTab[domain.Waypoint]{
		title:   "Waypoints",
		kind:    search.KindWaypoint,
		keys:    []domain.CacheKey{waypoint.ListKey()},
		columns: waypoint.Columns(),
		load:    queries.GetCachedWaypoints,
		fetch: func(ctx context.Context) error {
			_, err := cmds.FetchWaypoints(ctx)
			return err
		},
		remove: func(ctx context.Context, id domain.RecordID) error {
			_, err := cmds.DeleteWaypoint(ctx, id)
			return err
		},
		cancel: cmds.CancelRequests,
	}
}

// aerodromeTab merges registered and user aerodromes into one read-only list
func aerodromeTab(cmds *waypoint.Commands, queries *waypoint.Queries, cache domain.Cache) tab {
	keys := []domain.CacheKey{waypoint.AerodromesKey(true), waypoint.AerodromesKey(false)}
	t := &resourceTab[domain.Aerodrome]{
		title:   "Aerodromes",
		kind:    search.KindAerodrome,
		keys:    keys,
		columns: waypoint.AerodromeColumns(),
		load: func() ([]domain.Aerodrome, bool) {
			registered, okRegistered := queries.GetCachedAerodromes(true)
			user, okUser := queries.GetCachedAerodromes(false)
			return slices.Concat(registered, user), okRegistered || okUser
		},
		fetch: func(ctx context.Context) error {
			g, ctx := errgroup.WithContext(ctx)
			for _, registered := range []bool{true, false} {
				g.Go(func() error {
					_, err := cmds.FetchAerodromes(ctx, registered)
					return err
				})
			}
			return g.Wait()
		},
		cancel: cmds.CancelRequests,
	}
	t.refresh = func(ctx context.Context) error {
		for _, k := range keys {
			cache.Invalidate(k)
		}
		return t.fetch(ctx)
	}
	return t
}

func flightTab(cmds *flight.Commands, queries *flight.Queries) tab {
	return &resourceTab[domain.Flight]{
		title:   "Flights",
		kind:    search.KindFlight,
		keys:    []domain.CacheKey{flight.ListKey()},
		columns: flight.Columns(),
		load:    queries.GetCachedFlights,
		fetch: func(ctx context.Context) error {
			_, err := cmds.FetchFlights(ctx)
			return err
		},
		remove: func(ctx context.Context, id domain.RecordID) error {
			_, err := cmds.DeleteFlight(ctx, id)
			return err
		},
		cancel: cmds.CancelRequests,
	}
}
