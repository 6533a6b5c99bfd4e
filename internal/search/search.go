// Package search ranks cached records against a free-text query.
package search

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/flightdeck/internal/domain"
)

// Kind restricts a search to one type of record
type Kind string

const (
	KindAircraft  Kind = "aircraft"
	KindWaypoint  Kind = "waypoint"
	KindAerodrome Kind = "aerodrome"
	KindFlight    Kind = "flight"
)

// FilterItem represents a searchable record
type FilterItem struct {
	Item  domain.ListItem
	Title string // Title plus description, the text matched against
	Kind  Kind
}

// FilterResult represents a search result with match metadata
type FilterResult struct {
	FilterItem
	MatchedIndexes []int
	Score          int
}

// index implements fuzzy.Source over pre-lowered text
type index struct {
	items []FilterItem
	lower []string
}

func (idx *index) String(i int) string { return idx.lower[i] }
func (idx *index) Len() int            { return len(idx.items) }

// Service handles fuzzy search across every cached list
type Service struct {
	aircraft  domain.AircraftQueries
	waypoints domain.WaypointQueries
	flights   domain.FlightQueries
	logger    *slog.Logger
}

// NewService creates a new search service. Nil queries are skipped.
func NewService(aircraft domain.AircraftQueries, waypoints domain.WaypointQueries, flights domain.FlightQueries, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		aircraft:  aircraft,
		waypoints: waypoints,
		flights:   flights,
		logger:    logger,
	}
}

// FilterLocal searches cached data directly, best match first.
// kinds: filter by record kind (nil = all kinds)
func (s *Service) FilterLocal(query string, kinds []Kind) []FilterResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	idx := &index{items: s.gather(makeKindSet(kinds))}
	if len(idx.items) == 0 {
		return nil
	}
	idx.lower = make([]string, len(idx.items))
	for i, item := range idx.items {
		idx.lower[i] = strings.ToLower(item.Title)
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	results := make([]FilterResult, len(matches))
	for i, match := range matches {
		results[i] = FilterResult{
			FilterItem:     idx.items[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}

	s.logger.Debug("local search", "query", query, "candidates", len(idx.items), "results", len(results))
	return results
}

func (s *Service) gather(kinds map[Kind]bool) []FilterItem {
	var items []FilterItem

	isKindAllowed := func(k Kind) bool {
		return len(kinds) == 0 || kinds[k]
	}
	add := func(item domain.ListItem, kind Kind) {
		items = append(items, FilterItem{
			Item:  item,
			Title: item.GetTitle() + " " + item.GetDescription(),
			Kind:  kind,
		})
	}

	if s.aircraft != nil && isKindAllowed(KindAircraft) {
		if list, ok := s.aircraft.GetCachedAircraft(); ok {
			for _, a := range list {
				add(a, KindAircraft)
			}
		}
	}
	if s.waypoints != nil && isKindAllowed(KindWaypoint) {
		if list, ok := s.waypoints.GetCachedWaypoints(); ok {
			for _, w := range list {
				add(w, KindWaypoint)
			}
		}
	}
	if s.waypoints != nil && isKindAllowed(KindAerodrome) {
		for _, registered := range []bool{true, false} {
			if list, ok := s.waypoints.GetCachedAerodromes(registered); ok {
				for _, a := range list {
					add(a, KindAerodrome)
				}
			}
		}
	}
	if s.flights != nil && isKindAllowed(KindFlight) {
		if list, ok := s.flights.GetCachedFlights(); ok {
			for _, f := range list {
				add(f, KindFlight)
			}
		}
	}

	return items
}

func makeKindSet(kinds []Kind) map[Kind]bool {
	if len(kinds) == 0 {
		return nil
	}
	set := make(map[Kind]bool)
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
