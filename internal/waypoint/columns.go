package waypoint

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/table"
)

// Columns returns the user waypoint columns
func Columns() []table.Column[domain.Waypoint] {
	return []table.Column[domain.Waypoint]{
		{Key: "code", Title: "Code", Value: func(w domain.Waypoint) string { return w.Code }},
		{Key: "name", Title: "Name", Value: func(w domain.Waypoint) string { return w.Name }},
		{Key: "position", Title: "Position", Value: func(w domain.Waypoint) string { return w.Coordinates() }},
		{
			Key:   "variation",
			Title: "Mag Var",
			Value: func(w domain.Waypoint) string { return fmt.Sprintf("%.1f", w.MagneticVariation) },
			Compare: func(a, b domain.Waypoint) int {
				return cmp.Compare(a.MagneticVariation, b.MagneticVariation)
			},
		},
	}
}

// AerodromeColumns returns the aerodrome columns
func AerodromeColumns() []table.Column[domain.Aerodrome] {
	return []table.Column[domain.Aerodrome]{
		{Key: "code", Title: "Code", Value: func(a domain.Aerodrome) string { return a.Code }},
		{Key: "name", Title: "Name", Value: func(a domain.Aerodrome) string { return a.Name }},
		{
			Key:   "elevation",
			Title: "Elevation (ft)",
			Value: func(a domain.Aerodrome) string { return strconv.Itoa(a.ElevationFt) },
			Compare: func(a, b domain.Aerodrome) int {
				return cmp.Compare(a.ElevationFt, b.ElevationFt)
			},
		},
		{
			Key:   "source",
			Title: "Source",
			Value: func(a domain.Aerodrome) string {
				if a.Registered {
					return "registered"
				}
				return "user"
			},
		},
	}
}
