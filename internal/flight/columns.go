package flight

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/table"
)

// Columns returns the flight list columns
func Columns() []table.Column[domain.Flight] {
	return []table.Column[domain.Flight]{
		{
			Key:     "id",
			Title:   "ID",
			Value:   func(f domain.Flight) string { return f.ID.String() },
			Compare: func(a, b domain.Flight) int { return a.ID.Compare(b.ID) },
		},
		{Key: "route", Title: "Route", Value: func(f domain.Flight) string { return f.Route() }},
		{
			Key:   "departure",
			Title: "Departure",
			Value: func(f domain.Flight) string {
				if f.DepartureTime.IsZero() {
					return ""
				}
				return f.DepartureTime.Format("2006-01-02 15:04")
			},
			Compare: func(a, b domain.Flight) int {
				return a.DepartureTime.Compare(b.DepartureTime)
			},
		},
		{
			Key:   "legs",
			Title: "Legs",
			Value: func(f domain.Flight) string { return strconv.Itoa(len(f.Legs)) },
			Compare: func(a, b domain.Flight) int {
				return cmp.Compare(len(a.Legs), len(b.Legs))
			},
		},
		{
			Key:   "distance",
			Title: "Distance (nm)",
			Value: func(f domain.Flight) string { return fmt.Sprintf("%.1f", f.TotalDistanceNM) },
			Compare: func(a, b domain.Flight) int {
				return cmp.Compare(a.TotalDistanceNM, b.TotalDistanceNM)
			},
		},
	}
}

// LegColumns returns the columns of a flight's leg table
func LegColumns() []table.Column[domain.Leg] {
	return []table.Column[domain.Leg]{
		{
			Key:   "sequence",
			Title: "#",
			Value: func(l domain.Leg) string { return strconv.Itoa(l.Sequence) },
			Compare: func(a, b domain.Leg) int {
				return cmp.Compare(a.Sequence, b.Sequence)
			},
		},
		{
			Key:     "id",
			Title:   "ID",
			Value:   func(l domain.Leg) string { return l.ID.String() },
			Compare: func(a, b domain.Leg) int { return a.ID.Compare(b.ID) },
		},
		{Key: "waypoint", Title: "Waypoint", Value: func(l domain.Leg) string { return l.WaypointCode }},
		{Key: "course", Title: "Course", Value: func(l domain.Leg) string { return fmt.Sprintf("%03d", l.TrueCourse) }},
		{
			Key:   "distance",
			Title: "Distance (nm)",
			Value: func(l domain.Leg) string { return fmt.Sprintf("%.1f", l.DistanceNM) },
			Compare: func(a, b domain.Leg) int {
				return cmp.Compare(a.DistanceNM, b.DistanceNM)
			},
		},
		{
			Key:   "time",
			Title: "Time (min)",
			Value: func(l domain.Leg) string { return fmt.Sprintf("%.0f", l.TimeMin) },
			Compare: func(a, b domain.Leg) int {
				return cmp.Compare(a.TimeMin, b.TimeMin)
			},
		},
	}
}
