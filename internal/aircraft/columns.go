package aircraft

import (
	"cmp"
	"strconv"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/table"
)

// Columns returns the aircraft list columns shared by the CLI and TUI
func Columns() []table.Column[domain.Aircraft] {
	return []table.Column[domain.Aircraft]{
		{Key: "registration", Title: "Registration", Value: func(a domain.Aircraft) string { return a.Registration }},
		{Key: "make", Title: "Make", Value: func(a domain.Aircraft) string { return a.Make }},
		{Key: "model", Title: "Model", Value: func(a domain.Aircraft) string { return a.Model }},
		{
			Key:   "profiles",
			Title: "Profiles",
			Value: func(a domain.Aircraft) string { return strconv.Itoa(len(a.Profiles)) },
			Compare: func(a, b domain.Aircraft) int {
				return cmp.Compare(len(a.Profiles), len(b.Profiles))
			},
		},
		{
			Key:   "preferred",
			Title: "Preferred Profile",
			Value: func(a domain.Aircraft) string {
				p, ok := a.PreferredProfile()
				if !ok {
					return ""
				}
				return p.Name
			},
		},
	}
}

// ProfileColumns returns the performance profile columns
func ProfileColumns() []table.Column[domain.PerformanceProfile] {
	return []table.Column[domain.PerformanceProfile]{
		{
			Key:     "id",
			Title:   "ID",
			Value:   func(p domain.PerformanceProfile) string { return p.ID.String() },
			Compare: func(a, b domain.PerformanceProfile) int { return a.ID.Compare(b.ID) },
		},
		{Key: "name", Title: "Name", Value: func(p domain.PerformanceProfile) string { return p.Name }},
		{Key: "preferred", Title: "Preferred", Value: func(p domain.PerformanceProfile) string { return yesNo(p.Preferred) }},
		{Key: "complete", Title: "Complete", Value: func(p domain.PerformanceProfile) string { return yesNo(p.IsComplete) }},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
