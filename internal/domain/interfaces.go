package domain

import "fmt"

// ListItem is the polymorphic interface for records shown in mixed lists
// such as search results. Every cached resource implements it directly.
type ListItem interface {
	Record

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display (e.g. "Cessna 172S")
	GetDescription() string

	// GetItemType returns the type identifier: "aircraft", "waypoint", "aerodrome", "flight"
	GetItemType() string
}

func (a Aircraft) GetTitle() string       { return a.Registration }
func (a Aircraft) GetDescription() string { return a.Make + " " + a.Model }
func (a Aircraft) GetItemType() string    { return "aircraft" }

func (w Waypoint) GetTitle() string       { return w.Code }
func (w Waypoint) GetDescription() string { return w.Name }
func (w Waypoint) GetItemType() string    { return "waypoint" }

func (a Aerodrome) GetTitle() string { return a.Code }
func (a Aerodrome) GetDescription() string {
	return fmt.Sprintf("%s (%d ft)", a.Name, a.ElevationFt)
}
func (a Aerodrome) GetItemType() string { return "aerodrome" }

func (f Flight) GetTitle() string { return f.Route() }
func (f Flight) GetDescription() string {
	if f.DepartureTime.IsZero() {
		return fmt.Sprintf("%d legs", len(f.Legs))
	}
	return f.DepartureTime.Format("2006-01-02 15:04")
}
func (f Flight) GetItemType() string { return "flight" }
