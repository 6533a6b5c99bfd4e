package flight

import (
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/mutation"
)

// insertLeg places a placeholder leg at data.Sequence and renumbers the
// legs after it. Distances and times stay zero until the server
// recomputes the flight.
func insertLeg(f domain.Flight, data domain.LegData, pending domain.RecordID) domain.Flight {
	seq := max(data.Sequence, 1)
	legs := make([]domain.Leg, 0, len(f.Legs)+1)
	inserted := false
	for _, leg := range f.Legs {
		if !inserted && leg.Sequence >= seq {
			legs = append(legs, domain.Leg{ID: pending, Sequence: seq, WaypointCode: data.WaypointCode})
			inserted = true
		}
		if inserted {
			leg.Sequence++
		}
		legs = append(legs, leg)
	}
	if !inserted {
		legs = append(legs, domain.Leg{ID: pending, Sequence: seq, WaypointCode: data.WaypointCode})
	}
	f.Legs = legs
	return f
}

// removeLeg drops a leg and closes the gap in the sequence
func removeLeg(f domain.Flight, legID domain.RecordID) domain.Flight {
	removed, ok := mutation.Find(f.Legs, legID)
	if !ok {
		return f
	}
	legs := mutation.RemoveByID(f.Legs, legID)
	for i := range legs {
		if legs[i].Sequence > removed.Sequence {
			legs[i].Sequence--
		}
	}
	f.Legs = legs
	return f
}
