package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/flightdeck/internal/domain"
)

func sequences(f domain.Flight) []int {
	out := make([]int, len(f.Legs))
	for i, l := range f.Legs {
		out[i] = l.Sequence
	}
	return out
}

func TestInsertLeg(t *testing.T) {
	testCases := []struct {
		name     string
		sequence int
		codes    []string
	}{
		{name: "first", sequence: 1, codes: []string{"NEW", "CYVR", "CYYJ"}},
		{name: "middle", sequence: 2, codes: []string{"CYVR", "NEW", "CYYJ"}},
		{name: "end", sequence: 3, codes: []string{"CYVR", "CYYJ", "NEW"}},
		{name: "past_end", sequence: 9, codes: []string{"CYVR", "CYYJ", "NEW"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := sampleFlight()
			got := insertLeg(f, domain.LegData{Sequence: tc.sequence, WaypointCode: "NEW"}, domain.Pending())
			assert.Equal(t, tc.codes, legCodes(got))
			assert.Len(t, f.Legs, 2, "input flight must not change")
		})
	}
}

func TestInsertLeg_Renumbers(t *testing.T) {
	got := insertLeg(sampleFlight(), domain.LegData{Sequence: 1, WaypointCode: "NEW"}, domain.Pending())
	assert.Equal(t, []int{1, 2, 3}, sequences(got))
}

func TestRemoveLeg(t *testing.T) {
	f := sampleFlight()
	f.Legs = append(f.Legs, domain.Leg{ID: domain.Saved(12), Sequence: 3, WaypointCode: "CYCD"})

	got := removeLeg(f, domain.Saved(11))
	assert.Equal(t, []string{"CYVR", "CYCD"}, legCodes(got))
	assert.Equal(t, []int{1, 2}, sequences(got))

	unchanged := removeLeg(f, domain.Saved(99))
	assert.Equal(t, f, unchanged)
}
