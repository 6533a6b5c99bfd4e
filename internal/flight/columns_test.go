package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/table"
)

func legIDs(rows []domain.Leg) []int64 {
	out := make([]int64, len(rows))
	for i, l := range rows {
		out[i] = l.ID.Int64()
	}
	return out
}

func TestLegColumns_SortNumerically(t *testing.T) {
	legs := []domain.Leg{
		{ID: domain.Saved(100), Sequence: 3, DistanceNM: 9.5, TimeMin: 100},
		{ID: domain.Saved(9), Sequence: 1, DistanceNM: 100.2, TimeMin: 9},
		{ID: domain.Saved(10), Sequence: 2, DistanceNM: 10, TimeMin: 10},
	}

	testCases := []struct {
		column string
		want   []int64
	}{
		{column: "id", want: []int64{9, 10, 100}},
		{column: "sequence", want: []int64{9, 10, 100}},
		{column: "distance", want: []int64{100, 10, 9}},
		{column: "time", want: []int64{9, 10, 100}},
	}

	for _, tc := range testCases {
		t.Run(tc.column, func(t *testing.T) {
			res := table.Process(legs, table.Options[domain.Leg]{
				Columns: LegColumns(),
				Sort:    &table.Sort{Column: tc.column},
			})
			assert.Equal(t, tc.want, legIDs(res.Rows))
		})
	}
}

func TestColumns_SortNumerically(t *testing.T) {
	flights := []domain.Flight{
		{ID: domain.Saved(10), TotalDistanceNM: 100},
		{ID: domain.Pending(), TotalDistanceNM: 5},
		{ID: domain.Saved(9), TotalDistanceNM: 20},
	}

	testCases := []struct {
		name string
		sort table.Sort
		want []domain.RecordID
	}{
		{
			name: "id_asc_pending_last",
			sort: table.Sort{Column: "id"},
			want: []domain.RecordID{domain.Saved(9), domain.Saved(10), flights[1].ID},
		},
		{
			name: "id_desc",
			sort: table.Sort{Column: "id", Direction: table.Desc},
			want: []domain.RecordID{flights[1].ID, domain.Saved(10), domain.Saved(9)},
		},
		{
			name: "distance",
			sort: table.Sort{Column: "distance"},
			want: []domain.RecordID{flights[1].ID, domain.Saved(9), domain.Saved(10)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sort := tc.sort
			res := table.Process(flights, table.Options[domain.Flight]{Columns: Columns(), Sort: &sort})
			require.Len(t, res.Rows, len(tc.want))
			for i, f := range res.Rows {
				assert.Equal(t, tc.want[i], f.ID, "row %d", i)
			}
		})
	}
}
