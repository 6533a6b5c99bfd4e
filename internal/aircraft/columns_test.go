package aircraft

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/table"
)

func TestProfileColumns_SortByID(t *testing.T) {
	profiles := []domain.PerformanceProfile{
		{ID: domain.Saved(10), Name: "Cruise"},
		{ID: domain.Saved(100), Name: "Climb"},
		{ID: domain.Saved(9), Name: "Descent"},
	}

	testCases := []struct {
		name      string
		direction table.Direction
		want      []string
	}{
		{name: "asc", direction: table.Asc, want: []string{"Descent", "Cruise", "Climb"}},
		{name: "desc", direction: table.Desc, want: []string{"Climb", "Cruise", "Descent"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := table.Process(profiles, table.Options[domain.PerformanceProfile]{
				Columns: ProfileColumns(),
				Sort:    &table.Sort{Column: "id", Direction: tc.direction},
			})
			names := make([]string, len(res.Rows))
			for i, p := range res.Rows {
				names[i] = p.Name
			}
			assert.Equal(t, tc.want, names)
		})
	}
}
