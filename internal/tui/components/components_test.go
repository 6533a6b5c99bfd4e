package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/search"
)

func results(n int) []search.FilterResult {
	out := make([]search.FilterResult, n)
	for i := range out {
		w := domain.Waypoint{ID: domain.Saved(int64(i + 1)), Code: fmt.Sprintf("WPT%02d", i+1)}
		out[i] = search.FilterResult{FilterItem: search.FilterItem{Item: w, Title: w.Code, Kind: search.KindWaypoint}}
	}
	return out
}

func TestInputModal_SubmitAndCancel(t *testing.T) {
	testCases := []struct {
		name      string
		key       tea.KeyMsg
		submitted bool
	}{
		{name: "enter_submits", key: tea.KeyMsg{Type: tea.KeyEnter}, submitted: true},
		{name: "esc_cancels", key: tea.KeyMsg{Type: tea.KeyEsc}, submitted: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewInputModal()
			m.Show("Filter by Code", "exact value", "CY")

			m, _, submitted := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("VR")})
			require.False(t, submitted)
			assert.Equal(t, "CYVR", m.Value())

			m, _, submitted = m.Update(tc.key)
			assert.Equal(t, tc.submitted, submitted)
			assert.False(t, m.IsVisible())
			assert.Empty(t, m.View())
		})
	}
}

func TestInputModal_ViewShowsTitle(t *testing.T) {
	m := NewInputModal()
	m.Show("Filter by Make", "", "Cessna")
	view := m.View()
	assert.Contains(t, view, "Filter by Make")
	assert.Contains(t, view, "Cessna")
}

func TestGlobalSearch_WindowFollowsCursor(t *testing.T) {
	g := NewGlobalSearch()
	g.SetSize(120, 40)
	g.Show()
	g.SetResults(results(15))

	down := tea.KeyMsg{Type: tea.KeyDown}
	for range 12 {
		g, _, _ = g.Update(down)
	}

	require.NotNil(t, g.Selected())
	assert.Equal(t, "WPT13", g.Selected().Title)
	assert.Equal(t, 3, g.offset)

	view := g.View()
	assert.Contains(t, view, "WPT13")
	assert.NotContains(t, view, "WPT03")
	assert.Contains(t, view, "4-13 of 15")

	for range 20 {
		g, _, _ = g.Update(down)
	}
	assert.Equal(t, "WPT15", g.Selected().Title)

	up := tea.KeyMsg{Type: tea.KeyUp}
	for range 14 {
		g, _, _ = g.Update(up)
	}
	assert.Equal(t, "WPT01", g.Selected().Title)
	assert.Equal(t, 0, g.offset)
}

func TestGlobalSearch_EnterNeedsResults(t *testing.T) {
	g := NewGlobalSearch()
	g.Show()

	_, _, selected := g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, selected)
	assert.Nil(t, g.Selected())

	g.SetResults(results(2))
	_, _, selected = g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, selected)
}

func TestVisibleOffsets(t *testing.T) {
	testCases := []struct {
		name    string
		full    string
		shown   string
		offsets []int
		want    []int
	}{
		{name: "untruncated", full: "CYVR", shown: "CYVR", offsets: []int{0, 3}, want: []int{0, 3}},
		{name: "truncated", full: "Vancouver Intl", shown: "Vanc...", offsets: []int{0, 3, 10}, want: []int{0, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, visibleOffsets(tc.full, tc.shown, tc.offsets))
		})
	}
}
