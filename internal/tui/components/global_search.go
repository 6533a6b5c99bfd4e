package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flightdeck/internal/search"
	"github.com/mmcdole/flightdeck/internal/tui/styles"
)

// visibleResults is the height of the result window
const visibleResults = 10

// GlobalSearch is the fuzzy finder over every cached list. The result
// window scrolls so the cursor is always on screen.
type GlobalSearch struct {
	input   textinput.Model
	results []search.FilterResult
	cursor  int
	offset  int // first result in the window
	seen    string
	visible bool

	width, height int
}

func NewGlobalSearch() GlobalSearch {
	in := styles.NewTextInput("? ", 40)
	in.Placeholder = "registration, waypoint code, route..."
	return GlobalSearch{input: in}
}

// Show opens the finder with an empty query
func (g *GlobalSearch) Show() {
	g.visible = true
	g.input.SetValue("")
	g.input.Focus()
	g.seen = ""
	g.SetResults(nil)
}

func (g *GlobalSearch) Hide() {
	g.visible = false
	g.input.Blur()
}

func (g GlobalSearch) IsVisible() bool { return g.visible }
func (g GlobalSearch) Query() string   { return g.input.Value() }
func (g GlobalSearch) ResultCount() int { return len(g.results) }

// SetResults replaces the results and moves the cursor to the best match
func (g *GlobalSearch) SetResults(results []search.FilterResult) {
	g.results = results
	g.cursor, g.offset = 0, 0
}

func (g *GlobalSearch) SetSize(width, height int) {
	g.width, g.height = width, height
	g.input.Width = max(g.modalWidth()-10, 10)
}

// QueryChanged reports whether the query differs from the last call
func (g *GlobalSearch) QueryChanged() bool {
	q := g.input.Value()
	if q == g.seen {
		return false
	}
	g.seen = q
	return true
}

// Selected returns the result under the cursor, or nil with no results
func (g GlobalSearch) Selected() *search.FilterItem {
	if g.cursor >= len(g.results) {
		return nil
	}
	return &g.results[g.cursor].FilterItem
}

// Update returns true as its last value when a result was chosen
func (g GlobalSearch) Update(msg tea.Msg) (GlobalSearch, tea.Cmd, bool) {
	if !g.visible {
		return g, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, GlobalSearchKeys.Escape):
			g.Hide()
			return g, nil, false
		case key.Matches(msg, GlobalSearchKeys.Enter):
			return g, nil, len(g.results) > 0
		case key.Matches(msg, GlobalSearchKeys.Down):
			g.move(1)
			return g, nil, false
		case key.Matches(msg, GlobalSearchKeys.Up):
			g.move(-1)
			return g, nil, false
		}
	}

	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	return g, cmd, false
}

func (g *GlobalSearch) move(delta int) {
	if len(g.results) == 0 {
		return
	}
	g.cursor = min(max(g.cursor+delta, 0), len(g.results)-1)
	switch {
	case g.cursor < g.offset:
		g.offset = g.cursor
	case g.cursor >= g.offset+visibleResults:
		g.offset = g.cursor - visibleResults + 1
	}
}

func (g GlobalSearch) modalWidth() int {
	return min(max(g.width*2/3, 40), 80)
}

func (g GlobalSearch) View() string {
	if !g.visible {
		return ""
	}

	width := g.modalWidth()
	lines := []string{styles.ModalTitleStyle.Render("Search"), g.input.View(), ""}
	lines = append(lines, g.resultLines(width-12)...)
	lines = append(lines, "", keyHints(GlobalSearchKeys.Up, GlobalSearchKeys.Down, GlobalSearchKeys.Enter, GlobalSearchKeys.Escape))

	modal := styles.ModalStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(g.width, g.height, lipgloss.Center, lipgloss.Center, modal)
}

func (g GlobalSearch) resultLines(titleWidth int) []string {
	if len(g.results) == 0 {
		if g.input.Value() == "" {
			return nil
		}
		return []string{styles.DimStyle.Render("No matches")}
	}

	end := min(g.offset+visibleResults, len(g.results))
	lines := make([]string, 0, end-g.offset+1)
	for i := g.offset; i < end; i++ {
		r := g.results[i]
		normal, match := styles.NormalRowStyle, styles.MatchHighlightStyle
		if i == g.cursor {
			normal, match = styles.SelectedRowStyle, styles.MatchHighlightSelectedStyle
		}
		title := styles.Truncate(r.Title, titleWidth)
		lines = append(lines, styles.DimBadgeStyle.Render(fmt.Sprintf("%-3s", KindBadge(r.Kind)))+" "+
			styles.Highlight(title, visibleOffsets(r.Title, title, r.MatchedIndexes), normal, match))
	}
	if len(g.results) > visibleResults {
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("%d-%d of %d", g.offset+1, end, len(g.results))))
	}
	return lines
}

// visibleOffsets keeps the match offsets that still fall inside the kept
// prefix of a truncated title
func visibleOffsets(full, shown string, offsets []int) []int {
	if shown == full {
		return offsets
	}
	kept := len(strings.TrimSuffix(shown, "..."))
	out := make([]int, 0, len(offsets))
	for _, o := range offsets {
		if o < kept {
			out = append(out, o)
		}
	}
	return out
}

// KindBadge returns the short label shown before a result
func KindBadge(k search.Kind) string {
	switch k {
	case search.KindAircraft:
		return "AC"
	case search.KindWaypoint:
		return "WPT"
	case search.KindAerodrome:
		return "AD"
	case search.KindFlight:
		return "FLT"
	default:
		return "?"
	}
}
