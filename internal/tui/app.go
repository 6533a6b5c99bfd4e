// Package tui is the interactive browser over the cached flight-planning data.
package tui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flightdeck/internal/aircraft"
	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/flight"
	"github.com/mmcdole/flightdeck/internal/notify"
	"github.com/mmcdole/flightdeck/internal/search"
	"github.com/mmcdole/flightdeck/internal/table"
	"github.com/mmcdole/flightdeck/internal/tui/components"
	"github.com/mmcdole/flightdeck/internal/tui/styles"
	"github.com/mmcdole/flightdeck/internal/waypoint"
)

// ApplicationState represents what currently receives key presses
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateColumnFilter
	StateConfirmDelete
	StateGlobalSearch
)

// Deps wires the feature packages into the TUI
type Deps struct {
	Cache     domain.Cache
	Aircraft  *aircraft.Commands
	Waypoints *waypoint.Commands
	Flights   *flight.Commands
	Search    *search.Service
	Toasts    *notify.Queue
	Logger    *slog.Logger

	// PageSize 0 disables pagination
	PageSize    int
	FuzzyFilter bool
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState

	tabs    []tab
	active  int
	queries []query
	cursors []int
	loading []bool
	errs    []error

	searchInput textinput.Model
	filterModal components.InputModal
	global      components.GlobalSearch
	spinner     spinner.Model
	help        help.Model

	// confirmItem awaits delete confirmation
	confirmItem domain.ListItem

	searchSvc  *search.Service
	toasts     *notify.Queue
	observer   *ChannelObserver
	logger     *slog.Logger
	pageSize   int
	searchMode table.SearchMode
	ticking    bool
	unsub      func()

	width  int
	height int
}

// New creates the model over the aircraft, waypoint, aerodrome and flight lists
func New(d Deps) Model {
	tabs := []tab{
		aircraftTab(d.Aircraft, aircraft.NewQueries(d.Cache)),
		waypointTab(d.Waypoints, waypoint.NewQueries(d.Cache)),
		aerodromeTab(d.Waypoints, waypoint.NewQueries(d.Cache), d.Cache),
		flightTab(d.Flights, flight.NewQueries(d.Cache)),
	}
	m := newModel(tabs, d)

	m.unsub = d.Cache.Subscribe(m.observer.OnCacheChange)
	if m.toasts != nil {
		m.toasts.OnPush(m.observer.OnToast)
	}
	return m
}

func newModel(tabs []tab, d Deps) Model {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.PromptStyle = styles.AccentStyle
	ti.PlaceholderStyle = styles.DimStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	mode := table.SearchSubstring
	if d.FuzzyFilter {
		mode = table.SearchFuzzy
	}

	return Model{
		State:       StateBrowsing,
		tabs:        tabs,
		queries:     make([]query, len(tabs)),
		cursors:     make([]int, len(tabs)),
		loading:     make([]bool, len(tabs)),
		errs:        make([]error, len(tabs)),
		searchInput: ti,
		filterModal: components.NewInputModal(),
		global:      components.NewGlobalSearch(),
		spinner:     sp,
		help:        help.New(),
		searchSvc:   d.Search,
		toasts:      d.Toasts,
		observer:    NewChannelObserver(),
		logger:      logger,
		pageSize:    d.PageSize,
		searchMode:  mode,
		unsub:       func() {},
	}
}

// Close detaches the model from the cache and toast queue
func (m Model) Close() {
	m.unsub()
	if m.toasts != nil {
		m.toasts.OnPush(nil)
	}
}

// Init starts loading every tab so global search has data to rank
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.observer.Listen()}
	for i, t := range m.tabs {
		m.loading[i] = true
		cmds = append(cmds, FetchTabCmd(t, i, false))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.searchInput.Width = max(msg.Width/3, 20)
		m.global.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FetchedMsg:
		if msg.Tab >= 0 && msg.Tab < len(m.tabs) {
			m.loading[msg.Tab] = false
			m.errs[msg.Tab] = nil
			if msg.Err != nil && !errors.Is(msg.Err, api.ErrCanceled) {
				m.errs[msg.Tab] = msg.Err
			}
		}
		m.clampCursor()
		return m, nil

	case DeletedMsg:
		if errors.Is(msg.Err, domain.ErrPendingRecord) && m.toasts != nil {
			m.toasts.Error(msg.Title + " is still being saved")
		}
		if msg.Err != nil {
			m.logger.Debug("delete finished with error", "title", msg.Title, "error", msg.Err)
		}
		m.clampCursor()
		return m, nil

	case CacheChangedMsg:
		m.clampCursor()
		return m, m.observer.Listen()

	case ToastMsg:
		cmds := []tea.Cmd{m.observer.Listen()}
		if !m.ticking {
			m.ticking = true
			cmds = append(cmds, toastTickCmd())
		}
		return m, tea.Batch(cmds...)

	case toastTickMsg:
		if m.toasts != nil && len(m.toasts.Active()) > 0 {
			return m, toastTickCmd()
		}
		m.ticking = false
		return m, nil
	}

	return m, nil
}

// ActiveTab returns the index of the visible tab
func (m Model) ActiveTab() int {
	return m.active
}

// currentPage renders the visible tab with its view state
func (m Model) currentPage() page {
	if len(m.tabs) == 0 {
		return page{}
	}
	return m.tabs[m.active].Page(m.queries[m.active], m.pageSize, m.searchMode)
}

// selectedItem returns the record under the cursor, or nil
func (m Model) selectedItem() domain.ListItem {
	p := m.currentPage()
	c := m.cursors[m.active]
	if c < 0 || c >= len(p.Items) {
		return nil
	}
	return p.Items[c]
}

// clampCursor keeps the cursor and page of the active tab in range after
// the underlying list changed
func (m *Model) clampCursor() {
	if len(m.tabs) == 0 {
		return
	}
	p := m.currentPage()
	q := &m.queries[m.active]
	if p.NumPages > 0 && q.Page > p.NumPages {
		q.Page = p.NumPages
		p = m.currentPage()
	}
	m.cursors[m.active] = max(min(m.cursors[m.active], len(p.Rows)-1), 0)
}

// tabForKind returns the index of the tab listing kind, or -1
func (m Model) tabForKind(kind search.Kind) int {
	for i, t := range m.tabs {
		if t.Kind() == kind {
			return i
		}
	}
	return -1
}

func (m Model) overlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
