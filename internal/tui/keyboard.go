package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flightdeck/internal/table"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateGlobalSearch:
		return m.updateGlobalSearch(msg)
	case StateSearching:
		return m.updateSearch(msg)
	case StateColumnFilter:
		return m.updateColumnFilter(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if len(m.tabs) == 0 {
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	q := &m.queries[m.active]
	switch {
	case key.Matches(msg, Keys.Quit):
		for _, t := range m.tabs {
			t.Cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, Keys.Up):
		if m.cursors[m.active] > 0 {
			m.cursors[m.active]--
		}

	case key.Matches(msg, Keys.Down):
		if m.cursors[m.active] < len(m.currentPage().Rows)-1 {
			m.cursors[m.active]++
		}

	case key.Matches(msg, Keys.NextTab):
		m.active = (m.active + 1) % len(m.tabs)

	case key.Matches(msg, Keys.PrevTab):
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)

	case key.Matches(msg, Keys.NextPage):
		if p := m.currentPage(); max(q.Page, 1) < p.NumPages {
			q.Page = max(q.Page, 1) + 1
			m.cursors[m.active] = 0
		}

	case key.Matches(msg, Keys.PrevPage):
		if q.Page > 1 {
			q.Page--
			m.cursors[m.active] = 0
		}

	case key.Matches(msg, Keys.Filter):
		m.State = StateSearching
		m.searchInput.SetValue(q.Search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, Keys.ColumnFilter):
		col := m.filterColumn()
		current := ""
		if values := q.Filters[col.Key]; len(values) > 0 {
			current = values[0]
		}
		m.State = StateColumnFilter
		m.filterModal.Show("Filter by "+col.Title, "exact value, empty clears", current)

	case key.Matches(msg, Keys.Sort):
		q.Sort = nextSort(m.tabs[m.active].Columns(), q.Sort)
		m.resetPage()

	case key.Matches(msg, Keys.Reverse):
		if q.Sort == nil {
			if cols := m.tabs[m.active].Columns(); len(cols) > 0 {
				q.Sort = &table.Sort{Column: cols[0].Key, Direction: table.Desc}
			}
		} else {
			q.Sort = &table.Sort{Column: q.Sort.Column, Direction: q.Sort.Direction.Toggle()}
		}
		m.resetPage()

	case key.Matches(msg, Keys.ClearView):
		*q = query{}
		m.cursors[m.active] = 0

	case key.Matches(msg, Keys.Refresh):
		m.loading[m.active] = true
		return m, tea.Batch(m.spinner.Tick, FetchTabCmd(m.tabs[m.active], m.active, true))

	case key.Matches(msg, Keys.Delete):
		item := m.selectedItem()
		if item == nil || !m.tabs[m.active].CanDelete() {
			return m, nil
		}
		m.confirmItem = item
		m.State = StateConfirmDelete

	case key.Matches(msg, Keys.GlobalSearch):
		m.State = StateGlobalSearch
		m.global.Show()
		return m, nil

	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.State = StateBrowsing
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.queries[m.active].Search = ""
		m.resetPage()
		return m, nil
	case tea.KeyEnter:
		m.State = StateBrowsing
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.queries[m.active].Search {
		m.queries[m.active].Search = m.searchInput.Value()
		m.resetPage()
	}
	return m, cmd
}

func (m Model) updateColumnFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		cmd       tea.Cmd
		submitted bool
	)
	m.filterModal, cmd, submitted = m.filterModal.Update(msg)
	if submitted {
		col := m.filterColumn()
		q := &m.queries[m.active]
		filters := make(map[string][]string, len(q.Filters)+1)
		for k, v := range q.Filters {
			filters[k] = v
		}
		if value := strings.TrimSpace(m.filterModal.Value()); value != "" {
			filters[col.Key] = []string{value}
		} else {
			delete(filters, col.Key)
		}
		q.Filters = filters
		m.resetPage()
	}
	if !m.filterModal.IsVisible() {
		m.State = StateBrowsing
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.confirmItem
	switch {
	case key.Matches(msg, Keys.Confirm):
		m.State = StateBrowsing
		m.confirmItem = nil
		return m, DeleteCmd(m.tabs[m.active], item)
	case key.Matches(msg, Keys.Deny):
		m.State = StateBrowsing
		m.confirmItem = nil
	}
	return m, nil
}

func (m Model) updateGlobalSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		cmd      tea.Cmd
		selected bool
	)
	m.global, cmd, selected = m.global.Update(msg)

	if selected {
		if item := m.global.Selected(); item != nil {
			if idx := m.tabForKind(item.Kind); idx >= 0 {
				m.active = idx
				m.queries[idx] = query{Search: item.Item.GetTitle()}
				m.cursors[idx] = 0
			}
		}
		m.global.Hide()
	} else if m.global.QueryChanged() && m.searchSvc != nil {
		m.global.SetResults(m.searchSvc.FilterLocal(m.global.Query(), nil))
	}

	if !m.global.IsVisible() {
		m.State = StateBrowsing
	}
	return m, cmd
}

// filterColumn is the sort column, or the first column when unsorted
func (m Model) filterColumn() column {
	cols := m.tabs[m.active].Columns()
	if q := m.queries[m.active]; q.Sort != nil {
		for _, c := range cols {
			if c.Key == q.Sort.Column {
				return c
			}
		}
	}
	if len(cols) == 0 {
		return column{}
	}
	return cols[0]
}

func (m *Model) resetPage() {
	m.queries[m.active].Page = 1
	m.cursors[m.active] = 0
}

// nextSort cycles unsorted, then each column ascending, then unsorted again
func nextSort(cols []column, current *table.Sort) *table.Sort {
	if len(cols) == 0 {
		return nil
	}
	if current == nil {
		return &table.Sort{Column: cols[0].Key, Direction: table.Asc}
	}
	for i, c := range cols {
		if c.Key == current.Column {
			if i+1 < len(cols) {
				return &table.Sort{Column: cols[i+1].Key, Direction: table.Asc}
			}
			return nil
		}
	}
	return nil
}
