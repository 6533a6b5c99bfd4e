package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/notify"
	"github.com/mmcdole/flightdeck/internal/tui/styles"
)

// minColumnWidth keeps narrow terminals readable
const minColumnWidth = 6

// View renders the application
func (m Model) View() string {
	switch m.State {
	case StateGlobalSearch:
		return m.global.View()
	case StateColumnFilter:
		return m.overlay(m.filterModal.View())
	case StateConfirmDelete:
		return m.overlay(m.renderConfirm())
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	if line := m.renderStatus(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		title := t.Title()
		if m.loading[i] {
			title += " " + m.spinner.View()
		}
		if i == m.active {
			parts[i] = styles.ActiveTabStyle.Render(title)
		} else {
			parts[i] = styles.InactiveTabStyle.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderStatus shows the search input and the active sort, filters and page
func (m Model) renderStatus() string {
	if len(m.tabs) == 0 {
		return ""
	}
	q := m.queries[m.active]
	var parts []string

	if m.State == StateSearching {
		parts = append(parts, m.searchInput.View())
	} else if q.Search != "" {
		parts = append(parts, styles.AccentStyle.Render("/ "+q.Search))
	}
	if q.Sort != nil {
		parts = append(parts, fmt.Sprintf("sort: %s %s", q.Sort.Column, q.Sort.Direction))
	}
	for k, values := range q.Filters {
		parts = append(parts, fmt.Sprintf("%s=%s", k, strings.Join(values, "|")))
	}
	if p := m.currentPage(); p.Loaded {
		parts = append(parts, fmt.Sprintf("page %d/%d", min(max(q.Page, 1), max(p.NumPages, 1)), max(p.NumPages, 1)))
		parts = append(parts, fmt.Sprintf("%d rows", p.Total))
	}

	return styles.DimStyle.Render(strings.Join(parts, " · "))
}

func (m Model) renderTable() string {
	if len(m.tabs) == 0 {
		return styles.DimStyle.Render("Nothing to show")
	}

	p := m.currentPage()
	if err := m.errs[m.active]; err != nil && !p.Loaded {
		return styles.ErrorStyle.Render(fetchErrorText(err))
	}
	if !p.Loaded {
		return m.spinner.View() + styles.DimStyle.Render(" Loading "+strings.ToLower(m.tabs[m.active].Title())+"...")
	}
	if len(p.Rows) == 0 {
		return styles.DimStyle.Render("No records")
	}

	widths := columnWidths(p, m.width)
	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render(joinCells(p.Headers, widths)))
	b.WriteString("\n")
	for i, row := range p.Rows {
		line := joinCells(row, widths)
		switch {
		case i == m.cursors[m.active]:
			line = styles.SelectedRowStyle.Render(line)
		case p.Items[i].GetID().IsPending():
			line = styles.PendingStyle.Render(line)
		default:
			line = styles.NormalRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if err := m.errs[m.active]; err != nil {
		b.WriteString(styles.ErrorStyle.Render(fetchErrorText(err)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderConfirm() string {
	title := ""
	if m.confirmItem != nil {
		title = m.confirmItem.GetTitle()
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Delete "+title+"?"),
		styles.DimStyle.Render("y to delete, n to keep"),
	)
	return styles.ModalStyle.Render(content)
}

// renderFooter shows the newest toast, or the key help when there is none
func (m Model) renderFooter() string {
	if m.toasts != nil {
		if active := m.toasts.Active(); len(active) > 0 {
			t := active[len(active)-1]
			if t.Level == notify.LevelError {
				return styles.ToastErrorStyle.Render("✗ " + t.Message)
			}
			return styles.ToastSuccessStyle.Render("✓ " + t.Message)
		}
	}
	return m.help.View(Keys)
}

func fetchErrorText(err error) string {
	if errors.Is(err, domain.ErrAuthFailed) {
		return "Token rejected. Run `flightdeck login` to sign in again."
	}
	return "Could not load: " + notify.ErrorMessage(err)
}

// columnWidths sizes each column to its widest cell, shrinking evenly to
// fit the terminal
func columnWidths(p page, termWidth int) []int {
	widths := make([]int, len(p.Headers))
	for i, h := range p.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range p.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	if termWidth <= 0 || len(widths) == 0 {
		return widths
	}

	budget := termWidth - 2*(len(widths)-1)
	for total(widths) > budget {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func total(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w
	}
	return n
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = styles.Pad(c, widths[i])
	}
	return strings.Join(padded, "  ")
}
