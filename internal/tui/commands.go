package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flightdeck/internal/domain"
)

// Command factories for async operations

// requestTimeout bounds every request issued from the TUI
const requestTimeout = 60 * time.Second

// FetchTabCmd loads a tab's records into the cache
func FetchTabCmd(t tab, index int, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		load := t.Fetch
		if refresh {
			load = t.Refresh
		}
		return FetchedMsg{Tab: index, Err: load(ctx)}
	}
}

// DeleteCmd removes a record through the tab's optimistic delete
func DeleteCmd(t tab, item domain.ListItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := t.Delete(ctx, item.GetID())
		return DeletedMsg{Title: item.GetTitle(), Err: err}
	}
}

// toastTickCmd schedules the next footer refresh
func toastTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
