package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/mmcdole/flightdeck/internal/tui/styles"
)

// GlobalSearchKeyMap defines key bindings for the global search component
type GlobalSearchKeyMap struct {
	Escape key.Binding
	Enter  key.Binding
	Up     key.Binding
	Down   key.Binding
}

// DefaultGlobalSearchKeyMap returns the default global search key bindings
func DefaultGlobalSearchKeyMap() GlobalSearchKeyMap {
	return GlobalSearchKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump to record"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/C-p", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/C-n", "next"),
		),
	}
}

// InputModalKeyMap defines key bindings for the input modal
type InputModalKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// DefaultInputModalKeyMap returns the default input modal key bindings
func DefaultInputModalKeyMap() InputModalKeyMap {
	return InputModalKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Package-level key map instances
var (
	GlobalSearchKeys = DefaultGlobalSearchKeyMap()
	InputModalKeys   = DefaultInputModalKeyMap()
)

// keyHints renders "key action" pairs for the footer of a modal
func keyHints(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.AccentStyle.Render(h.Key)+" "+styles.DimStyle.Render(h.Desc))
	}
	return strings.Join(parts, styles.DimStyle.Render(" · "))
}
