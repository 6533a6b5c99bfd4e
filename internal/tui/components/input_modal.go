package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flightdeck/internal/tui/styles"
)

// InputModal prompts for one line of text. Submit and cancel both close
// it; Update reports which one happened.
type InputModal struct {
	title   string
	input   textinput.Model
	visible bool
}

func NewInputModal() InputModal {
	return InputModal{input: styles.NewTextInput("> ", 34)}
}

// Show opens the prompt with value preselected for editing
func (m *InputModal) Show(title, placeholder, value string) {
	m.title = title
	m.visible = true
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

func (m InputModal) IsVisible() bool { return m.visible }
func (m InputModal) Value() string   { return m.input.Value() }

// Update returns true as its last value when the input was submitted
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, InputModalKeys.Submit, InputModalKeys.Cancel) {
			m.Hide()
			return m, nil, key.Matches(msg, InputModalKeys.Submit)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

func (m InputModal) View() string {
	if !m.visible {
		return ""
	}
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		m.input.View(),
		"",
		keyHints(InputModalKeys.Submit, InputModalKeys.Cancel),
	))
}
