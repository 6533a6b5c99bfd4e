package styles

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Sky        = lipgloss.Color("#38BDF8")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Amber      = lipgloss.Color("#F59E0B")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Sky)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Sky)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	PendingStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Italic(true)
)

// Tab bar styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(Sky).
			Bold(true).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Padding(0, 1)
)

// Table styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Sky).
			Bold(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Sky).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Badge styles
var (
	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Sky)
)

// Match highlight styles for search results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Sky).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(Sky).
					Background(SlateLight).
					Bold(true)
)

// Toast styles
var (
	ToastSuccessStyle = lipgloss.NewStyle().
				Foreground(Green)

	ToastErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)
)

// Helper functions

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad truncates or right-pads s to exactly width runes
func Pad(s string, width int) string {
	s = Truncate(s, width)
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + spaces(width-n)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// NewTextInput returns a single-line input in the modal palette
func NewTextInput(prompt string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Width = width
	ti.CharLimit = 100
	ti.PromptStyle = AccentStyle
	ti.TextStyle = TitleStyle.UnsetBold()
	ti.PlaceholderStyle = DimStyle
	return ti
}

// Highlight renders text with match applied to the runes starting at the
// given byte offsets and normal applied to the rest. Offsets past the end
// of text are ignored.
func Highlight(text string, offsets []int, normal, match lipgloss.Style) string {
	if len(offsets) == 0 {
		return normal.Render(text)
	}
	hit := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		hit[o] = true
	}

	var out strings.Builder
	start, matching := 0, hit[0]
	for i := range text {
		if hit[i] == matching {
			continue
		}
		out.WriteString(render(text[start:i], matching, normal, match))
		start, matching = i, hit[i]
	}
	out.WriteString(render(text[start:], matching, normal, match))
	return out.String()
}

func render(s string, matching bool, normal, match lipgloss.Style) string {
	if s == "" {
		return ""
	}
	if matching {
		return match.Render(s)
	}
	return normal.Render(s)
}
