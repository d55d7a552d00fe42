package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Accent     = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
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
			Foreground(Accent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	GroupStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			MarginTop(1)
)

// Raw watch status characters (unstyled)
const (
	UnplayedChar = "●"
	PlayedChar   = "✓"
)

// Pre-rendered watch status indicators
var (
	UnplayedDot = lipgloss.NewStyle().Foreground(Accent).Render(UnplayedChar)
	PlayedCheck = lipgloss.NewStyle().Foreground(Green).Render(PlayedChar)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Accent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(Accent)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(Accent)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)
)

// Truncate shortens s to width display cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Pad right-pads s with spaces to width display cells
func Pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
