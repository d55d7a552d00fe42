package page

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/soap4/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB"))
	groupStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5A00D"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	watchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
)

// Fprint writes a plain listing of a page, one item per line with its path
func Fprint(w io.Writer, s Snapshot) error {
	var b strings.Builder

	if s.Meta.Title != "" {
		b.WriteString(titleStyle.Render(s.Meta.Title))
		b.WriteString("\n")
	}
	if s.Err != nil {
		b.WriteString(errorStyle.Render(domain.UserMessage(s.Err)))
		b.WriteString("\n")
	}
	if s.Total > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d results", s.Total)))
		b.WriteString("\n")
	}

	for _, item := range s.Items {
		if item.Kind == domain.ItemSeparator {
			b.WriteString("\n")
			b.WriteString(groupStyle.Render(item.Title))
			b.WriteString("\n")
			continue
		}
		mark := " "
		if item.Watched {
			mark = watchedStyle.Render("✓")
		}
		line := fmt.Sprintf("%s %s", mark, item.Title)
		if item.Quality != "" {
			line += dimStyle.Render(" [" + item.Quality + "]")
		}
		if item.Year > 0 {
			line += dimStyle.Render(fmt.Sprintf(" (%d)", item.Year))
		}
		b.WriteString(line)
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(item.Path))
		b.WriteString("\n")
	}

	if s.Playback != nil {
		b.WriteString(fmt.Sprintf("%s\n%s\n", s.Playback.Title, s.Playback.URL))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ConsoleNotifier prints notifications to w
type ConsoleNotifier struct {
	W io.Writer
}

func (n ConsoleNotifier) Notify(message string, _ time.Duration) {
	fmt.Fprintln(n.W, dimStyle.Render("» "+message))
}
