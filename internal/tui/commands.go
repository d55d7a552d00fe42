package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/page"
)

// Navigator runs a navigation to a route path, rendering into p
type Navigator interface {
	Navigate(ctx context.Context, path string, p domain.Page) error
}

// Launcher hands a resolved stream to a player
type Launcher interface {
	Launch(desc *domain.PlaybackDescriptor) error
}

// navigationTimeout bounds one navigation, login prompts included
const navigationTimeout = 5 * time.Minute

// Command factories for async operations

// NavigateCmd runs a navigation off the UI goroutine
func NavigateCmd(nav Navigator, req navRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), navigationTimeout)
		defer cancel()

		rec := page.NewRecorder()
		err := nav.Navigate(ctx, req.path, rec)
		return NavigatedMsg{req: req, Snap: rec.Snapshot(), Err: err}
	}
}

// PlayCmd launches the player for a resolved stream
func PlayCmd(launcher Launcher, desc *domain.PlaybackDescriptor) tea.Cmd {
	return func() tea.Msg {
		return PlayedMsg{Title: desc.Title, Err: launcher.Launch(desc)}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}
