package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/soap4/internal/domain"
)

// sender is the part of *tea.Program the bridge needs
type sender interface {
	Send(msg tea.Msg)
}

// Bridge adapts domain.Notifier and domain.CredentialPrompt to messages
// for a running Bubble Tea program. Handlers call it from the navigation
// goroutine; the model answers on the UI goroutine.
type Bridge struct {
	mu      sync.Mutex
	program sender
	done    chan struct{}
}

// NewBridge creates a bridge with no program attached
func NewBridge() *Bridge {
	return &Bridge{done: make(chan struct{})}
}

// Attach connects the bridge to a running program
func (b *Bridge) Attach(p sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = p
}

// Close releases any prompt still waiting for an answer
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	select {
	case <-b.done:
	default:
		close(b.done)
	}
}

func (b *Bridge) send(msg tea.Msg) bool {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

// Notify implements domain.Notifier
func (b *Bridge) Notify(message string, timeout time.Duration) {
	b.send(StatusMsg{Text: message, Timeout: timeout})
}

// Credentials implements domain.CredentialPrompt. It blocks until the
// login form is submitted or cancelled.
func (b *Bridge) Credentials(title, reason string) domain.Credentials {
	reply := make(chan domain.Credentials, 1)
	if !b.send(LoginRequestMsg{Title: title, Reason: reason, Reply: reply}) {
		return domain.Credentials{Rejected: true}
	}
	select {
	case creds := <-reply:
		return creds
	case <-b.done:
		return domain.Credentials{Rejected: true}
	}
}
