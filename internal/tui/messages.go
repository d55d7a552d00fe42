package tui

import (
	"time"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/page"
)

// navMode says what a finished navigation does to the history stack
type navMode int

const (
	navPush    navMode = iota // remember the current page, then show the new one
	navReplace                // show the new page in place of the current one
	navBack                   // return to a page popped off the history
	navReset                  // forget the history, as after logout
)

// navRequest is one navigation the model asked for
type navRequest struct {
	path   string
	mode   navMode
	cursor int // restored cursor for navBack
}

// NavigatedMsg carries the rendered page of a finished navigation
type NavigatedMsg struct {
	req  navRequest
	Snap page.Snapshot
	Err  error
}

// PlayedMsg reports the player launch for a resolved stream
type PlayedMsg struct {
	Title string
	Err   error
}

// StatusMsg is a transient notification for the footer
type StatusMsg struct {
	Text    string
	Timeout time.Duration
}

// ClearStatusMsg clears the footer notification set at the given sequence
type ClearStatusMsg struct {
	seq int
}

// LoginRequestMsg asks the model to collect credentials. The model
// answers exactly once on Reply.
type LoginRequestMsg struct {
	Title  string
	Reason string
	Reply  chan<- domain.Credentials
}
