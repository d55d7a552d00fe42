package tui

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/page"
	"github.com/mmcdole/soap4/internal/route"
	"github.com/mmcdole/soap4/internal/router"
	"github.com/mmcdole/soap4/internal/tui/styles"
)

// ApplicationState represents the current input mode
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateFiltering
	StateSearching
	StateLogin
)

// Footer message lifetimes
const (
	defaultStatusTimeout = 3 * time.Second
	errorStatusTimeout   = 6 * time.Second
)

// historyEntry is a page left behind by a forward navigation
type historyEntry struct {
	path   string
	cursor int
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState

	// Collaborators
	nav      Navigator
	launcher Launcher
	routes   *route.Table
	logger   *slog.Logger

	// Current page
	path    string
	snap    page.Snapshot
	visible []filterMatch
	cursor  int
	history []historyEntry

	navigating bool
	spinner    spinner.Model

	filterInput textinput.Model
	searchInput textinput.Model

	// Login form, open while a handler waits for credentials
	loginUser      textinput.Model
	loginPass      textinput.Model
	loginFocus     int
	loginTitle     string
	loginReason    string
	loginReply     chan<- domain.Credentials
	loginCancelled bool // cancelled once during this navigation

	// Footer
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	// Dimensions
	Width  int
	Height int
}

// NewModel creates the model. It opens on the start page.
func NewModel(nav Navigator, launcher Launcher, routes *route.Table, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	filter := textinput.New()
	filter.Placeholder = "type to filter..."
	filter.Prompt = "/ "
	filter.PromptStyle = styles.FilterPromptStyle
	filter.TextStyle = styles.FilterStyle

	search := textinput.New()
	search.Placeholder = "series or episode title"
	search.Prompt = "search: "
	search.PromptStyle = styles.FilterPromptStyle

	user := textinput.New()
	user.Placeholder = "login"
	user.Prompt = "Login:    "

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password: "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return Model{
		nav:         nav,
		launcher:    launcher,
		routes:      routes,
		logger:      logger,
		spinner:     sp,
		filterInput: filter,
		searchInput: search,
		loginUser:   user,
		loginPass:   pass,
		navigating:  true, // Init opens the start page
	}
}

// Init starts the first navigation
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, NavigateCmd(m.nav, navRequest{path: m.routes.Start(), mode: navReplace}))
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.navigating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigatedMsg:
		return m.handleNavigated(msg)

	case PlayedMsg:
		if msg.Err != nil {
			m.logger.Error("player launch failed", "error", msg.Err)
			return m, m.setStatus("Player failed: "+msg.Err.Error(), true, defaultStatusTimeout)
		}
		return m, m.setStatus("Playing "+msg.Title, false, defaultStatusTimeout)

	case StatusMsg:
		timeout := msg.Timeout
		if timeout <= 0 {
			timeout = defaultStatusTimeout
		}
		return m, m.setStatus(msg.Text, false, timeout)

	case ClearStatusMsg:
		if msg.seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case LoginRequestMsg:
		return m.openLogin(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// startNavigation runs req unless a navigation is already running
func (m *Model) startNavigation(req navRequest) tea.Cmd {
	if m.navigating {
		return m.setStatus("Still loading, please wait", false, defaultStatusTimeout)
	}
	m.navigating = true
	m.logger.Debug("navigate", "route", m.routes.Describe(req.path))
	return tea.Batch(m.spinner.Tick, NavigateCmd(m.nav, req))
}

func (m Model) handleNavigated(msg NavigatedMsg) (tea.Model, tea.Cmd) {
	m.navigating = false
	m.loginCancelled = false

	if errors.Is(msg.Err, router.ErrNavigationInFlight) {
		return m, m.setStatus("Still loading, please wait", false, defaultStatusTimeout)
	}

	// a stream is played from the page that listed it
	if msg.Snap.Playback != nil && m.path != "" {
		desc := msg.Snap.Playback
		return m, tea.Batch(
			m.setStatus("Starting "+desc.Title, false, defaultStatusTimeout),
			PlayCmd(m.launcher, desc),
		)
	}

	switch msg.req.mode {
	case navPush:
		if m.path != "" {
			m.history = append(m.history, historyEntry{path: m.path, cursor: m.cursor})
		}
	case navReset:
		m.history = nil
	}

	m.path = msg.req.path
	if last, ok := msg.Snap.LastRedirect(); ok {
		m.path = last
	}
	m.snap = msg.Snap
	m.clearFilter()
	m.cursor = 0
	if msg.req.mode == navBack || msg.req.mode == navReplace {
		m.cursor = msg.req.cursor
	}
	m.clampCursor()

	var cmds []tea.Cmd
	if msg.Err != nil {
		cmds = append(cmds, m.setStatus(domain.UserMessage(msg.Err), true, errorStatusTimeout))
	}
	if desc := msg.Snap.Playback; desc != nil {
		cmds = append(cmds, PlayCmd(m.launcher, desc))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateLogin:
		return m.handleLoginKey(msg)
	case StateFiltering:
		return m.handleFilterKey(msg)
	case StateSearching:
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(-m.bodyHeight())
	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.bodyHeight())
	case key.Matches(msg, Keys.Home):
		m.cursor = 0
	case key.Matches(msg, Keys.End):
		m.cursor = len(m.visible) - 1
		m.clampCursor()

	case key.Matches(msg, Keys.Enter):
		item, ok := m.selected()
		if !ok || item.Path == "" {
			return m, nil
		}
		return m, m.startNavigation(navRequest{path: item.Path, mode: navPush})

	case key.Matches(msg, Keys.Back):
		if len(m.history) == 0 {
			return m, nil
		}
		prev := m.history[len(m.history)-1]
		if m.navigating {
			return m, m.setStatus("Still loading, please wait", false, defaultStatusTimeout)
		}
		m.history = m.history[:len(m.history)-1]
		return m, m.startNavigation(navRequest{path: prev.path, mode: navBack, cursor: prev.cursor})

	case key.Matches(msg, Keys.Refresh):
		if m.path == "" {
			return m, nil
		}
		return m, m.startNavigation(navRequest{path: m.path, mode: navReplace, cursor: m.cursor})

	case key.Matches(msg, Keys.Start):
		return m, m.startNavigation(navRequest{path: m.routes.Start(), mode: navPush})

	case key.Matches(msg, Keys.Logout):
		return m, m.startNavigation(navRequest{path: m.routes.Logout(), mode: navReset})

	case key.Matches(msg, Keys.Login):
		return m, m.startNavigation(navRequest{path: m.routes.Login(), mode: navReset})

	case key.Matches(msg, Keys.Filter):
		m.State = StateFiltering
		return m, m.filterInput.Focus()

	case key.Matches(msg, Keys.Search):
		m.State = StateSearching
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case key.Matches(msg, Keys.Escape):
		m.clearFilter()
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.clearFilter()
		m.State = StateBrowsing
		return m, nil
	case tea.KeyEnter:
		m.filterInput.Blur()
		m.State = StateBrowsing
		return m, nil
	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.Blur()
		m.State = StateBrowsing
		return m, nil
	case tea.KeyEnter:
		query := strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.State = StateBrowsing
		if query == "" {
			return m, nil
		}
		return m, m.startNavigation(navRequest{path: m.routes.Search(query), mode: navPush})
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) openLogin(msg LoginRequestMsg) (tea.Model, tea.Cmd) {
	// one cancel ends the prompt loop for this navigation
	if m.loginCancelled {
		msg.Reply <- domain.Credentials{Rejected: true}
		return m, nil
	}

	m.State = StateLogin
	m.loginTitle = msg.Title
	m.loginReason = msg.Reason
	m.loginReply = msg.Reply
	m.loginUser.SetValue("")
	m.loginPass.SetValue("")
	m.loginFocus = 0
	m.loginPass.Blur()
	return m, m.loginUser.Focus()
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.answerLogin(domain.Credentials{Rejected: true})
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		m.loginCancelled = true
		m.answerLogin(domain.Credentials{Rejected: true})
		return m, nil

	case key.Matches(msg, Keys.Submit):
		if m.loginFocus == 0 {
			return m, m.focusLoginField(1)
		}
		user := strings.TrimSpace(m.loginUser.Value())
		if user == "" {
			return m, m.focusLoginField(0)
		}
		m.answerLogin(domain.Credentials{Username: user, Password: m.loginPass.Value()})
		return m, nil

	case key.Matches(msg, Keys.Next):
		return m, m.focusLoginField(1 - m.loginFocus)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginUser, cmd = m.loginUser.Update(msg)
	} else {
		m.loginPass, cmd = m.loginPass.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusLoginField(i int) tea.Cmd {
	m.loginFocus = i
	if i == 0 {
		m.loginPass.Blur()
		return m.loginUser.Focus()
	}
	m.loginUser.Blur()
	return m.loginPass.Focus()
}

// answerLogin replies to the waiting handler and closes the form
func (m *Model) answerLogin(creds domain.Credentials) {
	if m.loginReply != nil {
		m.loginReply <- creds
		m.loginReply = nil
	}
	m.loginPass.SetValue("")
	m.loginUser.Blur()
	m.loginPass.Blur()
	m.State = StateBrowsing
}

func (m *Model) applyFilter() {
	m.visible = filterItems(m.snap.Items, m.filterInput.Value())
	m.cursor = 0
}

func (m *Model) clearFilter() {
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.visible = filterItems(m.snap.Items, "")
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the item under the cursor
func (m Model) selected() (domain.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return domain.Item{}, false
	}
	return m.snap.Items[m.visible[m.cursor].index], true
}

// setStatus shows a footer message and schedules its removal
func (m *Model) setStatus(text string, isErr bool, timeout time.Duration) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, timeout)
}

// Path returns the route path of the page on screen
func (m Model) Path() string {
	return m.path
}

// Items returns the page items currently listed, filter applied
func (m Model) Items() []domain.Item {
	items := make([]domain.Item, len(m.visible))
	for i, v := range m.visible {
		items[i] = m.snap.Items[v.index]
	}
	return items
}
