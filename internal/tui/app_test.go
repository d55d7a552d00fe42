package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/soap4/internal/adapter"
	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/route"
)

var routes = route.NewTable("soap4me")

type fakeNav struct {
	mu    sync.Mutex
	pages map[string]func(p domain.Page) error
	calls []string
}

func (n *fakeNav) Navigate(_ context.Context, path string, p domain.Page) error {
	n.mu.Lock()
	n.calls = append(n.calls, path)
	render := n.pages[path]
	n.mu.Unlock()
	if render == nil {
		return errors.New("no page")
	}
	return render(p)
}

type fakeLauncher struct {
	mu       sync.Mutex
	launched []*domain.PlaybackDescriptor
}

func (l *fakeLauncher) Launch(desc *domain.PlaybackDescriptor) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launched = append(l.launched, desc)
	return nil
}

func startPage(p domain.Page) error {
	p.SetMetadata(domain.Metadata{Title: "soap4.me"})
	p.AppendItem(domain.Item{Kind: domain.ItemSeparator, Title: "Watching"})
	p.AppendItem(domain.Item{Kind: domain.ItemDirectory, Title: "House", Path: routes.Series("42")})
	p.AppendItem(domain.Item{Kind: domain.ItemDirectory, Title: "Lost", Path: routes.Series("43")})
	p.AppendItem(domain.Item{Kind: domain.ItemSeparator, Title: "Closed"})
	p.AppendItem(domain.Item{Kind: domain.ItemDirectory, Title: "Firefly", Path: routes.Series("44")})
	return nil
}

func seriesPage(p domain.Page) error {
	p.SetMetadata(domain.Metadata{Title: "House"})
	p.AppendItem(domain.Item{Kind: domain.ItemDirectory, Title: "Season 1", Path: routes.Season("42", "7")})
	return nil
}

func newTestModel(t *testing.T) (Model, *fakeNav, *fakeLauncher) {
	t.Helper()
	nav := &fakeNav{pages: map[string]func(domain.Page) error{
		routes.Start():      startPage,
		routes.Series("42"): seriesPage,
		routes.Series("43"): seriesPage,
		routes.Episode("42", "7", "1"): func(p domain.Page) error {
			p.SetType(domain.ContentVideo)
			p.Play(&domain.PlaybackDescriptor{URL: "https://s7.soap4.me/tok/1/h/", Title: "House S01E01 Pilot"})
			return nil
		},
	}}
	launcher := &fakeLauncher{}
	m := NewModel(nav, launcher, routes, adapter.NullLogger())
	m.Width, m.Height = 80, 24

	m = update(t, m, NavigateCmd(nav, navRequest{path: routes.Start(), mode: navReplace})())
	return m, nav, launcher
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, keys string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// awaitMsg runs cmd and the commands it batches, returning the first
// message of type T. Timers are left running in the background.
func awaitMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	require.NotNil(t, cmd)

	found := make(chan T, 1)
	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			for _, sub := range msg {
				go run(sub)
			}
		case T:
			select {
			case found <- msg:
			default:
			}
		}
	}
	go run(cmd)

	select {
	case msg := <-found:
		return msg
	case <-time.After(time.Second):
		var zero T
		t.Fatalf("no %T produced", zero)
		return zero
	}
}

func TestNavigatedRendersSelectableItems(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.Equal(t, routes.Start(), m.Path())
	assert.False(t, m.navigating)

	items := m.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "House", items[0].Title)
	assert.Equal(t, "Firefly", items[2].Title)

	view := m.View()
	assert.Contains(t, view, "soap4.me")
	assert.Contains(t, view, "Watching")
	assert.Contains(t, view, "Closed")
}

func TestEnterPushesAndBackRestoresCursor(t *testing.T) {
	m, nav, _ := newTestModel(t)

	m, _ = press(t, m, "j")
	m, cmd := press(t, m, "enter")
	assert.True(t, m.navigating)

	m = update(t, m, awaitMsg[NavigatedMsg](t, cmd))
	assert.Equal(t, routes.Series("43"), m.Path())
	require.Len(t, m.history, 1)

	m, cmd = press(t, m, "h")
	m = update(t, m, awaitMsg[NavigatedMsg](t, cmd))
	assert.Equal(t, routes.Start(), m.Path())
	assert.Empty(t, m.history)
	assert.Equal(t, 1, m.cursor)

	assert.Equal(t, []string{routes.Start(), routes.Series("43"), routes.Start()}, nav.calls)
}

func TestNavigationIgnoredWhileLoading(t *testing.T) {
	m, nav, _ := newTestModel(t)

	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "enter")

	assert.Len(t, nav.calls, 1)
	assert.Equal(t, "Still loading, please wait", m.StatusMsg)
}

func TestFilterNarrowsItems(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(t, m, "/")
	assert.Equal(t, StateFiltering, m.State)
	m, _ = press(t, m, "fly")

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Firefly", items[0].Title)
	assert.NotContains(t, m.View(), "Watching")

	m, _ = press(t, m, "esc")
	assert.Equal(t, StateBrowsing, m.State)
	assert.Len(t, m.Items(), 3)
}

func TestSearchNavigates(t *testing.T) {
	m, nav, _ := newTestModel(t)
	nav.pages[routes.Search("house md")] = func(p domain.Page) error {
		p.SetTotal(1)
		p.AppendItem(domain.Item{Kind: domain.ItemDirectory, Title: "House", Path: routes.Series("42")})
		return nil
	}

	m, _ = press(t, m, "f")
	assert.Equal(t, StateSearching, m.State)
	m, _ = press(t, m, "house md")
	m, cmd := press(t, m, "enter")

	m = update(t, m, awaitMsg[NavigatedMsg](t, cmd))
	assert.Equal(t, routes.Search("house md"), m.Path())
	assert.Contains(t, m.View(), "1 results")
}

func TestPlaybackKeepsListingPage(t *testing.T) {
	m, nav, launcher := newTestModel(t)

	cmd := NavigateCmd(nav, navRequest{path: routes.Episode("42", "7", "1"), mode: navPush})
	next, playCmd := m.Update(cmd())
	m = next.(Model)

	assert.Equal(t, routes.Start(), m.Path())
	assert.Empty(t, m.history)

	played := awaitMsg[PlayedMsg](t, playCmd)
	assert.NoError(t, played.Err)
	require.Len(t, launcher.launched, 1)
	assert.Equal(t, "https://s7.soap4.me/tok/1/h/", launcher.launched[0].URL)

	m = update(t, m, played)
	assert.Equal(t, "Playing House S01E01 Pilot", m.StatusMsg)
}

func TestNavigationErrorShowsMessage(t *testing.T) {
	m, nav, _ := newTestModel(t)
	nav.pages[routes.Series("44")] = func(p domain.Page) error {
		err := domain.ErrServerOffline
		p.Error(err)
		return err
	}

	m, _ = press(t, m, "G")
	m, cmd := press(t, m, "enter")
	m = update(t, m, awaitMsg[NavigatedMsg](t, cmd))

	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "Server is unreachable", m.StatusMsg)
	assert.Contains(t, m.View(), "Server is unreachable")
}

func TestLoginFormAnswersPrompt(t *testing.T) {
	m, _, _ := newTestModel(t)

	reply := make(chan domain.Credentials, 1)
	m = update(t, m, LoginRequestMsg{Title: "soap4.me", Reason: "Login required", Reply: reply})
	assert.Equal(t, StateLogin, m.State)
	assert.Contains(t, m.View(), "Login required")

	m, _ = press(t, m, "user")
	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "secret")
	assert.NotContains(t, m.View(), "secret")
	m, _ = press(t, m, "enter")

	assert.Equal(t, StateBrowsing, m.State)
	assert.Equal(t, domain.Credentials{Username: "user", Password: "secret"}, <-reply)
}

func TestLoginCancelStopsPromptLoop(t *testing.T) {
	m, _, _ := newTestModel(t)

	first := make(chan domain.Credentials, 1)
	m = update(t, m, LoginRequestMsg{Reply: first})
	m, _ = press(t, m, "esc")
	assert.True(t, (<-first).Rejected)

	second := make(chan domain.Credentials, 1)
	m = update(t, m, LoginRequestMsg{Reply: second})
	assert.Equal(t, StateBrowsing, m.State)
	assert.True(t, (<-second).Rejected)

	// the next navigation prompts again
	m = update(t, m, NavigatedMsg{req: navRequest{path: routes.Start(), mode: navReplace}})
	third := make(chan domain.Credentials, 1)
	m = update(t, m, LoginRequestMsg{Reply: third})
	assert.Equal(t, StateLogin, m.State)
}

func TestStatusClearsBySequence(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, StatusMsg{Text: "Logged out"})
	first := m.statusSeq
	m = update(t, m, StatusMsg{Text: "Incorrect login or password"})

	m = update(t, m, ClearStatusMsg{seq: first})
	assert.Equal(t, "Incorrect login or password", m.StatusMsg)

	m = update(t, m, ClearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.StatusMsg)
}

type recordingSender struct {
	msgs chan tea.Msg
}

func (s recordingSender) Send(msg tea.Msg) { s.msgs <- msg }

func TestBridge(t *testing.T) {
	b := NewBridge()
	assert.True(t, b.Credentials("soap4.me", "Login required").Rejected, "no program attached")

	s := recordingSender{msgs: make(chan tea.Msg, 4)}
	b.Attach(s)

	b.Notify("Logged out", time.Second)
	assert.Equal(t, StatusMsg{Text: "Logged out", Timeout: time.Second}, <-s.msgs)

	got := make(chan domain.Credentials)
	go func() { got <- b.Credentials("soap4.me", "Login required") }()

	req := (<-s.msgs).(LoginRequestMsg)
	assert.Equal(t, "Login required", req.Reason)
	req.Reply <- domain.Credentials{Username: "user", Password: "pw"}
	assert.Equal(t, "user", (<-got).Username)

	go func() { got <- b.Credentials("soap4.me", "Login required") }()
	<-s.msgs
	b.Close()
	assert.True(t, (<-got).Rejected)
}

func TestFilterItemsSkipsSeparators(t *testing.T) {
	items := []domain.Item{
		{Kind: domain.ItemSeparator, Title: "House"},
		{Kind: domain.ItemVideo, Title: "S01E01 Pilot"},
		{Kind: domain.ItemVideo, Title: "S01E02 Paternity"},
	}

	all := filterItems(items, "")
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].index)

	hits := filterItems(items, "pater")
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].index)
	assert.NotEmpty(t, hits[0].matched)

	assert.Empty(t, filterItems(items, "house"))
}
