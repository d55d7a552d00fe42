package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/route"
)

const maxRedirects = 5

var (
	// ErrNavigationInFlight is returned when a navigation is already running
	ErrNavigationInFlight = errors.New("another navigation is in progress")

	// ErrTooManyRedirects bounds redirect chains within one navigation
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrUnknownRoute is returned for a path no route matches
	ErrUnknownRoute = errors.New("no route matches path")
)

// HandlerFunc renders one route into page
type HandlerFunc func(ctx context.Context, env *Env, page domain.Page, params route.Params) error

// Dispatcher runs one navigation at a time
type Dispatcher struct {
	env      *Env
	handlers map[route.Kind]HandlerFunc
	inFlight *semaphore.Weighted
}

// NewDispatcher creates a dispatcher with the standard handlers bound
func NewDispatcher(env *Env) *Dispatcher {
	d := &Dispatcher{
		env:      env,
		handlers: make(map[route.Kind]HandlerFunc),
		inFlight: semaphore.NewWeighted(1),
	}
	d.Handle(route.Start, handleStart)
	d.Handle(route.Search, handleSearch)
	d.Handle(route.Series, handleSeries)
	d.Handle(route.Season, handleSeason)
	d.Handle(route.Episode, handleEpisode)
	d.Handle(route.Login, handleLogin)
	d.Handle(route.Logout, handleLogout)
	return d
}

// Handle binds h to a route kind, replacing any previous binding
func (d *Dispatcher) Handle(kind route.Kind, h HandlerFunc) {
	d.handlers[kind] = h
}

// Dispatch runs the handler for path once and returns the redirect
// target it requested, if any.
func (d *Dispatcher) Dispatch(ctx context.Context, path string, page domain.Page) (string, error) {
	if !d.inFlight.TryAcquire(1) {
		return "", ErrNavigationInFlight
	}
	defer d.inFlight.Release(1)
	return d.dispatch(ctx, path, page)
}

// Navigate runs the handler for path and follows its redirects
func (d *Dispatcher) Navigate(ctx context.Context, path string, page domain.Page) error {
	if !d.inFlight.TryAcquire(1) {
		return ErrNavigationInFlight
	}
	defer d.inFlight.Release(1)

	for hops := 0; ; hops++ {
		next, err := d.dispatch(ctx, path, page)
		if err != nil || next == "" {
			return err
		}
		if hops >= maxRedirects {
			d.env.logger().Warn("redirect limit reached", "path", path)
			page.Error(ErrTooManyRedirects)
			return ErrTooManyRedirects
		}
		page.Redirect(next)
		path = next
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, path string, page domain.Page) (string, error) {
	log := d.env.logger()

	kind, params, ok := d.env.Routes.Match(path)
	h := d.handlers[kind]
	if !ok || h == nil {
		err := fmt.Errorf("%w: %s", ErrUnknownRoute, path)
		page.Error(err)
		return "", err
	}

	log.Debug("dispatch", "route", kind.String(), "sid", params.SID, "seasonID", params.SeasonID, "eid", params.EID)

	hp := &hopPage{Page: page}
	err := d.safeCall(ctx, h, hp, params)
	if err == nil {
		return hp.target, nil
	}

	// failures render on the page; session and cache stay as they were
	page.SetLoading(false)
	log.Error("route failed", "route", kind.String(), "error", err)
	page.Error(err)
	return "", err
}

// safeCall turns a handler panic into an error
func (d *Dispatcher) safeCall(ctx context.Context, h HandlerFunc, page domain.Page, params route.Params) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, d.env, page, params)
}

const notifyTimeout = 5 * time.Second

// hopPage records a handler's redirect and drops output after it
type hopPage struct {
	domain.Page
	target string
}

func (p *hopPage) Redirect(path string) {
	if p.target == "" {
		p.target = path
	}
}

func (p *hopPage) SetMetadata(meta domain.Metadata) {
	if p.target == "" {
		p.Page.SetMetadata(meta)
	}
}

func (p *hopPage) SetType(t domain.ContentType) {
	if p.target == "" {
		p.Page.SetType(t)
	}
}

func (p *hopPage) SetTotal(total int) {
	if p.target == "" {
		p.Page.SetTotal(total)
	}
}

func (p *hopPage) AppendItem(item domain.Item) {
	if p.target == "" {
		p.Page.AppendItem(item)
	}
}

func (p *hopPage) Error(err error) {
	if p.target == "" {
		p.Page.Error(err)
	}
}

func (p *hopPage) Play(desc *domain.PlaybackDescriptor) {
	if p.target == "" {
		p.Page.Play(desc)
	}
}
