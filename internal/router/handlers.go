package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/route"
	"github.com/mmcdole/soap4/internal/search"
)

// Group headings on the start page
const (
	groupNew         = "New episodes"
	groupWatching    = "Watching"
	groupClosed      = "Closed"
	groupNotWatching = "Not watching"
)

// load brackets a remote call with the page's loading flag
func load[T any](page domain.Page, fn func() (T, error)) (T, error) {
	page.SetLoading(true)
	defer page.SetLoading(false)
	return fn()
}

// requireSession redirects to login when there is no valid session
func requireSession(env *Env, page domain.Page) (domain.Session, bool) {
	sess, ok := env.Sessions.Get()
	if !ok {
		page.Redirect(env.Routes.Login())
	}
	return sess, ok
}

func handleStart(ctx context.Context, env *Env, page domain.Page, _ route.Params) error {
	if _, ok := requireSession(env, page); !ok {
		return nil
	}

	page.SetMetadata(env.Meta)
	page.SetType(domain.ContentGrid)

	prefs := env.Settings.Preferences()
	scope := domain.ScopeMine
	if prefs.ShowUnsubscribed {
		scope = domain.ScopeAll
	}

	idx, err := load(page, func() (*domain.SeriesIndex, error) {
		return env.Catalog.GetSeriesIndex(ctx, scope)
	})
	if err != nil {
		return err
	}

	var fresh, watching, closed, other []*domain.SeriesEntry
	for _, s := range idx.Ordered {
		if idx.BySID[s.SID] != s {
			continue // duplicate sid
		}
		switch {
		case !s.Watching:
			other = append(other, s)
		case s.UnwatchedCount > 0:
			fresh = append(fresh, s)
		case s.Status == domain.SeriesClosed:
			closed = append(closed, s)
		default:
			watching = append(watching, s)
		}
	}

	appendGroup(env, page, groupNew, fresh)
	appendGroup(env, page, groupWatching, watching)
	appendGroup(env, page, groupClosed, closed)
	if prefs.ShowUnsubscribed {
		appendGroup(env, page, groupNotWatching, other)
	}
	return nil
}

func appendGroup(env *Env, page domain.Page, title string, series []*domain.SeriesEntry) {
	if len(series) == 0 {
		return
	}
	page.AppendItem(route.Separator(title))
	for _, s := range series {
		page.AppendItem(env.Routes.SeriesItem(s))
	}
}

func handleSeries(ctx context.Context, env *Env, page domain.Page, params route.Params) error {
	if _, ok := requireSession(env, page); !ok {
		return nil
	}

	icon := seriesMeta(env, page, params.SID)
	page.SetType(domain.ContentDirectory)

	tree, err := load(page, func() (*domain.SeasonTree, error) {
		return env.Catalog.GetSeasonTree(ctx, params.SID)
	})
	if err != nil {
		return err
	}

	for _, season := range tree.Seasons {
		if season == nil {
			continue
		}
		page.AppendItem(env.Routes.SeasonItem(params.SID, season, icon))
	}
	return nil
}

func handleSeason(ctx context.Context, env *Env, page domain.Page, params route.Params) error {
	if _, ok := requireSession(env, page); !ok {
		return nil
	}

	icon := seriesMeta(env, page, params.SID)
	page.SetType(domain.ContentItems)

	tree, err := load(page, func() (*domain.SeasonTree, error) {
		return env.Catalog.GetSeasonTree(ctx, params.SID)
	})
	if err != nil {
		return err
	}

	season, ok := tree.SeasonByID(params.SeasonID)
	if !ok {
		return fmt.Errorf("season %s of series %s: %w", params.SeasonID, params.SID, domain.ErrNotFound)
	}

	preferred := env.Settings.Preferences().PreferredQuality
	for _, slot := range season.Episodes {
		v := slot.Resolve(preferred)
		if v == nil {
			continue // gap
		}
		page.AppendItem(env.Routes.EpisodeItem(v, icon))
	}
	return nil
}

// seriesMeta sets the page header from the cached series, if known,
// and returns its cover.
func seriesMeta(env *Env, page domain.Page, sid string) string {
	meta := env.Meta
	var icon string
	if s, ok := env.Catalog.LookupSeries(sid); ok {
		meta.Title = s.DisplayTitle()
		icon = s.CoverURL
	}
	page.SetMetadata(meta)
	return icon
}

func handleEpisode(ctx context.Context, env *Env, page domain.Page, params route.Params) error {
	sess, ok := requireSession(env, page)
	if !ok {
		return nil
	}

	page.SetMetadata(env.Meta)

	desc, err := load(page, func() (*domain.PlaybackDescriptor, error) {
		return env.Streams.Resolve(ctx, params.SID, params.SeasonID, params.EID, sess.Token)
	})
	if err != nil {
		return err
	}

	page.SetType(domain.ContentVideo)
	page.Play(desc)
	return nil
}

func handleSearch(ctx context.Context, env *Env, page domain.Page, params route.Params) error {
	if _, ok := requireSession(env, page); !ok {
		return nil
	}

	meta := env.Meta
	meta.Title = fmt.Sprintf("Search: %s", params.Query)
	page.SetMetadata(meta)
	page.SetType(domain.ContentDirectory)

	preferred := env.Settings.Preferences().PreferredQuality
	res, err := load(page, func() (*search.Result, error) {
		return env.Search.Search(ctx, params.Query, preferred)
	})
	if err != nil {
		return err
	}

	page.SetTotal(res.Total)
	if len(res.Series) > 0 {
		page.AppendItem(route.Separator("Series"))
		for _, item := range res.Series {
			page.AppendItem(item)
		}
	}
	if len(res.Episodes) > 0 {
		page.AppendItem(route.Separator("Episodes"))
		for _, item := range res.Episodes {
			page.AppendItem(item)
		}
	}
	return nil
}

const loginReason = "Login required"

func handleLogin(ctx context.Context, env *Env, page domain.Page, _ route.Params) error {
	log := env.logger()

	creds := env.Prompt.Credentials(env.Meta.Title, loginReason)
	if creds.Rejected {
		log.Debug("login prompt cancelled")
		page.Redirect(env.Routes.Login())
		return nil
	}

	res, err := load(page, func() (*domain.AuthResult, error) {
		return env.Auth.Login(ctx, creds.Username, creds.Password)
	})
	if err != nil {
		log.Warn("login failed", "error", err)
		notify(env, loginMessage(err))
		page.Redirect(env.Routes.Login())
		return nil
	}

	env.Sessions.Set(res.Token, res.ExpiresAtSeconds)
	env.Catalog.InvalidateAll()
	log.Info("logged in")
	page.Redirect(env.Routes.Start())
	return nil
}

func loginMessage(err error) string {
	if errors.Is(err, domain.ErrLoginIncorrect) {
		return domain.UserMessage(err)
	}
	return "Login failed: " + domain.UserMessage(err)
}

func handleLogout(_ context.Context, env *Env, page domain.Page, _ route.Params) error {
	env.Sessions.Clear()
	env.Catalog.InvalidateAll()
	env.logger().Info("logged out")
	notify(env, "Logged out")
	page.Redirect(env.Routes.Start())
	return nil
}

func notify(env *Env, msg string) {
	if env.Notifier != nil {
		env.Notifier.Notify(msg, notifyTimeout)
	}
}
