package router

import (
	"context"
	"log/slog"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/route"
	"github.com/mmcdole/soap4/internal/search"
)

// Sessions persists the login token
type Sessions interface {
	Get() (domain.Session, bool)
	Set(token string, expiresAt int64)
	Clear()
}

// Catalog is the session-scoped catalog cache
type Catalog interface {
	GetSeriesIndex(ctx context.Context, scope domain.SeriesScope) (*domain.SeriesIndex, error)
	GetSeasonTree(ctx context.Context, sid string) (*domain.SeasonTree, error)
	LookupSeries(sid string) (*domain.SeriesEntry, bool)
	InvalidateAll()
}

// Searcher runs merged catalog searches
type Searcher interface {
	Search(ctx context.Context, query, preferredQuality string) (*search.Result, error)
}

// Streams resolves playable streams
type Streams interface {
	Resolve(ctx context.Context, sid, seasonID, eid, token string) (*domain.PlaybackDescriptor, error)
}

// Env is everything a route handler may use. It lives for the whole
// program run; logout clears its session and cache, not the Env itself.
type Env struct {
	Sessions Sessions
	Catalog  Catalog
	Auth     domain.AuthRepository
	Search   Searcher
	Streams  Streams
	Prompt   domain.CredentialPrompt
	Notifier domain.Notifier
	Settings domain.Settings
	Routes   *route.Table
	Meta     domain.Metadata // plugin title and logo
	Logger   *slog.Logger
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}
