package domain

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_catalog.go -package=mocks github.com/mmcdole/soap4/internal/domain CatalogAPI

// SeriesRepository provides access to the series catalog
type SeriesRepository interface {
	// FetchAllSeries returns every series in the catalog, in listing order
	FetchAllSeries(ctx context.Context) ([]*SeriesEntry, error)

	// FetchMySeries returns the series the account is watching
	FetchMySeries(ctx context.Context) ([]*SeriesEntry, error)

	// FetchEpisodes returns the flat episode list of a series, one record per quality
	FetchEpisodes(ctx context.Context, sid string) ([]*EpisodeVariant, error)
}

// SearchRepository provides remote catalog search
type SearchRepository interface {
	Search(ctx context.Context, query string) (*SearchResults, error)
}

// AuthRepository exchanges credentials for a session token
type AuthRepository interface {
	// Login returns ErrLoginIncorrect when the server rejects the credentials
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// PlaybackRepository provides stream tickets and watch state updates
type PlaybackRepository interface {
	// RequestStreamTicket returns the stream server host for an episode.
	// A rejected ticket is reported as ErrRejected.
	RequestStreamTicket(ctx context.Context, eid, hash, token string) (string, error)

	// StreamURL builds the playback URL on the granted server
	StreamURL(server, token, eid, hash string) string

	SetWatched(ctx context.Context, eid, token string) error
	SetWatching(ctx context.Context, sid, token string) error
	SetUnwatching(ctx context.Context, sid, token string) error
}

// CatalogAPI is the full remote catalog surface
type CatalogAPI interface {
	SeriesRepository
	SearchRepository
	AuthRepository
	PlaybackRepository
}
