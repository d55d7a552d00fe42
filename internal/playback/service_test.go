package playback_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/domain/mocks"
	"github.com/mmcdole/soap4/internal/library"
	"github.com/mmcdole/soap4/internal/playback"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type prefs domain.Preferences

func (p prefs) Preferences() domain.Preferences { return domain.Preferences(p) }

const wantHash = "4d86b83665e6e69f1389601a5277772e"

type fixture struct {
	api     *mocks.MockCatalogAPI
	series  *domain.SeriesEntry
	variant *domain.EpisodeVariant
	svc     *playback.Service
}

func newFixture(t *testing.T, watching, markWatched bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCatalogAPI(ctrl)

	f := &fixture{
		api:    api,
		series: &domain.SeriesEntry{SID: "42", Title: "House", Watching: watching},
		variant: &domain.EpisodeVariant{
			EID: "1", SID: "42", SeasonID: "7", Season: 1, Episode: 1,
			Quality: "720p", Hash: "secret", TitleEN: "Pilot",
		},
	}

	api.EXPECT().FetchMySeries(gomock.Any()).Return([]*domain.SeriesEntry{f.series}, nil)
	api.EXPECT().FetchEpisodes(gomock.Any(), "42").Return([]*domain.EpisodeVariant{f.variant}, nil)

	cache := library.NewCache(api, testLogger())
	_, err := cache.GetSeriesIndex(context.Background(), domain.ScopeMine)
	require.NoError(t, err)

	cmds := library.NewCommands(api, cache, testLogger())
	f.svc = playback.NewService(api, cache, cmds, prefs{PreferredQuality: "720p", MarkWatchedOnPlay: markWatched}, testLogger())
	return f
}

func (f *fixture) expectTicket(server string, err error) {
	f.api.EXPECT().RequestStreamTicket(gomock.Any(), "1", wantHash, "tok").Return(server, err)
	if err == nil {
		f.api.EXPECT().StreamURL(server, "tok", "1", wantHash).
			Return(fmt.Sprintf("https://%s.soap4.me/tok/1/%s/", server, wantHash))
	}
}

func TestIntegrityHash(t *testing.T) {
	assert.Equal(t, wantHash, playback.IntegrityHash("tok", "1", "42", "secret"))
}

func TestResolve_FirstWatch(t *testing.T) {
	f := newFixture(t, false, true)
	f.expectTicket("s7", nil)
	f.api.EXPECT().SetWatching(gomock.Any(), "42", "tok").Return(nil)
	f.api.EXPECT().SetWatched(gomock.Any(), "1", "tok").Return(nil)

	desc, err := f.svc.Resolve(context.Background(), "42", "7", "1", "tok")
	require.NoError(t, err)

	assert.Equal(t, "https://s7.soap4.me/tok/1/"+wantHash+"/", desc.URL)
	assert.Equal(t, "House S01E01 Pilot", desc.Title)
	assert.Equal(t, "720p", desc.Quality)
	assert.Equal(t, "House", desc.Metadata.Title)
	assert.True(t, f.series.Watching)
	assert.True(t, f.variant.Watched)
}

func TestResolve_AlreadyWatchingSkipsSubscribe(t *testing.T) {
	f := newFixture(t, true, false)
	f.expectTicket("s7", nil)
	// no SetWatching, no SetWatched expected

	_, err := f.svc.Resolve(context.Background(), "42", "7", "1", "tok")
	require.NoError(t, err)
	assert.False(t, f.variant.Watched)
}

func TestResolve_SeriesOutsideIndexSubscribes(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCatalogAPI(ctrl)
	variant := &domain.EpisodeVariant{EID: "1", SID: "42", SeasonID: "7", Season: 1, Episode: 1, Quality: "720p", Hash: "secret"}
	api.EXPECT().FetchEpisodes(gomock.Any(), "42").Return([]*domain.EpisodeVariant{variant}, nil)
	api.EXPECT().RequestStreamTicket(gomock.Any(), "1", wantHash, "tok").Return("s7", nil)
	api.EXPECT().StreamURL("s7", "tok", "1", wantHash).Return("https://s7.soap4.me/")
	api.EXPECT().SetWatching(gomock.Any(), "42", "tok").Return(nil)

	// no series index loaded, as for a search hit or a direct episode path
	cache := library.NewCache(api, testLogger())
	svc := playback.NewService(api, cache, library.NewCommands(api, cache, testLogger()), prefs{}, testLogger())

	desc, err := svc.Resolve(context.Background(), "42", "7", "1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "https://s7.soap4.me/", desc.URL)
	assert.False(t, variant.Watched)
}

func TestResolve_SideEffectFailuresIgnored(t *testing.T) {
	f := newFixture(t, false, true)
	f.expectTicket("s7", nil)
	f.api.EXPECT().SetWatching(gomock.Any(), "42", "tok").Return(domain.ErrRejected)
	f.api.EXPECT().SetWatched(gomock.Any(), "1", "tok").Return(domain.ErrServerOffline)

	desc, err := f.svc.Resolve(context.Background(), "42", "7", "1", "tok")
	require.NoError(t, err)
	assert.NotEmpty(t, desc.URL)
	assert.False(t, f.series.Watching)
	assert.False(t, f.variant.Watched)
}

func TestResolve_TicketRejected(t *testing.T) {
	f := newFixture(t, false, true)
	f.expectTicket("", fmt.Errorf("stream ticket: %w", domain.ErrRejected))

	_, err := f.svc.Resolve(context.Background(), "42", "7", "1", "tok")
	assert.ErrorIs(t, err, domain.ErrStreamUnavailable)
	assert.False(t, f.variant.Watched)
	assert.False(t, f.series.Watching)
}

func TestResolve_TicketStatusError(t *testing.T) {
	f := newFixture(t, false, true)
	f.expectTicket("", &domain.StatusError{Op: "stream ticket", Code: 500})

	_, err := f.svc.Resolve(context.Background(), "42", "7", "1", "tok")
	assert.ErrorIs(t, err, domain.ErrUnknownRemote)
	assert.NotErrorIs(t, err, domain.ErrStreamUnavailable)
}

func TestResolve_UnknownEpisode(t *testing.T) {
	f := newFixture(t, false, true)

	_, err := f.svc.Resolve(context.Background(), "42", "7", "99", "tok")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
