package library_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/domain/mocks"
	"github.com/mmcdole/soap4/internal/library"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ep(eid string, season, episode int, quality string) *domain.EpisodeVariant {
	return &domain.EpisodeVariant{
		EID: eid, SID: "42", SeasonID: "s" + string(rune('0'+season)),
		Season: season, Episode: episode, Quality: quality,
	}
}

func TestGetSeriesIndex_FirstWriteWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCatalogAPI(ctrl)

	first := &domain.SeriesEntry{SID: "1", Title: "first"}
	dup := &domain.SeriesEntry{SID: "1", Title: "duplicate"}
	other := &domain.SeriesEntry{SID: "2", Title: "other"}
	api.EXPECT().FetchMySeries(gomock.Any()).Return([]*domain.SeriesEntry{first, dup, other}, nil).Times(1)

	cache := library.NewCache(api, testLogger())
	idx, err := cache.GetSeriesIndex(context.Background(), domain.ScopeMine)
	require.NoError(t, err)

	assert.Same(t, first, idx.BySID["1"])
	assert.Len(t, idx.BySID, 2)
	assert.Equal(t, []*domain.SeriesEntry{first, dup, other}, idx.Ordered)

	// second call is served from cache, whatever the scope
	again, err := cache.GetSeriesIndex(context.Background(), domain.ScopeAll)
	require.NoError(t, err)
	assert.Same(t, idx, again)

	got, ok := cache.LookupSeries("2")
	require.True(t, ok)
	assert.Same(t, other, got)
}

func TestGetSeriesIndex_ScopeSelectsEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCatalogAPI(ctrl)
	api.EXPECT().FetchAllSeries(gomock.Any()).Return([]*domain.SeriesEntry{{SID: "9"}}, nil)

	cache := library.NewCache(api, testLogger())
	idx, err := cache.GetSeriesIndex(context.Background(), domain.ScopeAll)
	require.NoError(t, err)
	assert.Len(t, idx.Ordered, 1)
}

func TestGetSeriesIndex_FailureLeavesCacheEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCatalogAPI(ctrl)

	boom := &domain.StatusError{Op: "my series", Code: 500}
	gomock.InOrder(
		api.EXPECT().FetchMySeries(gomock.Any()).Return(nil, boom),
		api.EXPECT().FetchMySeries(gomock.Any()).Return([]*domain.SeriesEntry{{SID: "1"}}, nil),
	)

	cache := library.NewCache(api, testLogger())
	_, err := cache.GetSeriesIndex(context.Background(), domain.ScopeMine)
	require.ErrorIs(t, err, domain.ErrUnknownRemote)

	_, ok := cache.LookupSeries("1")
	assert.False(t, ok)

	idx, err := cache.GetSeriesIndex(context.Background(), domain.ScopeMine)
	require.NoError(t, err)
	assert.Len(t, idx.Ordered, 1)
}

func TestBuildSeasonTree_Grouping(t *testing.T) {
	raw := []*domain.EpisodeVariant{
		ep("1", 2, 1, "720p"),
		ep("2", 1, 1, "720p"),
		ep("3", 1, 1, "480p"),
		ep("4", 1, 3, "720p"), // leaves episode 2 as a gap
		ep("5", 4, 1, "720p"), // leaves season 3 as a gap
	}
	tree := library.BuildSeasonTree(raw, testLogger())

	require.Len(t, tree.Seasons, 4)
	assert.Equal(t, 1, tree.Seasons[0].Number)
	assert.Equal(t, 2, tree.Seasons[1].Number)
	assert.Nil(t, tree.Seasons[2])
	assert.Equal(t, raw, tree.Raw)

	s1 := tree.Seasons[0]
	require.Len(t, s1.Episodes, 3)
	assert.Len(t, s1.Episodes[0], 2)
	assert.Nil(t, s1.Episodes[1])
	assert.Equal(t, "4", s1.Episodes[2]["720p"].EID)
	assert.Equal(t, 2, s1.EpisodeCount())
}

func TestBuildSeasonTree_LastWriteWins(t *testing.T) {
	tree := library.BuildSeasonTree([]*domain.EpisodeVariant{
		ep("old", 1, 1, "720p"),
		ep("new", 1, 1, "720p"),
	}, testLogger())

	slot, ok := tree.Slot(1, 1)
	require.True(t, ok)
	assert.Equal(t, "new", slot["720p"].EID)
}

func TestBuildSeasonTree_StableUnderReordering(t *testing.T) {
	raw := []*domain.EpisodeVariant{
		ep("1", 1, 1, "720p"),
		ep("2", 1, 2, "480p"),
		ep("3", 2, 1, "720p"),
		ep("4", 2, 1, "1080p"),
		ep("5", 3, 5, "sd"),
	}
	want := library.BuildSeasonTree(raw, testLogger())

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]*domain.EpisodeVariant(nil), raw...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := library.BuildSeasonTree(shuffled, testLogger())
		require.Len(t, got.Seasons, len(want.Seasons))
		for si := range want.Seasons {
			assert.Equal(t, want.Seasons[si], got.Seasons[si])
		}
	}
}

func TestBuildSeasonTree_SkipsInvalidOrdinals(t *testing.T) {
	tree := library.BuildSeasonTree([]*domain.EpisodeVariant{
		ep("bad", 0, 1, "720p"),
		ep("good", 1, 1, "720p"),
		ep("huge-episode", 1, 2000000000, "720p"),
		ep("huge-season", 2000000000, 1, "720p"),
	}, testLogger())
	require.Len(t, tree.Seasons, 1)
	require.Len(t, tree.Seasons[0].Episodes, 1)
	assert.Len(t, tree.Raw, 4)
}

func TestBuildSeasonTree_KeepsOrdinalsUpToLimit(t *testing.T) {
	tree := library.BuildSeasonTree([]*domain.EpisodeVariant{
		ep("last", 1, 1000, "720p"),
	}, testLogger())
	require.Len(t, tree.Seasons, 1)
	assert.Len(t, tree.Seasons[0].Episodes, 1000)
}

func TestGetSeasonTree_CachedPerSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCatalogAPI(ctrl)
	api.EXPECT().FetchEpisodes(gomock.Any(), "42").Return([]*domain.EpisodeVariant{ep("1", 1, 1, "720p")}, nil).Times(1)
	api.EXPECT().FetchEpisodes(gomock.Any(), "43").Return(nil, errors.New("offline")).Times(1)

	cache := library.NewCache(api, testLogger())
	ctx := context.Background()

	tree, err := cache.GetSeasonTree(ctx, "42")
	require.NoError(t, err)
	again, err := cache.GetSeasonTree(ctx, "42")
	require.NoError(t, err)
	assert.Same(t, tree, again)

	_, err = cache.GetSeasonTree(ctx, "43")
	assert.Error(t, err)
}

func TestFindVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCatalogAPI(ctrl)
	api.EXPECT().FetchEpisodes(gomock.Any(), "42").Return([]*domain.EpisodeVariant{
		ep("1", 1, 1, "720p"),
		ep("2", 1, 2, "480p"),
	}, nil)

	cache := library.NewCache(api, testLogger())
	ctx := context.Background()

	v, err := cache.FindVariant(ctx, "42", "s1", "2")
	require.NoError(t, err)
	assert.Equal(t, "480p", v.Quality)

	_, err = cache.FindVariant(ctx, "42", "s9", "2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = cache.FindVariant(ctx, "42", "s1", "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvalidateAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCatalogAPI(ctrl)
	api.EXPECT().FetchMySeries(gomock.Any()).Return([]*domain.SeriesEntry{{SID: "1"}}, nil).Times(2)
	api.EXPECT().FetchEpisodes(gomock.Any(), "1").Return([]*domain.EpisodeVariant{ep("1", 1, 1, "720p")}, nil).Times(2)

	cache := library.NewCache(api, testLogger())
	ctx := context.Background()

	_, err := cache.GetSeriesIndex(ctx, domain.ScopeMine)
	require.NoError(t, err)
	_, err = cache.GetSeasonTree(ctx, "1")
	require.NoError(t, err)

	cache.InvalidateAll()
	_, ok := cache.LookupSeries("1")
	assert.False(t, ok)

	_, err = cache.GetSeriesIndex(ctx, domain.ScopeMine)
	require.NoError(t, err)
	_, err = cache.GetSeasonTree(ctx, "1")
	require.NoError(t, err)
}

func TestCommands_WatchState(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCatalogAPI(ctrl)

	series := &domain.SeriesEntry{SID: "42"}
	api.EXPECT().FetchMySeries(gomock.Any()).Return([]*domain.SeriesEntry{series}, nil)

	cache := library.NewCache(api, testLogger())
	ctx := context.Background()
	_, err := cache.GetSeriesIndex(ctx, domain.ScopeMine)
	require.NoError(t, err)

	cmds := library.NewCommands(api, cache, testLogger())

	api.EXPECT().SetWatching(gomock.Any(), "42", "tok").Return(nil)
	require.NoError(t, cmds.MarkWatching(ctx, "42", "tok"))
	assert.True(t, series.Watching)

	api.EXPECT().SetUnwatching(gomock.Any(), "42", "tok").Return(domain.ErrRejected)
	assert.ErrorIs(t, cmds.StopWatching(ctx, "42", "tok"), domain.ErrRejected)
	assert.True(t, series.Watching, "rejected change leaves cache untouched")

	api.EXPECT().SetUnwatching(gomock.Any(), "42", "tok").Return(nil)
	require.NoError(t, cmds.StopWatching(ctx, "42", "tok"))
	assert.False(t, series.Watching)

	v := ep("1", 1, 1, "720p")
	api.EXPECT().SetWatched(gomock.Any(), "1", "tok").Return(nil)
	require.NoError(t, cmds.MarkWatched(ctx, v, "tok"))
	assert.True(t, v.Watched)
}
