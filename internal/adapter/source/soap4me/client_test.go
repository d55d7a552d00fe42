package soap4me

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/soap4/internal/domain"
)

var _ domain.CatalogAPI = (*Client)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{BaseURL: server.URL}, staticToken("tok"), testLogger())
}

func TestClient_FetchMySeries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/soap/my/", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("X-Api-Token"))
		assert.Equal(t, "xbmc for soap", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"sid":"42","title":"House","title_ru":"Доктор Хаус","year":"2004","imdb_rating":"8.7","status":"1","watching":1,"unwatched":"3"},
			{"sid":7,"title":"","title_ru":"Кухня","status":0,"watching":false,"unwatched":0}
		]`)
	})

	series, err := client.FetchMySeries(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 2)

	house := series[0]
	assert.Equal(t, "42", house.SID)
	assert.Equal(t, "House", house.DisplayTitle())
	assert.Equal(t, 2004, house.Year)
	assert.InDelta(t, 8.7, house.IMDBRating, 0.001)
	assert.Equal(t, domain.SeriesClosed, house.Status)
	assert.True(t, house.Watching)
	assert.Equal(t, 3, house.UnwatchedCount)
	assert.Equal(t, "https://covers.soap4.me/soap/big/42.jpg", house.CoverURL)

	assert.Equal(t, "7", series[1].SID)
	assert.Equal(t, "Кухня", series[1].DisplayTitle())
	assert.Equal(t, domain.SeriesOngoing, series[1].Status)
	assert.False(t, series[1].Watching)
}

func TestClient_FetchAllSeriesPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/soap/", r.URL.Path)
		io.WriteString(w, `[]`)
	})
	series, err := client.FetchAllSeries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestClient_FetchEpisodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/episodes/42/", r.URL.Path)
		io.WriteString(w, `[
			{"eid":"1","season":"1","episode":"1","season_id":"7","quality":"720p","hash":"h1","title_en":"Pilot","watched":"0"},
			{"eid":2,"sid":42,"season":1,"episode":2,"season_id":7,"quality":"480p","hash":"h2","title_en":"Paternity","watched":1}
		]`)
	})

	episodes, err := client.FetchEpisodes(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, episodes, 2)

	assert.Equal(t, "1", episodes[0].EID)
	assert.Equal(t, "42", episodes[0].SID, "sid defaults to the requested series")
	assert.Equal(t, "7", episodes[0].SeasonID)
	assert.Equal(t, 1, episodes[0].Season)
	assert.Equal(t, 1, episodes[0].Episode)
	assert.Equal(t, "720p", episodes[0].Quality)
	assert.False(t, episodes[0].Watched)

	assert.Equal(t, 2, episodes[1].Episode)
	assert.True(t, episodes[1].Watched)
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/", r.URL.Path)
		assert.Equal(t, "house md", r.URL.Query().Get("q"))
		io.WriteString(w, `{
			"series":[{"sid":"42","title":"House"}],
			"episodes":[{"sid":"42","season":"2","episode":"3","title_en":"Humpty Dumpty"}]
		}`)
	})

	results, err := client.Search(context.Background(), "house md")
	require.NoError(t, err)
	require.Len(t, results.Series, 1)
	require.Len(t, results.Episodes, 1)
	assert.Equal(t, domain.EpisodeRef{SID: "42", Season: 2, Episode: 3, Title: "Humpty Dumpty"}, results.Episodes[0])
}

func TestClient_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/login/", r.URL.Path)
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "user", r.PostForm.Get("login"))
			assert.Equal(t, "secret", r.PostForm.Get("password"))
			io.WriteString(w, `{"ok":true,"token":"abc","till":1700000000}`)
		})

		res, err := client.Login(context.Background(), "user", "secret")
		require.NoError(t, err)
		assert.Equal(t, "abc", res.Token)
		assert.Equal(t, int64(1700000000), res.ExpiresAtSeconds)
	})

	t.Run("rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"ok":0}`)
		})

		_, err := client.Login(context.Background(), "user", "wrong")
		assert.ErrorIs(t, err, domain.ErrLoginIncorrect)
		assert.ErrorIs(t, err, domain.ErrRejected)
		assert.NotErrorIs(t, err, domain.ErrUnknownRemote)
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Login(context.Background(), "user", "secret")
		var statusErr *domain.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, statusErr.Code)
		assert.ErrorIs(t, err, domain.ErrUnknownRemote)
		assert.NotErrorIs(t, err, domain.ErrRejected)
	})
}

func TestClient_RequestStreamTicket(t *testing.T) {
	t.Run("granted", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/callback/", r.URL.Path)
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "player", r.PostForm.Get("what"))
			assert.Equal(t, "load", r.PostForm.Get("do"))
			assert.Equal(t, "tok", r.PostForm.Get("token"))
			assert.Equal(t, "1", r.PostForm.Get("eid"))
			assert.Equal(t, "deadbeef", r.PostForm.Get("hash"))
			io.WriteString(w, `{"ok":1,"server":"s7"}`)
		})

		server, err := client.RequestStreamTicket(context.Background(), "1", "deadbeef", "tok")
		require.NoError(t, err)
		assert.Equal(t, "s7", server)
	})

	t.Run("rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"ok":false}`)
		})

		_, err := client.RequestStreamTicket(context.Background(), "1", "deadbeef", "tok")
		assert.ErrorIs(t, err, domain.ErrRejected)
	})
}

func TestClient_StreamURL(t *testing.T) {
	client := NewClient(ClientConfig{}, nil, testLogger())
	assert.Equal(t, "https://s7.soap4.me/tok/1/deadbeef/", client.StreamURL("s7", "tok", "1", "deadbeef"))
}

func TestClient_WatchState(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		paths = append(paths, r.URL.Path+"?"+r.PostForm.Encode())
		io.WriteString(w, `{"ok":"1"}`)
	})

	ctx := context.Background()
	require.NoError(t, client.SetWatched(ctx, "1", "tok"))
	require.NoError(t, client.SetWatching(ctx, "42", "tok"))
	require.NoError(t, client.SetUnwatching(ctx, "42", "tok"))

	assert.Equal(t, []string{
		"/callback/?eid=1&token=tok&what=mark_watched",
		"/api/soap/watch/42/?token=tok",
		"/api/soap/unwatch/42/?token=tok",
	}, paths)
}

func TestClient_ErrorClasses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name:    "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) },
			want:    domain.ErrAuthFailed,
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			want:    domain.ErrUnknownRemote,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, `<html>`) },
			want:    domain.ErrUnknownRemote,
		},
		{
			name:    "rejected",
			handler: func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, `{"ok":0}`) },
			want:    domain.ErrRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			err := client.SetWatching(context.Background(), "42", "tok")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_ServerOffline(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(ClientConfig{BaseURL: url}, nil, testLogger())
	_, err := client.FetchAllSeries(context.Background())
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.NotErrorIs(t, err, domain.ErrUnknownRemote)
}

func TestClient_NoTokenHeaderWithoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Api-Token"]
		assert.False(t, present)
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL}, staticToken(""), testLogger())
	_, err := client.FetchAllSeries(context.Background())
	require.NoError(t, err)
}
