package soap4me

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/soap4/internal/domain"
)

const (
	DefaultBaseURL          = "https://soap4.me"
	DefaultUserAgent        = "xbmc for soap"
	DefaultStreamHostFormat = "https://%s.soap4.me"
	DefaultCoverURLFormat   = "https://covers.soap4.me/soap/big/%s.jpg"
	defaultTimeout          = 30 * time.Second
)

// TokenSource supplies the current session token, or "" without a session
type TokenSource interface {
	Token() string
}

// ClientConfig configures the soap4.me API client
type ClientConfig struct {
	BaseURL          string
	UserAgent        string
	StreamHostFormat string // fmt pattern taking the ticket's server name
	CoverURLFormat   string // fmt pattern taking the series sid
	Timeout          time.Duration
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.StreamHostFormat == "" {
		c.StreamHostFormat = DefaultStreamHostFormat
	}
	if c.CoverURLFormat == "" {
		c.CoverURLFormat = DefaultCoverURLFormat
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Client implements domain.CatalogAPI for soap4.me
type Client struct {
	cfg        ClientConfig
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new soap4.me API client.
// tokens may be nil, in which case no token header is sent.
func NewClient(cfg ClientConfig, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Client{
		cfg:    cfg,
		tokens: tokens,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// doRequest performs an HTTP request and returns the body of a 2xx response.
// A non-nil form is sent as an urlencoded POST body.
func (c *Client) doRequest(ctx context.Context, op, method, path string, query, form url.Values) ([]byte, error) {
	reqURL := c.cfg.BaseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("X-Api-Token", token)
		}
	}

	c.logger.Debug("soap4me request", "op", op, "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("soap4me request failed", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, domain.ErrServerOffline)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrServerOffline)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrAuthFailed)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("soap4me request error", "op", op, "status", resp.StatusCode, "bodyLen", len(data))
		return nil, &domain.StatusError{Op: op, Code: resp.StatusCode}
	}

	return data, nil
}

// decode parses a JSON body; malformed bodies count as unknown remote errors
func (c *Client) decode(op string, data []byte, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("JSON parse error", "op", op, "error", err, "bodyLen", len(data))
		return fmt.Errorf("%s: failed to parse response: %w: %w", op, domain.ErrUnknownRemote, err)
	}
	return nil
}

func (c *Client) fetchSeries(ctx context.Context, op, path string) ([]*domain.SeriesEntry, error) {
	data, err := c.doRequest(ctx, op, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var records []SeriesDTO
	if err := c.decode(op, data, &records); err != nil {
		return nil, err
	}
	return MapSeries(records, c.cfg.CoverURLFormat), nil
}

// FetchAllSeries returns the whole catalog
func (c *Client) FetchAllSeries(ctx context.Context) ([]*domain.SeriesEntry, error) {
	return c.fetchSeries(ctx, "all series", "/api/soap/")
}

// FetchMySeries returns the account's watched series
func (c *Client) FetchMySeries(ctx context.Context) ([]*domain.SeriesEntry, error) {
	return c.fetchSeries(ctx, "my series", "/api/soap/my/")
}

// FetchEpisodes returns every episode record of a series
func (c *Client) FetchEpisodes(ctx context.Context, sid string) ([]*domain.EpisodeVariant, error) {
	const op = "episodes"
	path := fmt.Sprintf("/api/episodes/%s/", url.PathEscape(sid))
	data, err := c.doRequest(ctx, op, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var records []EpisodeDTO
	if err := c.decode(op, data, &records); err != nil {
		return nil, err
	}
	episodes := MapEpisodes(records)
	for _, e := range episodes {
		if e.SID == "" {
			e.SID = sid
		}
	}
	return episodes, nil
}

// Search queries the catalog for series and episodes
func (c *Client) Search(ctx context.Context, query string) (*domain.SearchResults, error) {
	const op = "search"
	data, err := c.doRequest(ctx, op, http.MethodGet, "/api/search/", url.Values{"q": {query}}, nil)
	if err != nil {
		return nil, err
	}
	var resp SearchResponse
	if err := c.decode(op, data, &resp); err != nil {
		return nil, err
	}
	return MapSearch(&resp, c.cfg.CoverURLFormat), nil
}

// RequestStreamTicket asks for a stream server for an episode
func (c *Client) RequestStreamTicket(ctx context.Context, eid, hash, token string) (string, error) {
	const op = "stream ticket"
	form := url.Values{
		"what":  {"player"},
		"do":    {"load"},
		"token": {token},
		"eid":   {eid},
		"hash":  {hash},
	}
	data, err := c.doRequest(ctx, op, http.MethodPost, "/callback/", nil, form)
	if err != nil {
		return "", err
	}
	var resp TicketResponse
	if err := c.decode(op, data, &resp); err != nil {
		return "", err
	}
	if !resp.OK || resp.Server == "" {
		return "", fmt.Errorf("%s: %w", op, domain.ErrRejected)
	}
	return resp.Server, nil
}

// StreamURL builds the playback URL on the granted server
func (c *Client) StreamURL(server, token, eid, hash string) string {
	host := fmt.Sprintf(c.cfg.StreamHostFormat, server)
	return fmt.Sprintf("%s/%s/%s/%s/", strings.TrimRight(host, "/"), token, eid, hash)
}

// SetWatched marks an episode as watched
func (c *Client) SetWatched(ctx context.Context, eid, token string) error {
	form := url.Values{
		"what":  {"mark_watched"},
		"eid":   {eid},
		"token": {token},
	}
	return c.postStatus(ctx, "mark watched", "/callback/", form)
}

// SetWatching subscribes the account to a series
func (c *Client) SetWatching(ctx context.Context, sid, token string) error {
	path := fmt.Sprintf("/api/soap/watch/%s/", url.PathEscape(sid))
	return c.postStatus(ctx, "mark watching", path, url.Values{"token": {token}})
}

// SetUnwatching unsubscribes the account from a series
func (c *Client) SetUnwatching(ctx context.Context, sid, token string) error {
	path := fmt.Sprintf("/api/soap/unwatch/%s/", url.PathEscape(sid))
	return c.postStatus(ctx, "stop watching", path, url.Values{"token": {token}})
}

func (c *Client) postStatus(ctx context.Context, op, path string, form url.Values) error {
	data, err := c.doRequest(ctx, op, http.MethodPost, path, nil, form)
	if err != nil {
		return err
	}
	var resp StatusResponse
	if err := c.decode(op, data, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("%s: %w", op, domain.ErrRejected)
	}
	return nil
}
