package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/soap4/internal/domain"
)

// Cache lazily loads the series index and per-series season trees.
// Entries live until InvalidateAll; nothing expires by time.
type Cache struct {
	client domain.SeriesRepository
	logger *slog.Logger

	mu    sync.Mutex
	index *domain.SeriesIndex
	scope domain.SeriesScope
	trees map[string]*domain.SeasonTree
}

// NewCache creates an empty cache over client
func NewCache(client domain.SeriesRepository, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		client: client,
		logger: logger,
		trees:  make(map[string]*domain.SeasonTree),
	}
}

// GetSeriesIndex returns the cached index, loading it on first use.
// There is one index slot per session: once loaded, it is returned for
// either scope until InvalidateAll.
func (c *Cache) GetSeriesIndex(ctx context.Context, scope domain.SeriesScope) (*domain.SeriesIndex, error) {
	c.mu.Lock()
	if c.index != nil {
		idx := c.index
		c.mu.Unlock()
		return idx, nil
	}
	c.mu.Unlock()

	var (
		series []*domain.SeriesEntry
		err    error
	)
	if scope == domain.ScopeAll {
		series, err = c.client.FetchAllSeries(ctx)
	} else {
		series, err = c.client.FetchMySeries(ctx)
	}
	if err != nil {
		c.logger.Error("failed to fetch series", "scope", scope.String(), "error", err)
		return nil, err
	}

	idx := BuildIndex(series)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index == nil {
		c.index = idx
		c.scope = scope
	}
	c.logger.Debug("loaded series index", "scope", scope.String(), "count", len(idx.Ordered))
	return c.index, nil
}

// GetSeasonTree returns the cached tree for sid, loading it on first use
func (c *Cache) GetSeasonTree(ctx context.Context, sid string) (*domain.SeasonTree, error) {
	c.mu.Lock()
	if tree, ok := c.trees[sid]; ok {
		c.mu.Unlock()
		return tree, nil
	}
	c.mu.Unlock()

	episodes, err := c.client.FetchEpisodes(ctx, sid)
	if err != nil {
		c.logger.Error("failed to fetch episodes", "sid", sid, "error", err)
		return nil, err
	}

	tree := BuildSeasonTree(episodes, c.logger)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.trees[sid]; ok {
		return existing, nil
	}
	c.trees[sid] = tree
	c.logger.Debug("loaded season tree", "sid", sid, "seasons", len(tree.Seasons), "count", len(episodes))
	return tree, nil
}

// LookupSeries reads a series from the loaded index without fetching
func (c *Cache) LookupSeries(sid string) (*domain.SeriesEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.Lookup(sid)
}

// FindVariant resolves an episode variant by season id and eid
func (c *Cache) FindVariant(ctx context.Context, sid, seasonID, eid string) (*domain.EpisodeVariant, error) {
	tree, err := c.GetSeasonTree(ctx, sid)
	if err != nil {
		return nil, err
	}
	season, ok := tree.SeasonByID(seasonID)
	if !ok {
		return nil, fmt.Errorf("season %s of series %s: %w", seasonID, sid, domain.ErrNotFound)
	}
	v, ok := season.FindVariant(eid)
	if !ok {
		return nil, fmt.Errorf("episode %s of season %s: %w", eid, seasonID, domain.ErrNotFound)
	}
	return v, nil
}

// InvalidateAll drops the index and every season tree
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = nil
	c.trees = make(map[string]*domain.SeasonTree)
	c.logger.Debug("catalog cache invalidated")
}
