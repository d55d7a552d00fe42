package library

import (
	"context"
	"log/slog"

	"github.com/mmcdole/soap4/internal/domain"
)

// Commands sends watch state changes and mirrors them into the cache.
// The cache is only updated after the server accepts the change.
type Commands struct {
	repo   domain.PlaybackRepository
	cache  *Cache
	logger *slog.Logger
}

// NewCommands creates a new Commands instance.
func NewCommands(repo domain.PlaybackRepository, cache *Cache, logger *slog.Logger) *Commands {
	if logger == nil {
		logger = slog.Default()
	}
	return &Commands{repo: repo, cache: cache, logger: logger}
}

// MarkWatching subscribes to a series and flags the cached entry
func (c *Commands) MarkWatching(ctx context.Context, sid, token string) error {
	if err := c.repo.SetWatching(ctx, sid, token); err != nil {
		c.logger.Warn("failed to mark series watching", "sid", sid, "error", err)
		return err
	}
	c.setWatching(sid, true)
	c.logger.Debug("marked series watching", "sid", sid)
	return nil
}

// StopWatching unsubscribes from a series and clears the cached flag
func (c *Commands) StopWatching(ctx context.Context, sid, token string) error {
	if err := c.repo.SetUnwatching(ctx, sid, token); err != nil {
		c.logger.Warn("failed to stop watching series", "sid", sid, "error", err)
		return err
	}
	c.setWatching(sid, false)
	c.logger.Debug("stopped watching series", "sid", sid)
	return nil
}

// MarkWatched marks an episode variant watched and flags it in the cache
func (c *Commands) MarkWatched(ctx context.Context, v *domain.EpisodeVariant, token string) error {
	if err := c.repo.SetWatched(ctx, v.EID, token); err != nil {
		c.logger.Warn("failed to mark episode watched", "eid", v.EID, "error", err)
		return err
	}
	c.cache.mu.Lock()
	v.Watched = true
	c.cache.mu.Unlock()
	c.logger.Debug("marked episode watched", "eid", v.EID)
	return nil
}

func (c *Commands) setWatching(sid string, watching bool) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	if c.cache.index == nil {
		return
	}
	// duplicate sids share the flag
	for _, s := range c.cache.index.Ordered {
		if s.SID == sid {
			s.Watching = watching
		}
	}
}
