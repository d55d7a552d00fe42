package playback

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/soap4/internal/domain"
)

// catalog resolves cached catalog entries (consumer-defined interface)
type catalog interface {
	FindVariant(ctx context.Context, sid, seasonID, eid string) (*domain.EpisodeVariant, error)
	LookupSeries(sid string) (*domain.SeriesEntry, bool)
}

// watchState sends watch state changes (consumer-defined interface)
type watchState interface {
	MarkWatching(ctx context.Context, sid, token string) error
	MarkWatched(ctx context.Context, v *domain.EpisodeVariant, token string) error
}

// Service turns an episode into a playable stream
type Service struct {
	streams  domain.PlaybackRepository
	catalog  catalog
	watch    watchState
	settings domain.Settings
	logger   *slog.Logger
}

// NewService creates a new playback service
func NewService(
	streams domain.PlaybackRepository,
	catalog catalog,
	watch watchState,
	settings domain.Settings,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		streams:  streams,
		catalog:  catalog,
		watch:    watch,
		settings: settings,
		logger:   logger,
	}
}

// IntegrityHash proves the session may fetch this episode:
// hex MD5 of token, eid, sid and the episode secret, concatenated.
func IntegrityHash(token, eid, sid, secret string) string {
	sum := md5.Sum([]byte(token + eid + sid + secret))
	return hex.EncodeToString(sum[:])
}

// Resolve requests a stream ticket for an episode and builds its URL.
// Watch state updates after a granted ticket are best-effort.
func (s *Service) Resolve(ctx context.Context, sid, seasonID, eid, token string) (*domain.PlaybackDescriptor, error) {
	v, err := s.catalog.FindVariant(ctx, sid, seasonID, eid)
	if err != nil {
		return nil, err
	}

	hash := IntegrityHash(token, v.EID, sid, v.Hash)
	server, err := s.streams.RequestStreamTicket(ctx, v.EID, hash, token)
	if err != nil {
		s.logger.Error("stream ticket failed", "sid", sid, "eid", eid, "error", err)
		if errors.Is(err, domain.ErrRejected) {
			return nil, fmt.Errorf("episode %s: %w", eid, domain.ErrStreamUnavailable)
		}
		return nil, err
	}

	desc := &domain.PlaybackDescriptor{
		URL:     s.streams.StreamURL(server, token, v.EID, hash),
		Title:   fmt.Sprintf("%s %s", v.EpisodeCode(), v.DisplayTitle()),
		SID:     sid,
		EID:     v.EID,
		Quality: v.Quality,
		Server:  server,
	}
	if series, ok := s.catalog.LookupSeries(sid); ok {
		desc.Title = fmt.Sprintf("%s %s", series.DisplayTitle(), desc.Title)
		desc.Metadata = domain.Metadata{Title: series.DisplayTitle(), Logo: series.CoverURL}
	}
	s.logger.Info("resolved stream", "sid", sid, "eid", v.EID, "quality", v.Quality, "server", server)

	s.afterPlay(ctx, sid, v, token)
	return desc, nil
}

func (s *Service) afterPlay(ctx context.Context, sid string, v *domain.EpisodeVariant, token string) {
	// a series missing from the loaded index counts as not watching
	if series, ok := s.catalog.LookupSeries(sid); !ok || !series.Watching {
		_ = s.watch.MarkWatching(ctx, sid, token)
	}
	if s.settings.Preferences().MarkWatchedOnPlay {
		_ = s.watch.MarkWatched(ctx, v, token)
	}
}
