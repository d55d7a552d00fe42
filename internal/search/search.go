package search

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/route"
)

// SeasonSource loads season trees
type SeasonSource interface {
	GetSeasonTree(ctx context.Context, sid string) (*domain.SeasonTree, error)
}

// Result is a merged, render-ready search answer.
// Total counts every remote hit, including episode hits that could not
// be resolved against the catalog.
type Result struct {
	Total    int
	Series   []domain.Item
	Episodes []domain.Item
}

// Items returns series items followed by episode items
func (r *Result) Items() []domain.Item {
	items := make([]domain.Item, 0, len(r.Series)+len(r.Episodes))
	items = append(items, r.Series...)
	return append(items, r.Episodes...)
}

// Service merges remote search hits into render items
type Service struct {
	repo    domain.SearchRepository
	seasons SeasonSource
	routes  *route.Table
	logger  *slog.Logger
}

// NewService creates a new search service
func NewService(repo domain.SearchRepository, seasons SeasonSource, routes *route.Table, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:    repo,
		seasons: seasons,
		routes:  routes,
		logger:  logger,
	}
}

// Search runs a remote search. Episode hits are resolved through the
// season tree of their series to find the season id and the variant
// for preferredQuality.
func (s *Service) Search(ctx context.Context, query, preferredQuality string) (*Result, error) {
	query = NormalizeQuery(query)
	results, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Error("search failed", "error", err)
		return nil, err
	}

	res := &Result{Total: results.Total()}

	for _, series := range results.Series {
		res.Series = append(res.Series, s.routes.SeriesItem(series))
	}

	for _, ref := range results.Episodes {
		v, err := s.resolveEpisode(ctx, ref, preferredQuality)
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("skipping unresolvable episode hit",
				"sid", ref.SID, "season", ref.Season, "episode", ref.Episode)
			continue
		}
		if err != nil {
			return nil, err
		}
		res.Episodes = append(res.Episodes, s.routes.EpisodeItem(v, ""))
	}

	s.logger.Debug("search complete", "total", res.Total,
		"series", len(res.Series), "episodes", len(res.Episodes))
	return res, nil
}

func (s *Service) resolveEpisode(ctx context.Context, ref domain.EpisodeRef, preferred string) (*domain.EpisodeVariant, error) {
	tree, err := s.seasons.GetSeasonTree(ctx, ref.SID)
	if err != nil {
		return nil, err
	}
	slot, ok := tree.Slot(ref.Season, ref.Episode)
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := slot.Resolve(preferred)
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}
