package library

import (
	"log/slog"

	"github.com/mmcdole/soap4/internal/domain"
)

// BuildIndex maps sid to entry. The first entry for a sid wins the map;
// Ordered keeps every entry in listing order.
func BuildIndex(series []*domain.SeriesEntry) *domain.SeriesIndex {
	idx := &domain.SeriesIndex{
		BySID:   make(map[string]*domain.SeriesEntry, len(series)),
		Ordered: make([]*domain.SeriesEntry, 0, len(series)),
	}
	for _, s := range series {
		idx.Ordered = append(idx.Ordered, s)
		if _, ok := idx.BySID[s.SID]; !ok {
			idx.BySID[s.SID] = s
		}
	}
	return idx
}

// maxOrdinal bounds season and episode numbers. The tree is a sparse
// slice indexed by ordinal, so larger numbers are treated as malformed.
const maxOrdinal = 1000

// BuildSeasonTree groups a flat episode list by season and episode ordinal.
// Seasons are created on first encounter. A repeated quality in the same
// cell overwrites the earlier record.
func BuildSeasonTree(episodes []*domain.EpisodeVariant, logger *slog.Logger) *domain.SeasonTree {
	tree := &domain.SeasonTree{Raw: episodes}

	for _, ep := range episodes {
		si, ei := ep.Season-1, ep.Episode-1
		if si < 0 || ei < 0 || ep.Season > maxOrdinal || ep.Episode > maxOrdinal {
			logger.Warn("skipping episode with invalid numbering",
				"eid", ep.EID, "season", ep.Season, "episode", ep.Episode)
			continue
		}

		for len(tree.Seasons) <= si {
			tree.Seasons = append(tree.Seasons, nil)
		}
		season := tree.Seasons[si]
		if season == nil {
			season = &domain.SeasonEntry{SeasonID: ep.SeasonID, Number: ep.Season}
			tree.Seasons[si] = season
		}

		for len(season.Episodes) <= ei {
			season.Episodes = append(season.Episodes, nil)
		}
		if season.Episodes[ei] == nil {
			season.Episodes[ei] = make(domain.EpisodeSlot)
		}
		season.Episodes[ei][ep.Quality] = ep
	}

	return tree
}
