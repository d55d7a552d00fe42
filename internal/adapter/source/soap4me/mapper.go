package soap4me

import (
	"fmt"

	"github.com/mmcdole/soap4/internal/domain"
)

// MapSeries converts series records to domain entries, keeping order
func MapSeries(records []SeriesDTO, coverFormat string) []*domain.SeriesEntry {
	series := make([]*domain.SeriesEntry, 0, len(records))
	for _, r := range records {
		series = append(series, mapSeries(r, coverFormat))
	}
	return series
}

func mapSeries(r SeriesDTO, coverFormat string) *domain.SeriesEntry {
	entry := &domain.SeriesEntry{
		SID:            string(r.SID),
		Title:          r.Title,
		TitleRU:        r.TitleRU,
		Description:    r.Description,
		Year:           int(r.Year),
		IMDBRating:     float64(r.IMDBRating),
		Status:         domain.SeriesOngoing,
		Watching:       bool(r.Watching),
		UnwatchedCount: int(r.Unwatched),
	}
	if r.Status == 1 {
		entry.Status = domain.SeriesClosed
	}
	if coverFormat != "" && entry.SID != "" {
		entry.CoverURL = fmt.Sprintf(coverFormat, entry.SID)
	}
	return entry
}

// MapEpisodes converts episode records to domain variants, keeping order
func MapEpisodes(records []EpisodeDTO) []*domain.EpisodeVariant {
	episodes := make([]*domain.EpisodeVariant, 0, len(records))
	for _, r := range records {
		episodes = append(episodes, &domain.EpisodeVariant{
			EID:       string(r.EID),
			SID:       string(r.SID),
			SeasonID:  string(r.SeasonID),
			Quality:   r.Quality,
			Hash:      r.Hash,
			TitleEN:   r.TitleEN,
			TitleRU:   r.TitleRU,
			Translate: r.Translate,
			Season:    int(r.Season),
			Episode:   int(r.Episode),
			Watched:   bool(r.Watched),
			Spoiler:   r.Spoiler,
		})
	}
	return episodes
}

// MapSearch converts a search response to domain results
func MapSearch(resp *SearchResponse, coverFormat string) *domain.SearchResults {
	results := &domain.SearchResults{
		Series:   MapSeries(resp.Series, coverFormat),
		Episodes: make([]domain.EpisodeRef, 0, len(resp.Episodes)),
	}
	for _, e := range resp.Episodes {
		results.Episodes = append(results.Episodes, domain.EpisodeRef{
			SID:     string(e.SID),
			Season:  int(e.Season),
			Episode: int(e.Episode),
			Title:   e.TitleEN,
			TitleRU: e.TitleRU,
		})
	}
	return results
}
