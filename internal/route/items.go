package route

import (
	"fmt"
	"strings"

	"github.com/mmcdole/soap4/internal/domain"
)

// SeriesItem renders a series as a directory entry
func (t *Table) SeriesItem(s *domain.SeriesEntry) domain.Item {
	desc := s.Description
	if s.UnwatchedCount > 0 {
		desc = strings.TrimSpace(fmt.Sprintf("%d new. %s", s.UnwatchedCount, desc))
	}
	return domain.Item{
		Path:        t.Series(s.SID),
		Kind:        domain.ItemDirectory,
		Title:       s.DisplayTitle(),
		Description: desc,
		Icon:        s.CoverURL,
		Year:        s.Year,
		Rating:      s.IMDBRating,
		Watched:     s.UnwatchedCount == 0,
	}
}

// SeasonItem renders one season of a series
func (t *Table) SeasonItem(sid string, season *domain.SeasonEntry, icon string) domain.Item {
	return domain.Item{
		Path:        t.Season(sid, season.SeasonID),
		Kind:        domain.ItemDirectory,
		Title:       fmt.Sprintf("Season %d", season.Number),
		Description: fmt.Sprintf("%d episodes", season.EpisodeCount()),
		Icon:        icon,
	}
}

// EpisodeItem renders a resolved variant as a playable entry
func (t *Table) EpisodeItem(v *domain.EpisodeVariant, icon string) domain.Item {
	desc := v.Spoiler
	if v.Translate != "" {
		desc = strings.TrimSpace(v.Translate + "\n" + desc)
	}
	return domain.Item{
		Path:        t.Episode(v.SID, v.SeasonID, v.EID),
		Kind:        domain.ItemVideo,
		Title:       fmt.Sprintf("%s %s", v.EpisodeCode(), v.DisplayTitle()),
		Description: desc,
		Icon:        icon,
		Watched:     v.Watched,
		Quality:     v.Quality,
	}
}

// Separator renders a group heading
func Separator(title string) domain.Item {
	return domain.Item{Kind: domain.ItemSeparator, Title: title}
}
