package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mmcdole/soap4/internal/domain"
)

// FuzzyMatch is a series matched by a local filter
type FuzzyMatch struct {
	Series   *domain.SeriesEntry
	Distance int // lower = better
}

// NormalizeQuery prepares a query for the remote search
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(norm.NFC.String(query)), " ")
}

// foldTitle lowercases and strips accents for local matching
func foldTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(strings.Join(strings.Fields(result), " "))
}

// FilterSeries ranks the series whose English or Russian title fuzzily
// contains query. Ties keep listing order.
func FilterSeries(query string, series []*domain.SeriesEntry) []FuzzyMatch {
	q := foldTitle(query)
	if q == "" {
		return nil
	}

	titles := make([]string, 0, len(series)*2)
	owners := make([]int, 0, len(series)*2)
	for i, s := range series {
		for _, title := range []string{s.Title, s.TitleRU} {
			if title == "" {
				continue
			}
			titles = append(titles, foldTitle(title))
			owners = append(owners, i)
		}
	}

	ranks := fuzzy.RankFindFold(q, titles)

	best := make(map[int]int, len(ranks))
	for _, r := range ranks {
		owner := owners[r.OriginalIndex]
		if d, ok := best[owner]; !ok || r.Distance < d {
			best[owner] = r.Distance
		}
	}

	matches := make([]FuzzyMatch, 0, len(best))
	for i, s := range series {
		if d, ok := best[i]; ok {
			matches = append(matches, FuzzyMatch{Series: s, Distance: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}
