package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/soap4/internal/domain"
)

// filterMatch is one item surviving the in-page filter
type filterMatch struct {
	index   int   // into the page's items
	matched []int // byte offsets into the title that matched
}

// filterItems ranks the selectable items of a page against query.
// Separators never match. An empty query keeps every selectable item
// in page order.
func filterItems(items []domain.Item, query string) []filterMatch {
	var titles []string
	var index []int
	for i, item := range items {
		if item.Kind == domain.ItemSeparator {
			continue
		}
		titles = append(titles, strings.ToLower(item.Title))
		index = append(index, i)
	}

	if strings.TrimSpace(query) == "" {
		out := make([]filterMatch, len(index))
		for i, idx := range index {
			out[i] = filterMatch{index: idx}
		}
		return out
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)
	out := make([]filterMatch, len(matches))
	for i, match := range matches {
		out[i] = filterMatch{index: index[match.Index], matched: match.MatchedIndexes}
	}
	return out
}
