package domain

import "sort"

// qualityRank orders the known quality tags, best first.
// Tags not listed rank after every listed tag.
var qualityRank = map[string]int{
	"1080p": 0,
	"720p":  1,
	"hd":    2,
	"480p":  3,
	"sd":    4,
}

// Qualities returns the slot's quality tags in fallback order:
// known tags by rank, then unknown tags in sorted order.
func (s EpisodeSlot) Qualities() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := qualityRank[keys[i]]
		rj, jok := qualityRank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// Resolve picks the variant to play for this slot.
// The preferred quality wins when present; otherwise the best ranked
// quality in the slot is returned. Returns nil only for an empty slot.
func (s EpisodeSlot) Resolve(preferred string) *EpisodeVariant {
	if v, ok := s[preferred]; ok && v != nil {
		return v
	}
	for _, q := range s.Qualities() {
		if v := s[q]; v != nil {
			return v
		}
	}
	return nil
}
