package domain

import (
	"fmt"
	"time"
)

// SeriesStatus is the airing state reported by the catalog
type SeriesStatus int

const (
	SeriesOngoing SeriesStatus = iota
	SeriesClosed
)

// String returns a human-readable representation of the status
func (s SeriesStatus) String() string {
	switch s {
	case SeriesOngoing:
		return "Ongoing"
	case SeriesClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// SeriesScope selects which series listing backs the index
type SeriesScope int

const (
	ScopeMine SeriesScope = iota // series the account is watching
	ScopeAll                     // the whole catalog
)

func (s SeriesScope) String() string {
	if s == ScopeAll {
		return "all"
	}
	return "mine"
}

// SeriesEntry is one series in the catalog. Identity key is SID.
type SeriesEntry struct {
	SID            string
	Title          string
	TitleRU        string // Russian title, used when Title is empty
	Description    string
	Year           int
	IMDBRating     float64
	Status         SeriesStatus
	Watching       bool // account is subscribed to the series
	UnwatchedCount int
	CoverURL       string
}

// DisplayTitle returns the title to show, falling back to the Russian title
func (s *SeriesEntry) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.TitleRU
}

// SeriesIndex maps sid to entry and keeps the listing order.
// BySID holds the first entry seen for a sid; Ordered keeps every entry.
type SeriesIndex struct {
	BySID   map[string]*SeriesEntry
	Ordered []*SeriesEntry
}

// Lookup returns the indexed entry for sid
func (i *SeriesIndex) Lookup(sid string) (*SeriesEntry, bool) {
	if i == nil {
		return nil, false
	}
	e, ok := i.BySID[sid]
	return e, ok
}

// EpisodeVariant is one quality rendition of one episode
type EpisodeVariant struct {
	EID       string // identifies this episode+quality pair
	SID       string
	SeasonID  string
	Quality   string
	Hash      string // per-episode secret used for the integrity hash
	TitleEN   string
	TitleRU   string
	Translate string
	Season    int // 1-based, as numbered by the source
	Episode   int // 1-based, as numbered by the source
	Watched   bool
	Spoiler   string
}

// DisplayTitle returns the episode title, falling back to the Russian title
func (v *EpisodeVariant) DisplayTitle() string {
	if v.TitleEN != "" {
		return v.TitleEN
	}
	return v.TitleRU
}

// EpisodeCode returns the formatted episode code (e.g., "S01E05")
func (v *EpisodeVariant) EpisodeCode() string {
	return fmt.Sprintf("S%02dE%02d", v.Season, v.Episode)
}

// EpisodeSlot holds every quality rendition of one (season, episode) cell
type EpisodeSlot map[string]*EpisodeVariant

// SeasonEntry is one season of a series.
// Episodes is indexed by episode ordinal (episode-1); nil slots are gaps.
type SeasonEntry struct {
	SeasonID string
	Number   int
	Episodes []EpisodeSlot
}

// EpisodeCount returns the number of non-empty episode slots
func (s *SeasonEntry) EpisodeCount() int {
	n := 0
	for _, slot := range s.Episodes {
		if len(slot) > 0 {
			n++
		}
	}
	return n
}

// FindVariant returns the variant with the given eid
func (s *SeasonEntry) FindVariant(eid string) (*EpisodeVariant, bool) {
	for _, slot := range s.Episodes {
		for _, v := range slot {
			if v.EID == eid {
				return v, true
			}
		}
	}
	return nil, false
}

// SeasonTree is the per-series season/episode breakdown.
// Seasons is indexed by season ordinal (season-1); nil entries are gaps.
type SeasonTree struct {
	Seasons []*SeasonEntry
	Raw     []*EpisodeVariant
}

// SeasonByID scans for a season by its opaque id
func (t *SeasonTree) SeasonByID(seasonID string) (*SeasonEntry, bool) {
	for _, s := range t.Seasons {
		if s != nil && s.SeasonID == seasonID {
			return s, true
		}
	}
	return nil, false
}

// Slot returns the cell for 1-based season and episode numbers
func (t *SeasonTree) Slot(season, episode int) (EpisodeSlot, bool) {
	si, ei := season-1, episode-1
	if si < 0 || si >= len(t.Seasons) || t.Seasons[si] == nil {
		return nil, false
	}
	eps := t.Seasons[si].Episodes
	if ei < 0 || ei >= len(eps) || len(eps[ei]) == 0 {
		return nil, false
	}
	return eps[ei], true
}

// Session is an issued authentication token and its expiry
type Session struct {
	Token           string
	ExpiresAtMillis int64
}

// Valid reports whether the session is usable at now
func (s Session) Valid(now time.Time) bool {
	return s.Token != "" && now.UnixMilli() < s.ExpiresAtMillis
}

// AuthResult contains the result of a successful login
type AuthResult struct {
	Token            string
	ExpiresAtSeconds int64
}

// EpisodeRef points at an episode by 1-based season and episode numbers.
// Search results reference episodes this way, without a season id.
type EpisodeRef struct {
	SID     string
	Season  int
	Episode int
	Title   string
	TitleRU string
}

// HitKind discriminates search hits
type HitKind int

const (
	HitSeries HitKind = iota
	HitEpisode
)

// SearchHit is either a series or an episode reference
type SearchHit struct {
	Kind    HitKind
	Series  *SeriesEntry
	Episode EpisodeRef
}

// SearchResults is the raw answer of a catalog search
type SearchResults struct {
	Series   []*SeriesEntry
	Episodes []EpisodeRef
}

// Total returns the number of hits of both kinds
func (r *SearchResults) Total() int {
	return len(r.Series) + len(r.Episodes)
}

// Hits flattens the results, series hits first
func (r *SearchResults) Hits() []SearchHit {
	hits := make([]SearchHit, 0, r.Total())
	for _, s := range r.Series {
		hits = append(hits, SearchHit{Kind: HitSeries, Series: s})
	}
	for _, e := range r.Episodes {
		hits = append(hits, SearchHit{Kind: HitEpisode, Episode: e})
	}
	return hits
}

// PlaybackDescriptor describes a resolved, playable stream
type PlaybackDescriptor struct {
	URL      string
	Title    string
	SID      string
	EID      string
	Quality  string
	Server   string
	Metadata Metadata
}
