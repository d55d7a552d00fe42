// Package route names the navigation destinations and maps paths to them.
//
// Paths are colon separated and start with the plugin id, for example
// "soap4me:series:42:season:7:episode:1".
package route

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Kind identifies a route
type Kind int

const (
	None Kind = iota
	Start
	Search
	Series
	Season
	Episode
	Login
	Logout
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case Search:
		return "search"
	case Series:
		return "series"
	case Season:
		return "season"
	case Episode:
		return "episode"
	case Login:
		return "login"
	case Logout:
		return "logout"
	default:
		return "none"
	}
}

// Params holds the values captured from a path
type Params struct {
	Query    string
	SID      string
	SeasonID string
	EID      string
}

type pattern struct {
	kind Kind
	re   *regexp.Regexp
}

// Table matches paths under one plugin prefix
type Table struct {
	prefix   string
	patterns []pattern
}

// NewTable builds the route table for prefix
func NewTable(prefix string) *Table {
	p := regexp.QuoteMeta(prefix)
	compile := func(kind Kind, rest string) pattern {
		return pattern{kind: kind, re: regexp.MustCompile("^" + p + rest + "$")}
	}
	return &Table{
		prefix: prefix,
		patterns: []pattern{
			compile(Start, ":start"),
			compile(Search, ":search:(.+)"),
			compile(Series, `:series:(\d+)`),
			compile(Season, `:series:(\d+):season:(\d+)`),
			compile(Episode, `:series:(\d+):season:(\d+):episode:(\d+)`),
			compile(Login, ":login"),
			compile(Logout, ":logout"),
		},
	}
}

// Prefix returns the plugin id the table matches under
func (t *Table) Prefix() string {
	return t.prefix
}

// Match returns the first route matching path
func (t *Table) Match(path string) (Kind, Params, bool) {
	for _, p := range t.patterns {
		m := p.re.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		var params Params
		switch p.kind {
		case Search:
			q, err := url.QueryUnescape(m[1])
			if err != nil {
				q = m[1]
			}
			params.Query = q
		case Series:
			params.SID = m[1]
		case Season:
			params.SID, params.SeasonID = m[1], m[2]
		case Episode:
			params.SID, params.SeasonID, params.EID = m[1], m[2], m[3]
		}
		return p.kind, params, true
	}
	return None, Params{}, false
}

func (t *Table) join(args ...string) string {
	return t.prefix + ":" + strings.Join(args, ":")
}

func (t *Table) Start() string  { return t.join("start") }
func (t *Table) Login() string  { return t.join("login") }
func (t *Table) Logout() string { return t.join("logout") }

// Search escapes the query so it can carry colons
func (t *Table) Search(query string) string {
	return t.join("search", url.QueryEscape(query))
}

func (t *Table) Series(sid string) string {
	return t.join("series", sid)
}

func (t *Table) Season(sid, seasonID string) string {
	return t.join("series", sid, "season", seasonID)
}

func (t *Table) Episode(sid, seasonID, eid string) string {
	return t.join("series", sid, "season", seasonID, "episode", eid)
}

// Describe renders a path for log lines
func (t *Table) Describe(path string) string {
	kind, params, ok := t.Match(path)
	if !ok {
		return fmt.Sprintf("unknown(%s)", path)
	}
	return fmt.Sprintf("%s%+v", kind, params)
}
