package soap4me

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SeriesDTO is one series record from /api/soap/ and search results
type SeriesDTO struct {
	SID         flexString `json:"sid"`
	Title       string     `json:"title"`
	TitleRU     string     `json:"title_ru"`
	Description string     `json:"description"`
	Year        flexInt    `json:"year"`
	IMDBRating  flexFloat  `json:"imdb_rating"`
	Status      flexInt    `json:"status"`
	Watching    flexBool   `json:"watching"`
	Unwatched   flexInt    `json:"unwatched"`
}

// EpisodeDTO is one episode+quality record from /api/episodes/{sid}/
type EpisodeDTO struct {
	EID       flexString `json:"eid"`
	SID       flexString `json:"sid"`
	Season    flexInt    `json:"season"`
	Episode   flexInt    `json:"episode"`
	SeasonID  flexString `json:"season_id"`
	Quality   string     `json:"quality"`
	Hash      string     `json:"hash"`
	TitleEN   string     `json:"title_en"`
	TitleRU   string     `json:"title_ru"`
	Translate string     `json:"translate"`
	Watched   flexBool   `json:"watched"`
	Spoiler   string     `json:"spoiler"`
}

// EpisodeHitDTO is an episode reference in search results
type EpisodeHitDTO struct {
	SID     flexString `json:"sid"`
	Season  flexInt    `json:"season"`
	Episode flexInt    `json:"episode"`
	TitleEN string     `json:"title_en"`
	TitleRU string     `json:"title_ru"`
}

// SearchResponse is the body of /api/search/
type SearchResponse struct {
	Series   []SeriesDTO     `json:"series"`
	Episodes []EpisodeHitDTO `json:"episodes"`
}

// LoginResponse is the body of /login/
type LoginResponse struct {
	OK    flexBool   `json:"ok"`
	Token string     `json:"token"`
	Till  flexInt    `json:"till"`
	SID   flexString `json:"sid,omitempty"`
}

// TicketResponse is the body of a player load callback
type TicketResponse struct {
	OK     flexBool `json:"ok"`
	Server string   `json:"server"`
}

// StatusResponse is the body of watch state callbacks
type StatusResponse struct {
	OK flexBool `json:"ok"`
}

// flexString accepts a JSON string or number
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = flexString(num.String())
	return nil
}

// flexInt accepts a JSON number or a decimal string
type flexInt int64

func (i *flexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = 0
		return nil
	}
	var num int64
	if err := json.Unmarshal(data, &num); err == nil {
		*i = flexInt(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("expected integer, got %s", data)
	}
	str = strings.TrimSpace(str)
	if str == "" {
		*i = 0
		return nil
	}
	parsed, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return fmt.Errorf("expected integer, got %q", str)
	}
	*i = flexInt(parsed)
	return nil
}

// flexFloat accepts a JSON number or a decimal string
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("expected number, got %s", data)
	}
	str = strings.TrimSpace(str)
	if str == "" {
		*f = 0
		return nil
	}
	parsed, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %q", str)
	}
	*f = flexFloat(parsed)
	return nil
}

// flexBool accepts true/false, 0/1, or their string forms
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		return fmt.Errorf("expected boolean, got %s", data)
	}
	return nil
}
