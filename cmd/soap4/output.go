package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/page"
)

// pageJSON is the --json form of a rendered page
type pageJSON struct {
	Title     string                     `json:"title,omitempty"`
	Type      domain.ContentType         `json:"type,omitempty"`
	Total     int                        `json:"total,omitempty"`
	Items     []domain.Item              `json:"items"`
	Playback  *domain.PlaybackDescriptor `json:"playback,omitempty"`
	Redirects []string                   `json:"redirects,omitempty"`
	Error     string                     `json:"error,omitempty"`
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toPageJSON(s page.Snapshot) pageJSON {
	out := pageJSON{
		Title:     s.Meta.Title,
		Type:      s.Type,
		Total:     s.Total,
		Items:     s.Items,
		Playback:  s.Playback,
		Redirects: s.Redirects,
	}
	if out.Items == nil {
		out.Items = []domain.Item{}
	}
	if s.Err != nil {
		out.Error = domain.UserMessage(s.Err)
	}
	return out
}

// navigate renders path and follows its redirects
func (a *app) navigate(ctx context.Context, path string) (page.Snapshot, error) {
	rec := page.NewRecorder()
	err := a.dispatcher.Navigate(ctx, path, rec)
	return rec.Snapshot(), err
}

// printPage writes a snapshot in the selected output format
func printPage(s page.Snapshot) error {
	if jsonOutput {
		return printJSON(os.Stdout, toPageJSON(s))
	}
	return page.Fprint(os.Stdout, s)
}
