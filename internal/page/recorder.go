// Package page provides render sinks that collect a handler's output.
package page

import (
	"sync"

	"github.com/mmcdole/soap4/internal/domain"
)

// Snapshot is the rendered state of a page
type Snapshot struct {
	Meta      domain.Metadata
	Type      domain.ContentType
	Loading   bool
	Total     int
	Items     []domain.Item
	Err       error
	Playback  *domain.PlaybackDescriptor
	Redirects []string // every redirect followed, in order
}

// Recorder implements domain.Page by recording calls.
// A redirect starts a fresh page but keeps the redirect history.
type Recorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetMetadata(meta domain.Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Meta = meta
}

func (r *Recorder) SetType(t domain.ContentType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Type = t
}

func (r *Recorder) SetLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Loading = loading
}

func (r *Recorder) SetTotal(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Total = total
}

func (r *Recorder) AppendItem(item domain.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Items = append(r.snap.Items, item)
}

func (r *Recorder) Redirect(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = Snapshot{Redirects: append(r.snap.Redirects, path)}
}

func (r *Recorder) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Err = err
}

func (r *Recorder) Play(desc *domain.PlaybackDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Playback = desc
}

// Snapshot returns a copy of the recorded state
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.snap
	s.Items = append([]domain.Item(nil), r.snap.Items...)
	s.Redirects = append([]string(nil), r.snap.Redirects...)
	return s
}

// Playable returns the video items, skipping directories and separators
func (s Snapshot) Playable() []domain.Item {
	var items []domain.Item
	for _, item := range s.Items {
		if item.Kind == domain.ItemVideo {
			items = append(items, item)
		}
	}
	return items
}

// LastRedirect returns the most recent redirect target, if any
func (s Snapshot) LastRedirect() (string, bool) {
	if len(s.Redirects) == 0 {
		return "", false
	}
	return s.Redirects[len(s.Redirects)-1], true
}
