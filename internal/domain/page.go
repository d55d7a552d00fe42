package domain

import "time"

// ContentType tags how a page should be laid out by the sink
type ContentType string

const (
	ContentDirectory ContentType = "directory"
	ContentVideo     ContentType = "video"
	ContentItems     ContentType = "items"
	ContentGrid      ContentType = "grid"
)

// ItemKind discriminates page entries
type ItemKind string

const (
	ItemDirectory ItemKind = "directory"
	ItemVideo     ItemKind = "video"
	ItemSeparator ItemKind = "separator"
)

// Metadata is the page header
type Metadata struct {
	Title string
	Logo  string
}

// Item is one entry appended to a page.
// Path is the navigation target; separators have none.
type Item struct {
	Path        string
	Kind        ItemKind
	Title       string
	Description string
	Icon        string
	Year        int
	Rating      float64
	Watched     bool
	Quality     string
}

// Page is the render sink a route handler draws into.
// Redirect aborts rendering for the current handler; the dispatcher
// follows the target path once the handler returns.
type Page interface {
	SetMetadata(meta Metadata)
	SetType(t ContentType)
	SetLoading(loading bool)
	SetTotal(total int)
	AppendItem(item Item)
	Redirect(path string)
	Error(err error)
	Play(desc *PlaybackDescriptor)
}

// Credentials is the answer of a credential prompt
type Credentials struct {
	Username string
	Password string
	Rejected bool // the user cancelled the prompt
}

// CredentialPrompt asks the user for a login.
// title is the dialog title; reason is shown when re-prompting.
type CredentialPrompt interface {
	Credentials(title, reason string) Credentials
}

// Notifier shows a transient message to the user
type Notifier interface {
	Notify(message string, timeout time.Duration)
}

// Preferences are the user toggles read at decision points
type Preferences struct {
	PreferredQuality  string
	MarkWatchedOnPlay bool
	ShowUnsubscribed  bool
}

// Settings exposes the current user preferences
type Settings interface {
	Preferences() Preferences
}

// KeyValue is a persistent string store scoped to one plugin id.
// Writes are best-effort.
type KeyValue interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
