// Package history keeps the capped, locally persisted list of recently
// created short links. The list is a display cache: click counts stored
// here are a snapshot from creation time, refreshed live at render time
// without rewriting the persisted copy.
package history

import "time"

// MaxEntries caps the persisted list.
const MaxEntries = 10

// Entry is one recently created short link.
type Entry struct {
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	ShortURL    string    `json:"short_url"`
	Clicks      int       `json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
}

// List holds entries newest first.
type List []Entry

// Prepend returns a new list with e first, truncated to MaxEntries.
// The receiver is not modified.
func (l List) Prepend(e Entry) List {
	out := make(List, 0, len(l)+1)
	out = append(out, e)
	out = append(out, l...)

	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}

	return out
}

// Store persists a List. Load returns an empty list, not an error, when
// nothing has been stored yet.
type Store interface {
	Load() (List, error)
	Save(List) error
}
