// Package history keeps a bounded, most-recent-first list of completed
// rewrites in a key-value store.
package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one completed rewrite. Entries are values; the store never
// mutates them after creation.
type Entry struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Original  string `json:"original"`
	Humanized string `json:"humanized"`
	Tone      string `json:"tone"`
	Strength  string `json:"strength"`
}

// NewEntry creates an entry with a random ID stamped at now.
func NewEntry(original, humanized, tone, strength string, now time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: now.UnixMilli(),
		Original:  original,
		Humanized: humanized,
		Tone:      tone,
		Strength:  strength,
	}
}

// Time returns the entry timestamp as local time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
