// Package transcript holds the ordered conversation log shown to the learner.
//
// The log is append-only except for two in-place updates: replacing a
// placeholder with its final entry, and appending streamed text to the one
// entry a stream has claimed. IDs are monotonic for the life of a Log and
// are never reused, even across Reset.
package transcript

import (
	"errors"
	"sync"
)

// Role identifies who authored an entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Image is an illustration attached to an entry.
type Image struct {
	MIMEType string
	Data     []byte
}

// Entry is one line of the conversation.
type Entry struct {
	ID      int64
	Role    Role
	Content string

	// SubTopic tags entries that belong to a sub-topic of the plan.
	SubTopic string

	Images []Image

	// Pending marks a placeholder awaiting its final content.
	Pending bool

	// TopicExplanation marks the explanation produced by selecting a sub-topic.
	TopicExplanation bool
}

var (
	ErrNotFound     = errors.New("transcript entry not found")
	ErrNotClaimed   = errors.New("transcript entry not claimed by a stream")
	ErrAlreadyClaim = errors.New("transcript entry already claimed")
)

// Log is the in-memory transcript. It is safe for concurrent use.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	lastID  int64
	claimed map[int64]bool
}

// New returns an empty Log.
func New() *Log {
	return &Log{claimed: make(map[int64]bool)}
}

// Append adds e to the end of the log, assigns it a fresh ID and returns it.
// Any ID set on e is ignored.
func (l *Log) Append(e Entry) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastID++
	e.ID = l.lastID
	e.Images = cloneImages(e.Images)
	l.entries = append(l.entries, e)
	return e.ID
}

// Replace swaps the entry with the given ID for e, keeping its position and ID.
func (l *Log) Replace(id int64, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return ErrNotFound
	}
	e.ID = id
	e.Images = cloneImages(e.Images)
	l.entries[i] = e
	return nil
}

// Claim reserves the entry as the target of a stream. Only one stream may
// write to an entry at a time.
func (l *Log) Claim(id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.index(id) < 0 {
		return ErrNotFound
	}
	if l.claimed[id] {
		return ErrAlreadyClaim
	}
	l.claimed[id] = true
	return nil
}

// Release ends the stream's claim on the entry. Releasing an unclaimed or
// missing entry is a no-op.
func (l *Log) Release(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.claimed, id)
}

// AppendContent appends a streamed delta to a claimed entry.
// Deltas for entries that are no longer claimed return ErrNotClaimed.
func (l *Log) AppendContent(id int64, delta string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.claimed[id] {
		return ErrNotClaimed
	}
	i := l.index(id)
	if i < 0 {
		return ErrNotFound
	}
	l.entries[i].Content += delta
	return nil
}

// Entries returns a copy of the log in order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		e.Images = cloneImages(e.Images)
		out[i] = e
	}
	return out
}

// Entry returns a copy of the entry with the given ID.
func (l *Log) Entry(id int64) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.index(id)
	if i < 0 {
		return Entry{}, false
	}
	e := l.entries[i]
	e.Images = cloneImages(e.Images)
	return e, true
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// LastAssistantContent returns the content of the most recent non-pending
// assistant entry with content, or "" if there is none.
func (l *Log) LastAssistantContent() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.Role == RoleAssistant && !e.Pending && e.Content != "" {
			return e.Content
		}
	}
	return ""
}

// ExportCandidates returns the non-pending assistant entries with content.
func (l *Log) ExportCandidates() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if e.Role == RoleAssistant && !e.Pending && e.Content != "" {
			e.Images = cloneImages(e.Images)
			out = append(out, e)
		}
	}
	return out
}

// Reset empties the log and drops all claims. IDs keep increasing.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.claimed = make(map[int64]bool)
}

// index returns the position of id, or -1. Callers hold l.mu.
func (l *Log) index(id int64) int {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneImages(imgs []Image) []Image {
	if imgs == nil {
		return nil
	}
	out := make([]Image, len(imgs))
	copy(out, imgs)
	return out
}
