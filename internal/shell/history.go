package shell

import "golang.org/x/term"

// DefaultHistorySize bounds the session history.
const DefaultHistorySize = 100

// History is a bounded, in-memory list of entered lines, oldest first.
// It lives for one session and is never persisted.
type History struct {
	entries []string
	max     int
}

// NewHistory returns a history keeping at most max lines.
// A non-positive max uses DefaultHistorySize.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{max: max}
}

// Add appends line, dropping the oldest entry when full.
func (h *History) Add(line string) {
	if len(h.entries) == h.max {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.max-1]
	}
	h.entries = append(h.entries, line)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// recall exposes h to term.Terminal for arrow-key navigation. Add is a
// no-op: the terminal records every line, including blank lines and exit
// words, while the session decides itself what belongs in history.
type recall struct {
	h *History
}

// Compile-time interface compliance check.
var _ term.History = recall{}

func (recall) Add(string) {}

func (r recall) Len() int { return r.h.Len() }

// At returns the idx-th most recent entry.
func (r recall) At(idx int) string {
	return r.h.entries[len(r.h.entries)-1-idx]
}
