package shell

import "strings"

// DefaultHistoryLimit bounds the history when the config does not say.
const DefaultHistoryLimit = 100

// History is a bounded command log with a navigation cursor. The cursor
// ranges over [0, len]; len means "past the newest entry", i.e. the blank
// prompt position.
type History struct {
	entries []string
	limit   int
	cursor  int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Append records a submitted line. Blank lines and exact repeats of the
// newest entry are dropped. The oldest entry is evicted once the limit is
// reached. Append does not move the cursor; call Reset after dispatch.
func (h *History) Append(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
	}
}

// Previous moves the cursor one entry back and returns it. It reports false
// when the history is empty or the cursor is already at the oldest entry.
func (h *History) Previous() (string, bool) {
	if len(h.entries) == 0 || h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next moves the cursor one entry forward. Advancing past the newest entry
// returns the empty string, restoring the blank prompt. It reports false
// when already there.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor], true
}

// Reset parks the cursor back at the blank prompt position.
func (h *History) Reset() {
	h.cursor = len(h.entries)
}

// Entries returns a snapshot, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
