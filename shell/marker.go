package shell

import "regexp"

// Marker tokens are bracketed uppercase identifiers the training layer
// plants in file contents and command output, e.g. [CRON-BEACON-0500].
var markerRe = regexp.MustCompile(`\[([A-Z][A-Z0-9_-]{2,})\]`)

// markerScanner reports each distinct token at most once per session.
type markerScanner struct {
	notify func(token string)
	seen   map[string]bool
}

func newMarkerScanner(notify func(string)) *markerScanner {
	return &markerScanner{notify: notify, seen: make(map[string]bool)}
}

func (m *markerScanner) scan(text string) {
	if m.notify == nil {
		return
	}
	for _, match := range markerRe.FindAllStringSubmatch(text, -1) {
		token := match[1]
		if m.seen[token] {
			continue
		}
		m.seen[token] = true
		m.notify(token)
	}
}
