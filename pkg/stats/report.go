// Package stats aggregates the per-item recoverable-failure log every
// pipeline stage produces (spec §7), keyed by the input item that produced
// each entry. The stage commands create one Report per work item and write
// it to a report.log in that item's output directory; reports of
// different items are not merged into one stage-wide file.
package stats

import (
	"fmt"
	"sort"
	"sync"
)

// Entry is one recoverable-failure record (spec §7 table): an unrecognized
// token, an unknown law suffix, a missing lookup target, or a duplicate
// citekey.
type Entry struct {
	Item    string // the input item (file, citekey, node-id) this entry concerns
	Kind    string // e.g. "unrecognized-token", "unknown-law-suffix", "missing-edge-target", "duplicate-citekey"
	Context string
}

func (e Entry) String() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %s", e.Item, e.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Item, e.Kind, e.Context)
}

// Report aggregates Entries (spec §5 "execute(item) is pure with respect
// to the shared read-only registries"). All methods are guarded by a
// mutex, so one Report may be shared by concurrent workers.
type Report struct {
	mu      sync.Mutex
	entries []Entry
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add records one entry. Safe for concurrent use.
func (r *Report) Add(item, kind, context string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Item: item, Kind: kind, Context: context})
}

// Len reports how many entries have been recorded.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Lines renders every entry as a sorted (case-insensitive) line, matching
// the source pipeline's own log format ("\n".join(sorted(logs,
// key=lambda x: x.lower()))).
func (r *Report) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, len(r.entries))
	for i, e := range r.entries {
		lines[i] = e.String()
	}
	sort.Slice(lines, func(i, j int) bool {
		return lowerLess(lines[i], lines[j])
	})
	return lines
}

func lowerLess(a, b string) bool {
	la, lb := []rune(a), []rune(b)
	for i := 0; i < len(la) && i < len(lb); i++ {
		ra, rb := toLower(la[i]), toLower(lb[i])
		if ra != rb {
			return ra < rb
		}
	}
	return len(la) < len(lb)
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
