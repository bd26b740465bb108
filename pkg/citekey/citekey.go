// Package citekey builds the per-snapshot citekey-to-node-id lookup table
// (spec §4.4) and reads/writes its CSV output contract (spec §6).
package citekey

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// Lookup is a citekey → node-id map with deterministic first-wins
// resolution (spec §4.4, SPEC_FULL "First-wins citekey ambiguity").
type Lookup struct {
	order   []string
	nodeIDs map[string]string
}

// NewLookup returns an empty Lookup.
func NewLookup() *Lookup {
	return &Lookup{nodeIDs: make(map[string]string)}
}

// Len reports the number of distinct citekeys held.
func (l *Lookup) Len() int {
	return len(l.order)
}

// Get returns the node-id mapped to citekey, if any.
func (l *Lookup) Get(citekey string) (string, bool) {
	id, ok := l.nodeIDs[citekey]
	return id, ok
}

// Build walks every document's tree rooted at docs in document order and
// indexes every node carrying a non-empty citekey (spec §4.4). A citekey
// seen more than once keeps its first node-id; every later collision is
// recorded on report rather than silently dropped, so reproducibility
// holds without resolving the ambiguity (SPEC_FULL "OPEN QUESTIONS
// DECIDED").
func Build(docs []*hierarchy.Document, report *stats.Report) *Lookup {
	l := NewLookup()
	for _, doc := range docs {
		if doc.Root == nil {
			continue
		}
		doc.Root.Walk(func(n *hierarchy.Node) {
			if !n.HasCitekey() {
				return
			}
			if _, exists := l.nodeIDs[n.Citekey]; exists {
				if report != nil {
					report.Add(n.Key, "duplicate-citekey", n.Citekey)
				}
				return
			}
			l.nodeIDs[n.Citekey] = n.Key
			l.order = append(l.order, n.Citekey)
		})
	}
	return l
}

// WriteCSV emits the lookup as "key,citekey" rows in insertion order
// (spec §6 "Citekey lookup CSV — columns key,citekey, one row per
// citekeyed node").
func (l *Lookup) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "citekey"}); err != nil {
		return err
	}
	for _, ck := range l.order {
		if err := cw.Write([]string{l.nodeIDs[ck], ck}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads a lookup table previously written by WriteCSV, preserving
// row order as insertion order.
func ReadCSV(r io.Reader) (*Lookup, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NewLookup(), nil
	}
	if len(rows[0]) != 2 || rows[0][0] != "key" || rows[0][1] != "citekey" {
		return nil, fmt.Errorf("citekey: unexpected header %v", rows[0])
	}

	l := NewLookup()
	for _, row := range rows[1:] {
		if len(row) != 2 {
			return nil, fmt.Errorf("citekey: malformed row %v", row)
		}
		id, ck := row[0], row[1]
		if _, exists := l.nodeIDs[ck]; exists {
			continue
		}
		l.nodeIDs[ck] = id
		l.order = append(l.order, ck)
	}
	return l, nil
}
