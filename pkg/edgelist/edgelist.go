// Package edgelist materializes reference edges from parsed citation paths
// against a citekey lookup table (spec §4.5).
package edgelist

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/coolbeans/legigraph/pkg/citekey"
	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// EdgeType enumerates the edge kinds of spec §3's data model. Only
// EdgeTypeReference is produced by this package; containment/authority/
// sequence edges belong to the (out-of-scope) tree builder.
type EdgeType string

const (
	EdgeTypeContainment EdgeType = "containment"
	EdgeTypeReference   EdgeType = "reference"
	EdgeTypeAuthority   EdgeType = "authority"
	EdgeTypeSequence    EdgeType = "sequence"
)

// Edge is one materialized (source, target) pair (spec §3 "Edge").
type Edge struct {
	Source string
	Target string
	Type   EdgeType
}

// eligibleMatch reports whether a marker's law-match-type is one of the
// three spec §4.5 names as eligible for edge emission.
func eligibleMatch(m hierarchy.LawMatchType) bool {
	return m == hierarchy.LawMatchDict || m == hierarchy.LawMatchSGB || m == hierarchy.LawMatchInternal
}

// candidateKeys forms the lookup keys to try for one citation path, in
// priority order (spec §4.5 step 1). detailed enables the deeper-path-
// suffix walk for paths with more than two elements.
func candidateKeys(path []string, detailed bool) []string {
	if len(path) < 2 {
		return nil
	}
	lawID := path[0]

	top := lawID + "_" + path[1]
	if len(path) == 2 || !detailed {
		return []string{top}
	}

	// Detailed mode: for path length k>2, try [law-id, v1..vj] for j from
	// k down to 2, taking the first lookup hit (spec §4.5 step 1,
	// "Detailed" mode).
	keys := make([]string, 0, len(path)-1)
	for j := len(path) - 1; j >= 1; j-- {
		keys = append(keys, lawID+"_"+strings.Join(path[1:j+1], "_"))
	}
	return keys
}

// Build walks every leaf of every document in docs, forming reference
// edges from each leaf's parsed, eligible reference markers against
// lookup (spec §4.5). Missing keys are counted on report, not fatal
// ("Missing keys are counted but not fatal").
func Build(docs []*hierarchy.Document, lookup *citekey.Lookup, detailed bool, report *stats.Report) []Edge {
	var edges []Edge
	for _, doc := range docs {
		if doc.Root == nil {
			continue
		}
		for _, leaf := range doc.Root.Leaves() {
			if leaf.Text == nil {
				continue
			}
			for _, seg := range leaf.Text.Segments {
				marker, ok := seg.(*hierarchy.ReferenceMarker)
				if !ok || !marker.Parsed || !eligibleMatch(marker.LawMatch) {
					continue
				}
				for _, path := range marker.ParsedSimple() {
					target, found := resolveTarget(path, lookup, detailed)
					if !found {
						if report != nil {
							report.Add(marker.OriginNode, "missing-edge-target", strings.Join(path, "_"))
						}
						continue
					}
					edges = append(edges, Edge{Source: marker.OriginNode, Target: target, Type: EdgeTypeReference})
				}
			}
		}
	}
	return edges
}

func resolveTarget(path []string, lookup *citekey.Lookup, detailed bool) (string, bool) {
	for _, key := range candidateKeys(path, detailed) {
		if id, ok := lookup.Get(key); ok {
			return id, true
		}
	}
	return "", false
}

// WriteCSV emits edges as "out_node,in_node" rows (spec §6 "Edge list CSV
// — columns out_node,in_node, one row per reference edge"). Type is not
// part of the wire contract: this package only ever produces
// EdgeTypeReference edges (see candidateKeys/Build), so the column is
// reconstructed as a constant on read rather than round-tripped.
func WriteCSV(w io.Writer, edges []Edge) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"out_node", "in_node"}); err != nil {
		return err
	}
	for _, e := range edges {
		if err := cw.Write([]string{e.Source, e.Target}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads an edge list previously written by WriteCSV. Every row is
// reconstructed as an EdgeTypeReference edge, matching WriteCSV's
// encoding.
func ReadCSV(r io.Reader) ([]Edge, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows[0]) != 2 || rows[0][0] != "out_node" || rows[0][1] != "in_node" {
		return nil, fmt.Errorf("edgelist: unexpected header %v", rows[0])
	}
	edges := make([]Edge, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != 2 {
			return nil, fmt.Errorf("edgelist: malformed row %v", row)
		}
		edges = append(edges, Edge{Source: row[0], Target: row[1], Type: EdgeTypeReference})
	}
	return edges, nil
}
