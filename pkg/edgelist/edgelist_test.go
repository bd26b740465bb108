package edgelist

import (
	"bytes"
	"testing"

	"github.com/coolbeans/legigraph/pkg/citekey"
	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/stats"
)

func leafWithMarker(key string, marker *hierarchy.ReferenceMarker) *hierarchy.Node {
	return &hierarchy.Node{
		Key:  key,
		Type: hierarchy.NodeTypeSeqitem,
		Text: &hierarchy.MixedContent{Segments: []hierarchy.Segment{marker}},
	}
}

// buildLookup indexes a single (citekey, node-id) pair via pkg/citekey's
// own Build, so this package's tests never need a citekey-internals
// backdoor.
func buildLookup(t *testing.T, ck, nodeID string) *citekey.Lookup {
	t.Helper()
	doc := &hierarchy.Document{
		ID:   "lookup-fixture",
		Root: &hierarchy.Node{Key: nodeID, Citekey: ck, Type: hierarchy.NodeTypeSeqitem},
	}
	return citekey.Build([]*hierarchy.Document{doc}, nil)
}

func TestBuildSimpleTwoElementPath(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode: "42_000005",
		LawMatch:   hierarchy.LawMatchDict,
		Parsed:     true,
		Paths: []hierarchy.CitationPath{
			{{Unit: "Gesetz", Value: "42"}, {Unit: "", Value: "1983"}},
		},
	}
	doc := &hierarchy.Document{ID: "42", Root: leafWithMarker("42_000005", marker)}

	lookup := buildLookup(t, "42_1983", "42_000010")

	edges := Build([]*hierarchy.Document{doc}, lookup, false, nil)
	if len(edges) != 1 {
		t.Fatalf("len(edges) = %d, want 1", len(edges))
	}
	if edges[0] != (Edge{Source: "42_000005", Target: "42_000010", Type: EdgeTypeReference}) {
		t.Fatalf("edge = %+v", edges[0])
	}
}

func TestBuildDetailedModeWalksDeeperPaths(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode: "BGB_000007",
		LawMatch:   hierarchy.LawMatchInternal,
		Parsed:     true,
		Paths: []hierarchy.CitationPath{
			{{Unit: "Gesetz", Value: "BGB"}, {Unit: "", Value: "433"}, {Unit: "abs", Value: "1"}},
		},
	}
	doc := &hierarchy.Document{ID: "BGB", Root: leafWithMarker("BGB_000007", marker)}

	lookup := buildLookup(t, "BGB_433", "BGB_000020") // only the shallower key exists

	edges := Build([]*hierarchy.Document{doc}, lookup, true, nil)
	if len(edges) != 1 || edges[0].Target != "BGB_000020" {
		t.Fatalf("edges = %+v, want a single edge to BGB_000020", edges)
	}
}

func TestBuildIgnoresNonEligibleMatchType(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode: "BGB_000008",
		LawMatch:   hierarchy.LawMatchIgnore,
		Parsed:     true,
		Paths: []hierarchy.CitationPath{
			{{Unit: "Gesetz", Value: "BGB"}, {Unit: "", Value: "433"}},
		},
	}
	doc := &hierarchy.Document{ID: "BGB", Root: leafWithMarker("BGB_000008", marker)}
	lookup := buildLookup(t, "BGB_433", "BGB_000020")

	edges := Build([]*hierarchy.Document{doc}, lookup, false, nil)
	if len(edges) != 0 {
		t.Fatalf("len(edges) = %d, want 0 for ignore-type marker", len(edges))
	}
}

func TestBuildRecordsMissingKeyOnReport(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode: "42_000009",
		LawMatch:   hierarchy.LawMatchDict,
		Parsed:     true,
		Paths: []hierarchy.CitationPath{
			{{Unit: "Gesetz", Value: "42"}, {Unit: "", Value: "9999"}},
		},
	}
	doc := &hierarchy.Document{ID: "42", Root: leafWithMarker("42_000009", marker)}
	report := stats.NewReport()

	edges := Build([]*hierarchy.Document{doc}, citekey.NewLookup(), false, report)
	if len(edges) != 0 {
		t.Fatalf("len(edges) = %d, want 0", len(edges))
	}
	if report.Len() != 1 {
		t.Fatalf("report.Len() = %d, want 1", report.Len())
	}
}

func TestWriteReadCSVRoundTrip(t *testing.T) {
	edges := []Edge{{Source: "a", Target: "b", Type: EdgeTypeReference}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, edges); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != 1 || got[0] != edges[0] {
		t.Fatalf("got %+v, want %+v", got, edges)
	}
}
