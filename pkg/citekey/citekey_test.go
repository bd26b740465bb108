package citekey

import (
	"bytes"
	"testing"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/stats"
)

func node(key, citekey string, children ...*hierarchy.Node) *hierarchy.Node {
	n := &hierarchy.Node{Key: key, Citekey: citekey, Type: hierarchy.NodeTypeSeqitem}
	n.Children = children
	for _, c := range children {
		c.Parent = n
	}
	return n
}

func TestBuildFirstWins(t *testing.T) {
	doc := &hierarchy.Document{
		ID: "42",
		Root: node("42_000000", "",
			node("42_000001", "42_1983"),
			node("42_000002", "42_1983"), // duplicate, should lose
			node("42_000003", "42_1985"),
		),
	}

	report := stats.NewReport()
	lookup := Build([]*hierarchy.Document{doc}, report)

	if lookup.Len() != 2 {
		t.Fatalf("len = %d, want 2", lookup.Len())
	}
	if id, ok := lookup.Get("42_1983"); !ok || id != "42_000001" {
		t.Fatalf("42_1983 -> %q, %v; want 42_000001, true (first wins)", id, ok)
	}
	if id, ok := lookup.Get("42_1985"); !ok || id != "42_000003" {
		t.Fatalf("42_1985 -> %q, %v; want 42_000003, true", id, ok)
	}
	if report.Len() != 1 {
		t.Fatalf("report.Len() = %d, want 1 duplicate recorded", report.Len())
	}
}

func TestWriteReadCSVRoundTrip(t *testing.T) {
	doc := &hierarchy.Document{
		ID: "BGB",
		Root: node("BGB_000000", "",
			node("BGB_000001", "bgb_823"),
			node("BGB_000002", "bgb_826"),
		),
	}
	lookup := Build([]*hierarchy.Document{doc}, nil)

	var buf bytes.Buffer
	if err := lookup.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	reloaded, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if reloaded.Len() != lookup.Len() {
		t.Fatalf("reloaded.Len() = %d, want %d", reloaded.Len(), lookup.Len())
	}
	if id, ok := reloaded.Get("bgb_823"); !ok || id != "BGB_000001" {
		t.Fatalf("bgb_823 -> %q, %v; want BGB_000001, true", id, ok)
	}
}

func TestBuildSkipsNodesWithoutCitekey(t *testing.T) {
	doc := &hierarchy.Document{
		ID:   "42",
		Root: node("42_000000", "", node("42_000001", "")),
	}
	lookup := Build([]*hierarchy.Document{doc}, nil)
	if lookup.Len() != 0 {
		t.Fatalf("len = %d, want 0", lookup.Len())
	}
}
