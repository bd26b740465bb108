package refarea

import (
	"testing"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/lawregistry"
)

func mustDate(t *testing.T, s string) hierarchy.Date {
	t.Helper()
	d, err := hierarchy.ParseYYYYMMDD(s)
	if err != nil {
		t.Fatalf("ParseYYYYMMDD(%q): %v", s, err)
	}
	return d
}

func leafNode(key, text string) *hierarchy.Node {
	return &hierarchy.Node{
		Key:  key,
		Type: hierarchy.NodeTypeSeqitem,
		Text: hierarchy.NewPlainText(text),
	}
}

func TestWrappingPreservesText(t *testing.T) {
	cases := []string{
		"Dies gilt vorbehaltlich § 30 Absatz 2 und 3.",
		"Vergleiche § 5 des Bürgerlichen Gesetzbuchs.",
		"Keine Referenz hier.",
		"30 U.S.C. § 1201 applies.",
		"See Section 101 of this title for definitions.",
	}
	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			node := leafNode("42_000001", text)
			d := New(hierarchy.JurisdictionDE, nil, "LAW", "§", nil)
			if isUS(text) {
				d = New(hierarchy.JurisdictionUS, nil, "", "", nil)
			}
			d.ProcessLeaf(node)
			if got := node.Text.PlainText(); got != text {
				t.Errorf("wrapping changed text:\n  want %q\n  got  %q", text, got)
			}
		})
	}
}

func isUS(s string) bool {
	for _, marker := range []string{"U.S.C.", "Section", "C.F.R."} {
		if contains(s, marker) {
			return true
		}
	}
	return false
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func TestDEInternalCitationUsesDominantUnit(t *testing.T) {
	node := leafNode("42_000001", "Vergleiche § 30 Absatz 2.")
	d := New(hierarchy.JurisdictionDE, nil, "LAW42", "§", nil)
	d.ProcessLeaf(node)

	marker := findMarker(t, node)
	if marker.LawMatch != hierarchy.LawMatchInternal {
		t.Fatalf("expected internal match, got %v", marker.LawMatch)
	}
	if marker.LawID != "LAW42" {
		t.Fatalf("expected document law-id attached, got %q", marker.LawID)
	}
}

func TestDEInternalCitationDemotedToIgnoreOnUnitMismatch(t *testing.T) {
	node := leafNode("42_000001", "Vergleiche Art. 30 Absatz 2.")
	d := New(hierarchy.JurisdictionDE, nil, "LAW42", "§", nil)
	d.ProcessLeaf(node)

	marker := findMarker(t, node)
	if marker.LawMatch != hierarchy.LawMatchIgnore {
		t.Fatalf("expected demotion to ignore, got %v", marker.LawMatch)
	}
}

func TestDEDictClassification(t *testing.T) {
	d0 := mustDate(t, "20200101")
	reg := lawregistry.Build([]lawregistry.Alias{
		{Name: "Bürgerliches Gesetzbuch", LawID: "BGB", Start: d0, End: d0},
	}, d0, hierarchy.JurisdictionDE)

	text := "Vergleiche § 5 des Bürgerlichen Gesetzbuchs."
	node := leafNode("42_000001", text)
	d := New(hierarchy.JurisdictionDE, reg, "LAW42", "§", nil)
	d.ProcessLeaf(node)

	marker := findMarker(t, node)
	if marker.LawMatch != hierarchy.LawMatchDict {
		t.Fatalf("expected dict match, got %v (lawname=%q)", marker.LawMatch, marker.LawName)
	}
	if marker.LawID != "BGB" {
		t.Fatalf("expected BGB, got %q", marker.LawID)
	}
	if marker.Suffix != " des " {
		t.Fatalf("expected lead connector %q to survive into Suffix, got %q", " des ", marker.Suffix)
	}
	if got := node.Text.PlainText(); got != text {
		t.Fatalf("wrapping changed text:\n  want %q\n  got  %q", text, got)
	}
}

func findMarker(t *testing.T, node *hierarchy.Node) *hierarchy.ReferenceMarker {
	t.Helper()
	for _, seg := range node.Text.Segments {
		if m, ok := seg.(*hierarchy.ReferenceMarker); ok {
			return m
		}
	}
	t.Fatalf("no reference marker found in %q", node.Text.PlainText())
	return nil
}
