package lawregistry

import (
	"strings"
	"testing"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
)

func mustISO(t *testing.T, s string) hierarchy.Date {
	t.Helper()
	d, err := hierarchy.ParseISO(s)
	if err != nil {
		t.Fatalf("ParseISO(%q): %v", s, err)
	}
	return d
}

func doc(id, heading, abbr1 string) *hierarchy.Document {
	return &hierarchy.Document{ID: id, Heading: heading, Abbr1: abbr1}
}

func TestCollectAliasesMergesContiguousRun(t *testing.T) {
	snaps := []SnapshotDocuments{
		{Date: mustISO(t, "1990-01-01"), Documents: []*hierarchy.Document{doc("bgb", "Bürgerliches Gesetzbuch", "BGB")}},
		{Date: mustISO(t, "1995-01-01"), Documents: []*hierarchy.Document{doc("bgb", "Bürgerliches Gesetzbuch", "BGB")}},
		{Date: mustISO(t, "2000-01-01"), Documents: []*hierarchy.Document{doc("bgb", "Bürgerliches Gesetzbuch", "BGB")}},
	}

	aliases := CollectAliases(snaps)

	var heading *Alias
	for i := range aliases {
		if aliases[i].Name == "Bürgerliches Gesetzbuch" {
			heading = &aliases[i]
		}
	}
	if heading == nil {
		t.Fatalf("no alias found for heading, got %+v", aliases)
	}
	if heading.Start != mustISO(t, "1990-01-01") || heading.End != mustISO(t, "2000-01-01") {
		t.Fatalf("heading window = [%s, %s], want [1990-01-01, 2000-01-01]", heading.Start, heading.End)
	}
}

func TestCollectAliasesSplitsOnGap(t *testing.T) {
	snaps := []SnapshotDocuments{
		{Date: mustISO(t, "1990-01-01"), Documents: []*hierarchy.Document{doc("bgb", "Altes Gesetzbuch", "BGB")}},
		{Date: mustISO(t, "2000-01-01"), Documents: []*hierarchy.Document{doc("bgb", "Neues Gesetzbuch", "BGB")}},
	}

	aliases := CollectAliases(snaps)

	var old, new_ *Alias
	for i := range aliases {
		switch aliases[i].Name {
		case "Altes Gesetzbuch":
			old = &aliases[i]
		case "Neues Gesetzbuch":
			new_ = &aliases[i]
		}
	}
	if old == nil || new_ == nil {
		t.Fatalf("expected both headings present, got %+v", aliases)
	}
	if old.Start != mustISO(t, "1990-01-01") || old.End != mustISO(t, "1990-01-01") {
		t.Fatalf("old window = [%s, %s]", old.Start, old.End)
	}
	if new_.Start != mustISO(t, "2000-01-01") || new_.End != mustISO(t, "2000-01-01") {
		t.Fatalf("new window = [%s, %s]", new_.Start, new_.End)
	}
}

func TestAliasCSVRoundTrip(t *testing.T) {
	aliases := []Alias{
		{Name: "Bürgerliches Gesetzbuch", LawID: "bgb", Start: mustISO(t, "1990-01-01"), End: mustISO(t, "2000-01-01")},
		{Name: "BGB", LawID: "bgb", Start: mustISO(t, "1990-01-01"), End: mustISO(t, "2000-01-01")},
	}

	var buf strings.Builder
	if err := WriteAliasCSV(&buf, aliases); err != nil {
		t.Fatalf("WriteAliasCSV: %v", err)
	}

	got, err := ReadAliasCSV(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadAliasCSV: %v", err)
	}
	if len(got) != len(aliases) {
		t.Fatalf("got %d aliases, want %d", len(got), len(aliases))
	}
	for i := range aliases {
		if got[i] != aliases[i] {
			t.Fatalf("alias[%d] = %+v, want %+v", i, got[i], aliases[i])
		}
	}
}
