package citeparse

import (
	"reflect"
	"testing"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
)

func TestParseDEMarkerWorkedExample(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode: "42_000001",
		Main:       "§ 6 Absatz 1 Nummer 2 Buchstabe r, s, t und v",
		LawMatch:   hierarchy.LawMatchInternal, // LawID left empty: no Gesetz element attached
	}
	ParseDEMarker(marker, nil)

	want := [][]string{
		{"6", "1", "2", "r"},
		{"6", "1", "2", "s"},
		{"6", "1", "2", "t"},
		{"6", "1", "2", "v"},
	}
	got := marker.ParsedSimple()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parsed = %v, want %v", got, want)
	}
}

func TestParseDEMarkerIVM(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode: "42_000001",
		Main:       "Art. 2 Abs. 1 i.V.m. Art. 1 Abs. 1",
		LawName:    "GG",
		LawMatch:   hierarchy.LawMatchDict,
		LawID:      "GG",
	}
	ParseDEMarker(marker, nil)

	if len(marker.Paths) == 0 {
		t.Fatal("expected at least one parsed path")
	}
	for i, path := range marker.Paths {
		simple := path.Simple()
		if simple[0] != "GG" {
			t.Fatalf("path %d: expected law-id GG prepended, got %v", i, simple)
		}
	}
}

func TestParsedIsProjectionOfParsedVerbose(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode: "42_000001",
		Main:       "§ 6 Absatz 1 Nummer 2 Buchstabe r, s, t und v",
		LawMatch:   hierarchy.LawMatchIgnore,
	}
	ParseDEMarker(marker, nil)

	simple := marker.ParsedSimple() // simple form: just values
	for i, path := range marker.Paths {
		for j, el := range path {
			if el.Value != simple[i][j] {
				t.Fatalf("parsed[%d][%d] = %q, want verbose value %q", i, j, simple[i][j], el.Value)
			}
		}
	}
}

func TestSplitEnumPartsKeepsBisRangeJoined(t *testing.T) {
	parts := SplitEnumParts("6 bis 9, 12")
	want := []string{"6 bis 9", "12"}
	if !reflect.DeepEqual(parts, want) {
		t.Fatalf("SplitEnumParts = %v, want %v", parts, want)
	}
}

func TestNormalizeBareRange(t *testing.T) {
	got := Normalize("§ 3801-3831")
	want := "§ 3801 through 3831"
	if got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeBareRangeDescendingLeftUntouched(t *testing.T) {
	got := Normalize("§ 3831-3801")
	want := "§ 3831-3801"
	if got != want {
		t.Fatalf("Normalize = %q, want %q (non-ascending pair is not a range)", got, want)
	}
}

func TestNormalizeAndFollowing(t *testing.T) {
	got := Normalize("§ 10 and following")
	want := "§ 10 et seq."
	if got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}
