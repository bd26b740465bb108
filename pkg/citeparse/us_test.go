package citeparse

import (
	"reflect"
	"testing"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
)

func TestParseUSMarkerBlockSingleSection(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode:   "31_000001",
		Raw:          "31 U.S.C. § 1201",
		Jurisdiction: hierarchy.JurisdictionUS,
	}
	ParseUSMarker(marker, "", nil)

	want := [][]string{{"31", "1201"}}
	if got := marker.ParsedSimple(); !reflect.DeepEqual(got, want) {
		t.Fatalf("parsed = %v, want %v", got, want)
	}
}

func TestParseUSMarkerBlockRangeSplitsIntoTwoPaths(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode:   "31_000001",
		Raw:          "31 U.S.C. 3801-U.S.C. 3831",
		Jurisdiction: hierarchy.JurisdictionUS,
	}
	ParseUSMarker(marker, "", nil)

	want := [][]string{{"31", "3801"}, {"31", "3831"}}
	if got := marker.ParsedSimple(); !reflect.DeepEqual(got, want) {
		t.Fatalf("parsed = %v, want %v", got, want)
	}
	if !marker.Parsed {
		t.Fatal("expected Parsed to be true")
	}
}

func TestParseUSMarkerInlineUsesDocumentTitle(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode:   "42_000001",
		Raw:          "Section 101 of this title",
		Jurisdiction: hierarchy.JurisdictionUS,
	}
	ParseUSMarker(marker, "42", nil)

	want := [][]string{{"42", "101"}}
	if got := marker.ParsedSimple(); !reflect.DeepEqual(got, want) {
		t.Fatalf("parsed = %v, want %v", got, want)
	}
}

func TestParseUSMarkerCFRRegulationTitleElement(t *testing.T) {
	marker := &hierarchy.ReferenceMarker{
		OriginNode:   "40_000001",
		Raw:          "40 C.F.R. § 52.21",
		Jurisdiction: hierarchy.JurisdictionUS,
	}
	ParseUSMarker(marker, "", nil)

	if len(marker.Paths) != 1 || marker.Paths[0][0].Value != "cfr40" {
		t.Fatalf("expected cfr-prefixed title element, got %v", marker.Paths)
	}
}
