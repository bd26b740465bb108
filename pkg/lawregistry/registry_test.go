package lawregistry

import (
	"testing"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
)

func mustDate(t *testing.T, s string) hierarchy.Date {
	t.Helper()
	d, err := hierarchy.ParseYYYYMMDD(s)
	if err != nil {
		t.Fatalf("ParseYYYYMMDD(%q): %v", s, err)
	}
	return d
}

func TestBuildSelectsByValidityWindow(t *testing.T) {
	aliases := []Alias{
		{Name: "Altes Gesetz", LawID: "ALT", Start: mustDate(t, "19000101"), End: mustDate(t, "19500101")},
		{Name: "Neues Gesetz", LawID: "NEU", Start: mustDate(t, "19500102"), End: mustDate(t, "21000101")},
	}
	reg := Build(aliases, mustDate(t, "20200101"), hierarchy.JurisdictionDE)

	if _, ok := reg.Lookup(Stem("Altes Gesetz")); ok {
		t.Error("expired alias should not be selected")
	}
	if lawID, ok := reg.Lookup(Stem("Neues Gesetz")); !ok || lawID != "NEU" {
		t.Errorf("active alias missing or wrong: ok=%v lawID=%q", ok, lawID)
	}
}

func TestBuildGrundgesetzHardcoded(t *testing.T) {
	reg := Build(nil, mustDate(t, "20200101"), hierarchy.JurisdictionDE)
	lawID, ok := reg.Lookup("grundgesetz")
	if !ok || lawID != "GG" {
		t.Fatalf("grundgesetz entry missing: ok=%v lawID=%q", ok, lawID)
	}
}

func TestBuildBaseYearDisambiguation(t *testing.T) {
	d := mustDate(t, "19800101")
	aliases := []Alias{
		{Name: "Sozialgesetzbuch 1975", LawID: "SGB1975", Start: d, End: d},
		{Name: "Sozialgesetzbuch 1980", LawID: "SGB1975", Start: d, End: d},
	}
	reg := Build(aliases, d, hierarchy.JurisdictionDE)

	lawID, ok := reg.Lookup(Stem("Sozialgesetzbuch"))
	if !ok || lawID != "SGB1975" {
		t.Fatalf("expected disambiguated base key, got ok=%v lawID=%q", ok, lawID)
	}
}

func TestBuildBaseYearConflictLeavesBaseUnset(t *testing.T) {
	d := mustDate(t, "19800101")
	aliases := []Alias{
		{Name: "Sozialgesetzbuch 1975", LawID: "SGB-A", Start: d, End: d},
		{Name: "Sozialgesetzbuch 1980", LawID: "SGB-B", Start: d, End: d},
	}
	reg := Build(aliases, d, hierarchy.JurisdictionDE)

	if _, ok := reg.Lookup(Stem("Sozialgesetzbuch")); ok {
		t.Fatal("conflicting base-year values must not produce a base key")
	}
}

func TestLongestPrefixMatch(t *testing.T) {
	d := mustDate(t, "20200101")
	aliases := []Alias{
		{Name: "Bürgerliches Gesetzbuch", LawID: "BGB", Start: d, End: d},
		{Name: "Bürgerliches Gesetzbuch Einführungsgesetz", LawID: "BGBEG", Start: d, End: d},
	}
	reg := Build(aliases, d, hierarchy.JurisdictionDE)

	key, lawID, ok := reg.LongestPrefixMatch(Stem("Bürgerliches Gesetzbuch Einführungsgesetz nebst Anlagen"))
	if !ok {
		t.Fatal("expected a match")
	}
	if lawID != "BGBEG" {
		t.Errorf("expected the longer key to win, got lawID=%q key=%q", lawID, key)
	}
}
