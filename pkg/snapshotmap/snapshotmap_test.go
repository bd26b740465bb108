package snapshotmap

import "testing"

func longText(s string) string {
	// pad past the default min_text_length so Phase 1/3 don't skip it
	for len(s) < 60 {
		s += " filler"
	}
	return s
}

func TestMapPhase1UniqueText(t *testing.T) {
	a := []Leaf{{Key: "42_01", Text: longText("the quick brown fox")}}
	b := []Leaf{{Key: "42_02", Text: longText("the quick brown fox")}}

	mapping := Map(a, b, DefaultOptions(), nil)
	if mapping["42_01"] != "42_02" {
		t.Fatalf("mapping = %v, want 42_01 -> 42_02", mapping)
	}
}

func TestMapPhase1SkipsShortText(t *testing.T) {
	a := []Leaf{{Key: "42_01", Text: "short"}}
	b := []Leaf{{Key: "42_02", Text: "short"}}

	mapping := Map(a, b, DefaultOptions(), nil)
	if len(mapping) != 0 {
		t.Fatalf("mapping = %v, want empty (below min_text_length)", mapping)
	}
}

func TestMapPhase2CitekeyBreaksTextTie(t *testing.T) {
	dup := longText("identical provision text")
	a := []Leaf{
		{Key: "42_01", Citekey: "42_1", Text: dup},
		{Key: "42_02", Citekey: "42_2", Text: dup},
	}
	b := []Leaf{
		{Key: "42_10", Citekey: "42_1", Text: dup},
		{Key: "42_20", Citekey: "42_2", Text: dup},
	}

	mapping := Map(a, b, DefaultOptions(), nil)
	if mapping["42_01"] != "42_10" || mapping["42_02"] != "42_20" {
		t.Fatalf("mapping = %v, want citekey-disambiguated pairing", mapping)
	}
}

func TestMapPhase3Containment(t *testing.T) {
	// B's text is A's text with a leading paragraph-number token and a
	// trailing clause appended; clipping the first token still leaves a
	// containment relation (spec §4.6 Phase 3).
	base := longText("regelung ueber die zustaendigkeit der behoerde")
	a := []Leaf{{Key: "BGB_01", Text: "(1) " + base}}
	b := []Leaf{{Key: "BGB_02", Text: "(1a) " + base + " und weitere ergaenzung"}}

	mapping := Map(a, b, DefaultOptions(), nil)
	if mapping["BGB_01"] != "BGB_02" {
		t.Fatalf("mapping = %v, want containment match BGB_01 -> BGB_02", mapping)
	}
}

func TestMapPhase4NeighborhoodSimilarity(t *testing.T) {
	// Anchor leaf maps via unique text in phase 1; its neighbor has a
	// near-identical but not exact text on both sides, resolved only by
	// phase 4's neighborhood-restricted Jaro-Winkler pass.
	anchorText := longText("anchor provision establishing the committee")
	a := []Leaf{
		{Key: "42_01", Text: anchorText},
		{Key: "42_02", Text: "the committee shall meet annually and report"},
	}
	b := []Leaf{
		{Key: "42_01", Text: anchorText},
		{Key: "42_02", Text: "the committee shall meet annually and reports"},
	}

	mapping := Map(a, b, DefaultOptions(), nil)
	if mapping["42_02"] != "42_02" {
		t.Fatalf("mapping = %v, want neighborhood-similarity match for 42_02", mapping)
	}
}

func TestMapNeverDoubleAssignsATarget(t *testing.T) {
	dup := longText("duplicate text appearing twice on each side")
	a := []Leaf{
		{Key: "42_01", Text: dup},
		{Key: "42_02", Text: dup},
	}
	b := []Leaf{
		{Key: "42_10", Text: dup},
		{Key: "42_20", Text: dup},
	}

	mapping := Map(a, b, DefaultOptions(), nil)
	seen := make(map[string]bool)
	for _, target := range mapping {
		if seen[target] {
			t.Fatalf("target %q assigned twice in mapping %v", target, mapping)
		}
		seen[target] = true
	}
}
