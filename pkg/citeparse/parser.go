package citeparse

import (
	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// ParseDEMarker turns a German reference marker's matched text into one or
// more citation paths (spec §4.3), storing the result on marker.Paths and
// marker.Parsed. report may be nil.
//
// marker.LawID and marker.LawMatch are expected to already be populated by
// pkg/refarea's classification cascade; this stage only attaches them as
// the path's leading ("Gesetz", law-id) element (spec §4.3 "Law identifier
// attachment" — dict/sgb/internal resolution already happened in §4.2, so
// here it is a lookup of a value, not a re-resolution).
func ParseDEMarker(marker *hierarchy.ReferenceMarker, report *stats.Report) {
	normalized := Normalize(marker.Main)
	parts := SplitEnumParts(normalized)

	var tokenized [][]PathElement
	for _, part := range parts {
		elems, err := TokenizePart(part)
		if err != nil {
			if report != nil {
				report.Add(marker.OriginNode, "unrecognized-token", err.Error())
			}
			if len(elems) > 0 {
				tokenized = append(tokenized, elems)
			}
			break // spec §7: skip remainder of this marker, keep previously-parsed paths
		}
		if len(elems) > 0 {
			tokenized = append(tokenized, elems)
		}
	}

	inferUnits(tokenized)
	tokenized = postSplit(tokenized)

	attachLawID := marker.LawMatch != hierarchy.LawMatchIgnore && marker.LawMatch != hierarchy.LawMatchUnknown && marker.LawID != ""

	marker.Paths = make([]hierarchy.CitationPath, 0, len(tokenized))
	for _, elems := range tokenized {
		path := make(hierarchy.CitationPath, 0, len(elems)+1)
		if attachLawID {
			path = append(path, hierarchy.CitationPathElement{Unit: "Gesetz", Value: marker.LawID})
		}
		for _, e := range elems {
			path = append(path, hierarchy.CitationPathElement{Unit: e.Unit, Value: e.Value})
		}
		marker.Paths = append(marker.Paths, path)
	}
	marker.Parsed = len(marker.Paths) > 0
}

// inferUnits implements spec §4.3 "Unit inference": when a subsequent
// path's first element has no unit, inherit units from the previous path.
func inferUnits(paths [][]PathElement) {
	for i := 1; i < len(paths); i++ {
		if len(paths[i]) == 0 || paths[i][0].Unit != "" {
			continue
		}
		prev := paths[i-1]
		if len(prev) == 0 {
			continue
		}

		if len(paths[i]) == 1 {
			prefix := append([]PathElement{}, prev[:len(prev)-1]...)
			paths[i] = append(prefix, paths[i]...)
			continue
		}

		secondUnit := paths[i][1].Unit
		cut := -1
		for k := 0; k < len(prev)-1; k++ {
			if prev[k+1].Unit == secondUnit {
				cut = k
				break
			}
		}
		if cut < 0 {
			continue
		}
		prefix := append([]PathElement{}, prev[:cut]...)
		paths[i] = append(prefix, paths[i]...)
	}
}

// postSplit implements spec §4.3 "Post-split": a path containing two or
// more occurrences of the marker's dominant top-level unit ("art" if any
// path contains it, else "§") is split so every second occurrence starts
// a new path.
func postSplit(paths [][]PathElement) [][]PathElement {
	dominant := "§"
	for _, path := range paths {
		for _, e := range path {
			if e.Unit == "art" {
				dominant = "art"
			}
		}
	}

	var out [][]PathElement
	for _, path := range paths {
		out = append(out, splitOnDominant(path, dominant)...)
	}
	return out
}

func splitOnDominant(path []PathElement, dominant string) [][]PathElement {
	var occurrences []int
	for i, e := range path {
		if e.Unit == dominant {
			occurrences = append(occurrences, i)
		}
	}
	if len(occurrences) < 2 {
		return [][]PathElement{path}
	}

	var out [][]PathElement
	start := 0
	for occIdx := 1; occIdx < len(occurrences); occIdx++ {
		if (occIdx+1)%2 != 0 {
			continue
		}
		splitAt := occurrences[occIdx]
		out = append(out, path[start:splitAt])
		start = splitAt
	}
	out = append(out, path[start:])
	return out
}
