// Package snapshotmap maps leaf nodes of one snapshot to leaf nodes of the
// next, via the four-phase matching engine of spec §4.6.
package snapshotmap

import (
	"container/list"
	"fmt"
	"sort"
	"strings"

	"github.com/coolbeans/legigraph/pkg/stats"
)

// Leaf is one hierarchy leaf as seen by the mapping engine: its node key,
// optional citekey, and normalized lower-case whitespace-collapsed text
// (spec §4.6 "Input").
type Leaf struct {
	Key     string
	Citekey string
	Text    string
}

// Options holds the three §4.6 Phase 3/4 tunables; the snapshot-pair
// interval is kept separately in internal/config.
type Options struct {
	MinTextLength     int
	Radius            int
	DistanceThreshold float64
}

// DefaultOptions returns spec §4.6's documented defaults.
func DefaultOptions() Options {
	return Options{MinTextLength: 50, Radius: 5, DistanceThreshold: 0.9}
}

// Map produces a partial injective function leaves(a) ⇀ leaves(b) (spec
// §4.6 "Output"), running all four phases in order. report may be nil;
// low coverage is not an error (spec §4.6 "Failure").
func Map(a, b []Leaf, opts Options, report *stats.Report) map[string]string {
	mapping := make(map[string]string)
	remainingA, remainingB := toKeySet(a), toKeySet(b)

	mapUniqueTexts(a, b, remainingA, remainingB, mapping, opts.MinTextLength)
	mapSameCitekeySameText(a, b, remainingA, remainingB, mapping)
	mapTextContainment(a, b, remainingA, remainingB, mapping, opts.MinTextLength)
	mapSimilarTextCommonNeighbors(a, b, remainingA, remainingB, mapping, opts)

	if report != nil {
		report.Add("snapshot-pair", "mapping-coverage", coverageNote(len(mapping), len(a), len(b)))
	}
	return mapping
}

func coverageNote(mapped, lenA, lenB int) string {
	denom := lenA
	if lenB < denom {
		denom = lenB
	}
	return fmt.Sprintf("%d/%d", mapped, denom)
}

func toKeySet(leaves []Leaf) map[string]bool {
	set := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		set[l.Key] = true
	}
	return set
}

// commit fixes keyA -> keyB and removes both from their remaining sets. A
// B-leaf chosen twice is prevented by construction: once keyB leaves
// remainingB here, it can never be offered as a candidate again (spec
// §4.6 "Failure").
func commit(mapping map[string]string, remainingA, remainingB map[string]bool, keyA, keyB string) {
	mapping[keyA] = keyB
	delete(remainingA, keyA)
	delete(remainingB, keyB)
}

// mapUniqueTexts is spec §4.6 Phase 1: "Build the set of texts that occur
// exactly once on each side; map their owners."
func mapUniqueTexts(a, b []Leaf, remainingA, remainingB map[string]bool, mapping map[string]string, minTextLength int) {
	invA := invertUnique(a, remainingA, func(l Leaf) string { return l.Text })
	invB := invertUnique(b, remainingB, func(l Leaf) string { return l.Text })

	for text, keyA := range invA {
		if len(text) < minTextLength {
			continue
		}
		if keyB, ok := invB[text]; ok {
			commit(mapping, remainingA, remainingB, keyA, keyB)
		}
	}
}

// mapSameCitekeySameText is spec §4.6 Phase 2: "Among remaining leaves,
// build (text, citekey) pairs that are unique on both sides; map them."
func mapSameCitekeySameText(a, b []Leaf, remainingA, remainingB map[string]bool, mapping map[string]string) {
	invA := invertUnique(a, remainingA, func(l Leaf) string {
		if l.Citekey == "" {
			return ""
		}
		return strings.ToLower(l.Citekey) + "\x00" + l.Text
	})
	invB := invertUnique(b, remainingB, func(l Leaf) string {
		if l.Citekey == "" {
			return ""
		}
		return strings.ToLower(l.Citekey) + "\x00" + l.Text
	})
	delete(invA, "")
	delete(invB, "")

	for pair, keyA := range invA {
		if keyB, ok := invB[pair]; ok {
			commit(mapping, remainingA, remainingB, keyA, keyB)
		}
	}
}

// invertUnique builds text(keyFn(leaf)) -> leaf.Key for every leaf still in
// remaining, keeping only values that are unique across the set (mirrors
// the original's invert_dict_mapping_unique).
func invertUnique(leaves []Leaf, remaining map[string]bool, keyFn func(Leaf) string) map[string]string {
	counts := make(map[string]int)
	owners := make(map[string]string)
	for _, l := range leaves {
		if !remaining[l.Key] {
			continue
		}
		k := keyFn(l)
		counts[k]++
		owners[k] = l.Key
	}
	inv := make(map[string]string)
	for k, cnt := range counts {
		if cnt == 1 {
			inv[k] = owners[k]
		}
	}
	return inv
}

// clipLeadingToken strips the first whitespace-delimited token, discarding
// leading paragraph numbers like "(1)" before containment comparison
// (spec §4.6 Phase 3).
func clipLeadingToken(text string) string {
	parts := strings.SplitN(text, " ", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return ""
}

// mapTextContainment is spec §4.6 Phase 3: mark candidate pairs where
// A.text ⊆ B.text or B.text ⊆ A.text after clipping, committing only
// pairs unique on both sides.
func mapTextContainment(a, b []Leaf, remainingA, remainingB map[string]bool, mapping map[string]string, minTextLength int) {
	textByKeyA := leafTextIndex(a)
	textByKeyB := leafTextIndex(b)

	keysA := sortedRemaining(remainingA)
	keysB := sortedRemaining(remainingB)

	type pair struct{ keyA, keyB string }
	var candidates []pair
	countA := make(map[string]int)
	countB := make(map[string]int)

	for _, keyA := range keysA {
		clippedA := clipLeadingToken(textByKeyA[keyA])
		if len(clippedA) < minTextLength {
			continue
		}
		for _, keyB := range keysB {
			clippedB := clipLeadingToken(textByKeyB[keyB])
			if len(clippedB) < minTextLength {
				continue
			}
			if strings.Contains(clippedA, clippedB) || strings.Contains(clippedB, clippedA) {
				candidates = append(candidates, pair{keyA, keyB})
				countA[keyA]++
				countB[keyB]++
			}
		}
	}

	for _, p := range candidates {
		if countA[p.keyA] == 1 && countB[p.keyB] == 1 {
			if remainingA[p.keyA] && remainingB[p.keyB] {
				commit(mapping, remainingA, remainingB, p.keyA, p.keyB)
			}
		}
	}
}

func leafTextIndex(leaves []Leaf) map[string]string {
	idx := make(map[string]string, len(leaves))
	for _, l := range leaves {
		idx[l.Key] = l.Text
	}
	return idx
}

func sortedRemaining(remaining map[string]bool) []string {
	keys := make([]string, 0, len(remaining))
	for k := range remaining {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// keyPrefix returns the law/title portion of a node key ("<prefix>_NNNNNN"),
// used to restrict a neighborhood to the same document (spec §4.6 Phase 4
// "restricted to the same document prefix").
func keyPrefix(key string) string {
	if i := strings.Index(key, "_"); i >= 0 {
		return key[:i]
	}
	return key
}

// neighborhood returns the positional window of radius r around node
// within ordered, restricted to nodes sharing node's document prefix.
func neighborhood(ordered []string, index map[string]int, node string, radius int) []string {
	cur, ok := index[node]
	if !ok {
		return nil
	}
	lo := cur - radius
	if lo < 0 {
		lo = 0
	}
	hi := cur + radius
	if hi > len(ordered)-1 {
		hi = len(ordered) - 1
	}

	prefix := keyPrefix(node)
	var out []string
	for i := lo; i <= hi; i++ {
		if keyPrefix(ordered[i]) == prefix {
			out = append(out, ordered[i])
		}
	}
	return out
}

// mapSimilarTextCommonNeighbors is spec §4.6 Phase 4: neighborhood-
// restricted Jaro-Winkler matching with FIFO requeue on commit.
func mapSimilarTextCommonNeighbors(a, b []Leaf, remainingA, remainingB map[string]bool, mapping map[string]string, opts Options) {
	orderedA := make([]string, len(a))
	indexA := make(map[string]int, len(a))
	textA := make(map[string]string, len(a))
	for i, l := range a {
		orderedA[i] = l.Key
		indexA[l.Key] = i
		textA[l.Key] = l.Text
	}
	orderedB := make([]string, len(b))
	indexB := make(map[string]int, len(b))
	textB := make(map[string]string, len(b))
	for i, l := range b {
		orderedB[i] = l.Key
		indexB[l.Key] = i
		textB[l.Key] = l.Text
	}

	queue := list.New()
	queued := make(map[string]bool)
	for _, key := range sortedRemaining(remainingA) {
		queue.PushBack(key)
		queued[key] = true
	}

	for queue.Len() > 0 {
		front := queue.Front()
		queue.Remove(front)
		keyA := front.Value.(string)
		delete(queued, keyA)
		if !remainingA[keyA] {
			continue // already committed by a requeue race within this single-threaded pass
		}

		neighborsA := neighborhood(orderedA, indexA, keyA, opts.Radius)

		candidateSet := make(map[string]bool)
		for _, n1 := range neighborsA {
			if mappedTo, ok := mapping[n1]; ok {
				for _, n2 := range neighborhood(orderedB, indexB, mappedTo, opts.Radius) {
					candidateSet[n2] = true
				}
			}
		}

		bestKey, bestScore := "", 0.0
		for cand := range candidateSet {
			if !remainingB[cand] {
				continue
			}
			score := JaroWinkler(textA[keyA], textB[cand])
			if score > bestScore {
				bestScore, bestKey = score, cand
			}
		}

		if bestKey != "" && bestScore > opts.DistanceThreshold {
			commit(mapping, remainingA, remainingB, keyA, bestKey)

			for _, n1 := range neighborsA {
				if remainingA[n1] && !queued[n1] {
					queue.PushBack(n1)
					queued[n1] = true
				}
			}
		}
	}
}
