package lawregistry

import (
	"regexp"

	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
)

// Alias is one document alias with its validity window (spec §4.1 inputs):
// a long heading, short heading, or abbreviation, valid from Start to End
// inclusive.
type Alias struct {
	Name  string
	LawID string
	Start hierarchy.Date
	End   hierarchy.Date
}

// Registry is the stemmed-name -> law-id lookup active at one snapshot
// date, backed by a radix trie so callers can resolve the longest
// registry key that prefixes an arbitrary following span of text (spec
// §4.2 "dict" classification, §9 "Implement with a trie").
type Registry struct {
	tree *iradix.Tree
}

// baseYearKey matches registry keys of the form "<base> <4-digit-year>"
// optionally followed by more digits, e.g. "sozialgesetzbuch 1975-01".
var baseYearKey = regexp.MustCompile(`^(.*) (\d{4})[-\d]*$`)

// Build selects the aliases valid at d and compiles them into a Registry,
// applying the base-name disambiguation step and the hard-coded German
// "grundgesetz" entry (spec §4.1 "Selection").
func Build(aliases []Alias, d hierarchy.Date, jurisdiction hierarchy.Jurisdiction) *Registry {
	active := map[string]string{} // stemmed name -> law-id, first-wins per key
	var order []string

	for _, a := range aliases {
		if a.Start.After(d) || a.End.Before(d) {
			continue
		}
		key := Stem(a.Name)
		if _, exists := active[key]; !exists {
			order = append(order, key)
		}
		active[key] = a.LawID
	}

	// Base-name disambiguation: for every key "<base> <year>[-digits]", if
	// <base> is absent and all matching keys agree on a value, add <base>.
	baseCandidates := map[string]string{}
	baseConflict := map[string]bool{}
	for _, key := range order {
		m := baseYearKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		base := m[1]
		if _, hasBase := active[base]; hasBase {
			continue
		}
		if v, seen := baseCandidates[base]; seen {
			if v != active[key] {
				baseConflict[base] = true
			}
		} else {
			baseCandidates[base] = active[key]
		}
	}
	for base, v := range baseCandidates {
		if baseConflict[base] {
			continue
		}
		if _, exists := active[base]; !exists {
			active[base] = v
			order = append(order, base)
		}
	}

	if jurisdiction == hierarchy.JurisdictionDE {
		active["grundgesetz"] = "GG"
	}

	tree := iradix.New()
	for key, lawID := range active {
		tree, _, _ = tree.Insert([]byte(key), lawID)
	}
	return &Registry{tree: tree}
}

// LongestPrefixMatch returns the longest registry key that is a prefix of
// stemmed, along with its law-id. The caller (pkg/refarea) is responsible
// for verifying the match ends on a token boundary, per spec §4.2 item 1.
func (r *Registry) LongestPrefixMatch(stemmed string) (key, lawID string, ok bool) {
	prefix, value, found := r.tree.Root().LongestPrefix([]byte(stemmed))
	if !found {
		return "", "", false
	}
	return string(prefix), value.(string), true
}

// Lookup returns the law-id for an exact stemmed key, if present.
func (r *Registry) Lookup(stemmed string) (lawID string, ok bool) {
	v, found := r.tree.Get([]byte(stemmed))
	if !found {
		return "", false
	}
	return v.(string), true
}

// Len reports the number of entries in the registry.
func (r *Registry) Len() int {
	return r.tree.Len()
}
