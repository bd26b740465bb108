package citeparse

import (
	"fmt"
	"regexp"
	"strings"
)

// unitSpelling mirrors pkg/refarea's unit table (spec §4.3 "A token is a
// unit word if it matches one of the known units... Stem to the canonical
// form"). Kept local to this package rather than imported so §4.3's
// tokenizer has no compile-time dependency on §4.2's detector — the two
// stages only share a textual contract (the marker's raw span), matching
// the MODULE MAP's per-stage package boundaries.
var unitSpelling = map[string]string{
	"§": "§", "§§": "§",
	"art": "art", "art.": "art", "artikel": "art", "artikeln": "art",
	"nr": "nr", "nr.": "nr", "nrn": "nr", "nrn.": "nr", "nummer": "nr",
	"abs": "abs", "abs.": "abs", "absatz": "abs", "absätze": "abs",
	"unterabsatz": "uabs", "unterabs": "uabs", "unterabs.": "uabs",
	"s": "satz", "s.": "satz", "satz": "satz", "sätze": "satz",
	"ziffer": "ziffer", "ziffern": "ziffer", "ziff": "ziffer", "ziff.": "ziffer",
	"buchstabe": "buchstabe", "buchstaben": "buchstabe", "buchst": "buchstabe", "buchst.": "buchstabe",
	"halbsatz": "halbsatz", "teilsatz": "teilsatz",
	"abschnitt": "abschnitt", "abschnitte": "abschnitt", "abschn": "abschnitt", "abschn.": "abschnitt",
	"alternative": "alt", "alternativen": "alt", "alt": "alt", "alt.": "alt",
	"anhang": "anhang", "anhänge": "anhang",
}

var unitTokenPattern = regexp.MustCompile(`(?i)^(` +
	`§{1,2}|Artikeln?|Art\.?|Nrn?\.?|Nummer|Absatz|Absätze|Abschnitte?|Abschn\.?|Abs\.?|` +
	`Unterabsatz|Unterabs\.?|Satz|Sätze|S\.?|Ziffern?|Ziff\.?|` +
	`Buchstaben?|Buchst\.?|Halbsatz|Teilsatz|` +
	`Alternativen?|Alt\.?|Anhang|Anhänge)`)

var numberTokenPattern = regexp.MustCompile(`(?i)^(\d+(\.\d+)*[a-z]?|[ivx]+|[a-z]\)?)(\s?ff\.?)?`)

var preNumberTokenPattern = regexp.MustCompile(`(?i)^(erste[rs]?n?|zweite[rs]?n?|dritte[rs]?n?|letzte[rs]?n?)`)

// connectorSplitPattern recognizes the range-connectors §4.2(a) lists,
// each captured so SplitEnumParts can tell "bis"/"through" apart from the
// others (spec §4.3 "Enumerative split... preserving bis/through ranges
// as two-element groups").
var connectorSplitPattern = regexp.MustCompile(`(?i)\s*(,|und|sowie|bis|through|oder|in\s+Verbindung\s+mit|i\.?\s?V\.?\s?m\.?)\s*`)

func canonicalUnit(token string) (string, bool) {
	u, ok := unitSpelling[strings.ToLower(token)]
	return u, ok
}

// PathElement is one (unit, value) pair popped by the tokenizer (spec
// §4.3 "Each iteration pops (unit, number) or (if unit is absent) (None,
// number)"). Unit is "" for the "None" case.
type PathElement struct {
	Unit  string
	Value string
}

// SplitEnumParts splits a citation's main text on range-connectors,
// keeping a "bis"/"through" connector's two sides joined into a single
// part (spec §4.3 "Enumerative split").
func SplitEnumParts(s string) []string {
	locs := connectorSplitPattern.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return []string{s}
	}

	var parts []string
	partStart := 0
	for _, loc := range locs {
		connector := strings.ToLower(s[loc[2]:loc[3]])
		if connector == "bis" || connector == "through" {
			continue // keep joined to the surrounding part
		}
		parts = append(parts, s[partStart:loc[0]])
		partStart = loc[1]
	}
	parts = append(parts, s[partStart:])

	var trimmed []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			trimmed = append(trimmed, p)
		}
	}
	return trimmed
}

// TokenizeErr reports a token the state machine could not classify (spec
// §7 "Unrecognized citation token").
type TokenizeErr struct {
	Token string
	Full  string
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("unrecognized citation token %q in %q", e.Token, e.Full)
}

// TokenizePart walks one enumerated part and pops (unit, number) pairs in
// order, handling the pre-number ("erste Alternative") inversion (spec
// §4.3 tokenization rules).
func TokenizePart(part string) ([]PathElement, error) {
	var elems []PathElement
	rest := strings.TrimSpace(part)

	for rest != "" {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			break
		}

		if wn := preNumberTokenPattern.FindString(rest); wn != "" {
			after := strings.TrimLeft(rest[len(wn):], " ")
			if u := unitTokenPattern.FindString(after); u != "" {
				canon, _ := canonicalUnit(u)
				elems = append(elems, PathElement{Unit: canon, Value: strings.TrimSpace(wn)})
				rest = after[len(u):]
				continue
			}
		}

		// A unit word is only committed when a number actually follows it
		// (lookahead): a bare single letter like "s" or "t" is ambiguous
		// with the "S."/"Satz" unit spelling, and the worked examples
		// (spec §8) resolve that ambiguity by requiring the unit reading
		// to be followed by a number — otherwise it is a bare enumerator
		// value continuing the previous unit via unit inference.
		if u := unitTokenPattern.FindString(rest); u != "" {
			after := strings.TrimLeft(rest[len(u):], " ")
			if num := numberTokenPattern.FindString(after); num != "" {
				canon, _ := canonicalUnit(u)
				elems = append(elems, PathElement{Unit: canon, Value: strings.TrimSpace(num)})
				rest = after[len(num):]
				continue
			}
		}

		num := numberTokenPattern.FindString(rest)
		if num == "" {
			return elems, &TokenizeErr{Token: firstToken(rest), Full: part}
		}
		elems = append(elems, PathElement{Unit: "", Value: strings.TrimSpace(num)})
		rest = rest[len(num):]
	}

	return elems, nil
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}
