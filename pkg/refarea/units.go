// Package refarea implements the reference-area detector (spec §4.2): it
// scans every leaf text of a document, locates citation substrings, and
// wraps each in a hierarchy.ReferenceMarker without disturbing the
// surrounding plain text.
package refarea

import "regexp"

// unitSpelling maps every documented spelling variant of a German citation
// sub-unit word to its canonical stemmed form (spec §4.2(a) unit list,
// §4.3 "Stem to the canonical form").
var unitSpelling = map[string]string{
	"§":            "§",
	"§§":           "§",
	"art":          "art",
	"art.":         "art",
	"artikel":      "art",
	"artikeln":     "art",
	"nr":           "nr",
	"nr.":          "nr",
	"nrn":          "nr",
	"nrn.":         "nr",
	"nummer":       "nr",
	"abs":          "abs",
	"abs.":         "abs",
	"absatz":       "abs",
	"absätze":      "abs",
	"unterabsatz":  "uabs",
	"unterabs":     "uabs",
	"unterabs.":    "uabs",
	"s":            "satz",
	"s.":           "satz",
	"satz":         "satz",
	"sätze":        "satz",
	"ziffer":       "ziffer",
	"ziffern":      "ziffer",
	"ziff":         "ziffer",
	"ziff.":        "ziffer",
	"buchstabe":    "buchstabe",
	"buchstaben":   "buchstabe",
	"buchst":       "buchstabe",
	"buchst.":      "buchstabe",
	"halbsatz":     "halbsatz",
	"teilsatz":     "teilsatz",
	"abschnitt":    "abschnitt",
	"abschnitte":   "abschnitt",
	"abschn":       "abschnitt",
	"abschn.":      "abschnitt",
	"alternative":  "alt",
	"alternativen": "alt",
	"alt":          "alt",
	"alt.":         "alt",
	"anhang":       "anhang",
	"anhänge":      "anhang",
}

// unitWordPattern recognizes any spelling variant of a sub-unit word
// (spec §4.2(a) unit list, §4.3 "unit word").
var unitWordPattern = regexp.MustCompile(`(?i)^(` +
	`§{1,2}|` +
	`Art\.?|Artikeln?|` +
	`Nrn?\.?|Nummer|` +
	`Abs\.?|Absatz|Absätze|` +
	`Unterabsatz|Unterabs\.?|` +
	`S\.?|Satz|Sätze|` +
	`Ziffern?|Ziff\.?|` +
	`Buchstaben?|Buchst\.?|` +
	`Halbsatz|Teilsatz|` +
	`Abschnitte?|Abschn\.?|` +
	`Alternativen?|Alt\.?|` +
	`Anhang|Anhänge` +
	`)$`)

// canonicalUnit resolves a raw unit token to its stemmed canonical form.
func canonicalUnit(token string) (string, bool) {
	canon, ok := unitSpelling[lowerASCIIFold(token)]
	return canon, ok
}

// lowerASCIIFold lower-cases a token for unit-table lookup. Word-internal
// casing never carries meaning for unit spellings, unlike law names, so a
// plain lower-case (not the full Stem pipeline) is enough here.
func lowerASCIIFold(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// numberPattern matches a "number" token (spec §4.3 "A token is a number
// if..."): digit groups, roman numerals, or a single letter, optionally
// suffixed "ff."/"ff".
var numberPattern = regexp.MustCompile(`(?i)^(\d+(\.\d+)*[a-z]?|[ivx]+|[a-z]\)?)(\s?ff\.?)?$`)

// preNumberPattern matches an ordinal "pre-number" word (spec §4.3): it
// precedes its unit instead of following it ("erste Alternative").
var preNumberPattern = regexp.MustCompile(`(?i)^(erste|zweite|dritte|letzte)[rs]?n?$`)

// connectorWords are the range-connectors §4.2(a) lists between range
// elements, in the form they appear as standalone tokens once the
// surrounding whitespace/punctuation has been trimmed.
var connectorWords = map[string]bool{
	",":                    true,
	"und":                  true,
	"sowie":                true,
	"bis":                  true,
	"oder":                 true,
	"in verbindung mit":    true,
	"i.v.m.":               true,
	"i.v.m":                true,
}

func isConnectorWord(token string) bool {
	return connectorWords[lowerASCIIFold(token)]
}
