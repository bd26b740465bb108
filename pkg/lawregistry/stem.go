// Package lawregistry builds, per snapshot date, the stemmed
// law-name-string -> law-id lookup that pkg/refarea consults to classify a
// German reference's law-name suffix (spec §4.1).
package lawregistry

import (
	"regexp"
	"strings"
)

// inflectionalSuffix matches the trailing inflectional suffixes stemming
// strips from each word, boundary-anchored as spec §4.1 step 1 requires.
var inflectionalSuffix = regexp.MustCompile(`(?i)(er|en|es|s|e)$`)

var whitespaceRun = regexp.MustCompile(`\s+`)

var umlautReplacer = strings.NewReplacer(
	"ß", "ss",
	"ä", "ae",
	"ü", "ue",
	"ö", "oe",
	"Ä", "ae",
	"Ü", "ue",
	"Ö", "oe",
)

// Stem normalizes a law-name string to its registry key form (spec §4.1):
// strip each word's trailing inflectional suffix, collapse whitespace,
// lower-case, then fold umlauts. The four steps are repeated until the
// string no longer changes, so Stem is idempotent: Stem(Stem(x)) == Stem(x).
func Stem(name string) string {
	for {
		words := strings.Fields(name)
		for i, w := range words {
			words[i] = inflectionalSuffix.ReplaceAllString(w, "")
		}
		joined := strings.Join(words, " ")
		joined = whitespaceRun.ReplaceAllString(joined, " ")
		joined = strings.ToLower(joined)
		joined = umlautReplacer.Replace(joined)
		if joined == name {
			return joined
		}
		name = joined
	}
}
