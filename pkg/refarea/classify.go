package refarea

import (
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/lawregistry"
)

// suffixLeadPattern consumes the optional "<comma>? (der|des|den|die)?"
// that may precede a law-name suffix (spec §4.2(a) "attempts to consume an
// optional law-name suffix of the form ,? (der|des|den|die)? <LAW>").
var suffixLeadPattern = regexp.MustCompile(`(?i)^,?\s*((der|des|den|die)\s+)?`)

// lawNameSpanPattern extracts the law-name candidate span at the
// beginning of a string: at most 120 bytes, cut at the first ".", ";",
// ":" or newline.
var lawNameSpanPattern = regexp.MustCompile(`^[^.;:\n]{1,120}`)

// sgbKeysByLength is sgbAliases' keys sorted longest-first so the longest
// alias is tried before a shorter one that happens to be its prefix.
var sgbKeysByLength = func() []string {
	keys := make([]string, 0, len(sgbAliases))
	for k := range sgbAliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return keys
}()

// classification is the result of running the §4.2(a) law-name
// classification cascade against the text following a German reference's
// range expression.
type classification struct {
	matchType  hierarchy.LawMatchType
	lawName    string // the matched law-name text, as it appears in the source
	leadLen    int    // bytes of the optional ",? (der|des|den|die)?" connector, always a prefix of consumed
	consumed   int    // bytes consumed from the suffix-candidate span, including the leading connector
	resolvedID string // law-id, when resolvable without the caller's registry (sgb); empty otherwise
}

// classifyLawSuffix runs the §4.2(a) classification cascade (dict, sgb,
// eu, ignore, internal) against the text immediately following a German
// reference's range expression. registry may be nil, in which case the
// dict branch never matches.
func classifyLawSuffix(following string, registry *lawregistry.Registry) classification {
	lead := suffixLeadPattern.FindString(following)
	candidate := following[len(lead):]
	span := lawNameSpanPattern.FindString(candidate)

	// 1. dict: longest-prefix match of the stemmed candidate against the
	// active law-name registry, token-boundary verified.
	if registry != nil && span != "" {
		stemmed := lawregistry.Stem(span)
		if key, lawID, ok := registry.LongestPrefixMatch(stemmed); ok && key != "" {
			if consumed, matchedRaw, boundaryOK := matchRawSpanForStemmedKey(span, key); boundaryOK {
				return classification{
					matchType:  hierarchy.LawMatchDict,
					lawName:    matchedRaw,
					leadLen:    len(lead),
					consumed:   len(lead) + consumed,
					resolvedID: lawID,
				}
			}
		}
	}

	// 2. sgb: closed table of Sozialgesetzbuch aliases.
	lowerCandidate := strings.ToLower(candidate)
	for _, key := range sgbKeysByLength {
		if strings.HasPrefix(lowerCandidate, key) {
			return classification{
				matchType: hierarchy.LawMatchSGB,
				lawName:   candidate[:len(key)],
				leadLen:   len(lead),
				consumed:  len(lead) + len(key),
			}
		}
	}

	// 3. eu: EU-style ordinance names.
	if m := euOrdinancePattern.FindString(candidate); m != "" {
		return classification{
			matchType: hierarchy.LawMatchEU,
			lawName:   m,
			leadLen:   len(lead),
			consumed:  len(lead) + len(m),
		}
	}

	// 4. ignore: closed set of suffix patterns that must not be resolved.
	if m := ignoreSuffixPattern.FindString(candidate); m != "" {
		return classification{
			matchType: hierarchy.LawMatchIgnore,
			lawName:   m,
			leadLen:   len(lead),
			consumed:  len(lead) + len(m),
		}
	}

	// 5. internal: no suffix consumed, citation refers to the document
	// being parsed.
	return classification{matchType: hierarchy.LawMatchInternal}
}

// matchRawSpanForStemmedKey walks span word-by-word, re-stemming the
// accumulated prefix after each word, until it equals key. This is what
// spec §4.2 item 1 means by "the match must end on a token boundary — the
// last matched word, re-stemmed, must equal the registry's last word": the
// dict match is verified against whole words of the raw text, not an
// arbitrary byte offset into the stemmed string.
func matchRawSpanForStemmedKey(span, key string) (consumed int, raw string, ok bool) {
	words := strings.Fields(span)
	for i := range words {
		candidate := strings.Join(words[:i+1], " ")
		if lawregistry.Stem(candidate) == key {
			// Recover the raw byte length within the original span by
			// locating the (i+1)-th word's end in the untouched string.
			idx := nthWordEnd(span, i+1)
			return idx, span[:idx], true
		}
	}
	return 0, "", false
}

// nthWordEnd returns the byte offset in s right after the n-th
// whitespace-delimited word (1-indexed).
func nthWordEnd(s string, n int) int {
	count := 0
	inWord := false
	for i, r := range s {
		isSpace := r == ' ' || r == '\t' || r == '\n'
		if !isSpace && !inWord {
			inWord = true
		}
		if isSpace && inWord {
			inWord = false
			count++
			if count == n {
				return i
			}
		}
	}
	if inWord {
		count++
		if count == n {
			return len(s)
		}
	}
	return len(s)
}
