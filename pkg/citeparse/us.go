package citeparse

import (
	"regexp"
	"strings"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// usBlockRawPattern re-extracts the title, code, and section expression
// from a block marker's raw matched text (spec §4.2(b) "block").
var usBlockRawPattern = regexp.MustCompile(
	`(?i)^(?P<title>\d+)\s+(?P<code>U\.?S\.?C\.?|C\.?F\.?R\.?)\s*(Sec\.?|§|Part)?\s*(?P<sec>.+?)(\s+of\s+(Title\s+(?P<oftitle>\d+)|the\s+Code\s+of\s+Federal\s+Regulations))?$`,
)

// usEnumeratorPattern matches one "(x)" enumerator or bare number/letter
// token within a section expression (spec §4.2(b) "<sec-expr>").
var usEnumeratorPattern = regexp.MustCompile(`\d+[a-zA-Z]?|\([0-9a-zA-Z]+\)`)

// usRangeCodeRepeatPattern collapses a range whose second bound repeats the
// code mention for clarity ("3801-U.S.C. 3831") down to a bare "N-M" range
// so Normalize's bareNumberRange recognizes it (spec §8 worked example "31
// U.S.C. 3801-U.S.C. 3831").
var usRangeCodeRepeatPattern = regexp.MustCompile(`(?i)(\d+[a-z]?)-(?:U\.?S\.?C\.?|C\.?F\.?R\.?)\s*(\d+[a-z]?)`)

// usThroughSplitPattern splits a normalized section expression on the
// "through" separator Normalize introduces for an expanded range (spec
// §4.3 pre-normalization item iii), so each range side becomes its own
// citation path.
var usThroughSplitPattern = regexp.MustCompile(`(?i)\s+through\s+`)

// ParseUSMarker turns a US reference marker's matched text into one or
// more citation paths (spec §4.3 "US citations follow the same shape but
// with integer titles; the title is attached as the path's first element
// (\"cfrNN\" for regulations, \"NN\" for statutes)"). documentTitle is the
// title of the document being parsed, used when the marker is an inline
// citation with no explicit title (spec §4.2(b) "inline").
func ParseUSMarker(marker *hierarchy.ReferenceMarker, documentTitle string, report *stats.Report) {
	title := documentTitle
	isRegulation := false
	secExpr := marker.Raw

	if m := usBlockRawPattern.FindStringSubmatch(marker.Raw); m != nil {
		names := usBlockRawPattern.SubexpNames()
		group := func(name string) string {
			for i, n := range names {
				if n == name && i < len(m) {
					return m[i]
				}
			}
			return ""
		}
		if t := group("title"); t != "" {
			title = t
		}
		if oft := group("oftitle"); oft != "" {
			title = oft
		}
		code := strings.ToUpper(strings.ReplaceAll(group("code"), ".", ""))
		isRegulation = code == "CFR"
		secExpr = group("sec")
	} else {
		// Inline: strip the leading trigger word to leave the bare
		// section expression.
		secExpr = inlineTriggerPattern.ReplaceAllString(marker.Raw, "")
		secExpr = inlineOfSuffixPattern.ReplaceAllString(secExpr, "")
	}

	titleElement := title
	if isRegulation {
		titleElement = "cfr" + title
	}

	secExpr = usRangeCodeRepeatPattern.ReplaceAllString(secExpr, "$1-$2")
	normalized := Normalize(secExpr)

	var paths []hierarchy.CitationPath
	for _, segment := range usThroughSplitPattern.Split(normalized, -1) {
		tokens := usEnumeratorPattern.FindAllString(segment, -1)
		if len(tokens) == 0 {
			continue
		}
		path := make(hierarchy.CitationPath, 0, len(tokens)+1)
		if titleElement != "" {
			path = append(path, hierarchy.CitationPathElement{Unit: "title", Value: titleElement})
		}
		for _, tok := range tokens {
			path = append(path, hierarchy.CitationPathElement{Unit: "", Value: strings.Trim(tok, "()")})
		}
		paths = append(paths, path)
	}

	marker.Paths = paths
	marker.Parsed = len(paths) > 0
	if !marker.Parsed && report != nil {
		report.Add(marker.OriginNode, "unrecognized-token", marker.Raw)
	}
}

var inlineTriggerPattern = regexp.MustCompile(`(?i)^\s*(Section|§|Part)\s*`)
var inlineOfSuffixPattern = regexp.MustCompile(`(?i)\s+of\s+(this\s+(title|chapter|part|subchapter)|title\s+\d+)\s*$`)
