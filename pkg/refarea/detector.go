package refarea

import (
	"regexp"
	"strings"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
	"github.com/coolbeans/legigraph/pkg/lawregistry"
	"github.com/coolbeans/legigraph/pkg/stats"
)

// Option configures a Detector.
type Option func(*Detector)

// WithGenericScan enables the "generic" pattern class: a law-name scan
// over plain text with no preceding §/Art trigger (SPEC_FULL.md
// "Reference-area generic pattern"). Off by default, matching the
// original pipeline's own shelved state for this feature.
func WithGenericScan(names *lawregistry.Registry) Option {
	return func(d *Detector) { d.genericScanRegistry = names }
}

// Detector locates and wraps citation substrings inside leaf text (spec
// §4.2). One Detector instance handles either jurisdiction; construct one
// per document via New.
type Detector struct {
	jurisdiction        hierarchy.Jurisdiction
	registry            *lawregistry.Registry
	documentLawID       string
	dominantUnit        string // "§" or "art", for DE internal/ignore demotion
	genericScanRegistry *lawregistry.Registry
	report              *stats.Report
}

// New constructs a Detector for one document. dominantUnit and
// documentLawID are only meaningful for jurisdiction == JurisdictionDE.
func New(jurisdiction hierarchy.Jurisdiction, registry *lawregistry.Registry, documentLawID, dominantUnit string, report *stats.Report, opts ...Option) *Detector {
	d := &Detector{
		jurisdiction:  jurisdiction,
		registry:      registry,
		documentLawID: documentLawID,
		dominantUnit:  dominantUnit,
		report:        report,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DominantUnit inspects a document's seqitem headings and returns the
// plurality leading unit, "§" or "art" (spec §4.2(a) "heuristically: the
// document uses § if the plurality of its seqitem headings start with
// §"). Returns "§" on a tie, matching the source corpus's own bias (German
// statutes overwhelmingly use §).
func DominantUnit(doc *hierarchy.Document) string {
	var paragraph, article int
	if doc.Root == nil {
		return "§"
	}
	doc.Root.Walk(func(n *hierarchy.Node) {
		if n.Type != hierarchy.NodeTypeSeqitem || n.Heading == "" {
			return
		}
		h := strings.TrimSpace(n.Heading)
		switch {
		case strings.HasPrefix(h, "§"):
			paragraph++
		case strings.HasPrefix(strings.ToLower(h), "art"):
			article++
		}
	})
	if article > paragraph {
		return "art"
	}
	return "§"
}

// ProcessDocument wraps every citation found in every leaf of doc,
// in document order (spec §4.2 "within every leaf text of a document").
func (d *Detector) ProcessDocument(doc *hierarchy.Document) {
	if doc.Root == nil {
		return
	}
	for _, leaf := range doc.Root.Leaves() {
		d.ProcessLeaf(leaf)
		if d.genericScanRegistry != nil {
			d.processGenericScan(leaf)
		}
	}
}

// processGenericScan runs the opt-in "generic" pattern (SPEC_FULL.md
// "Reference-area generic pattern"): a law-name scan over the leaf's
// remaining plain-text runs with no preceding §/Art trigger, for aliases
// at least four stemmed words long so short abbreviations don't fire on
// unrelated prose.
func (d *Detector) processGenericScan(node *hierarchy.Node) {
	if node.Text == nil {
		return
	}
	var out []hierarchy.Segment
	for _, seg := range node.Text.Segments {
		text, ok := seg.(hierarchy.TextSegment)
		if !ok {
			out = append(out, seg)
			continue
		}
		out = append(out, d.genericScanSegment(node.Key, string(text))...)
	}
	node.Text.Segments = out
}

func (d *Detector) genericScanSegment(nodeKey, text string) []hierarchy.Segment {
	words := strings.Fields(text)
	if len(words) < 4 {
		return []hierarchy.Segment{hierarchy.TextSegment(text)}
	}
	stemmed := lawregistry.Stem(text)
	key, lawID, ok := d.genericScanRegistry.LongestPrefixMatch(stemmed)
	if !ok || len(strings.Fields(key)) < 4 {
		return []hierarchy.Segment{hierarchy.TextSegment(text)}
	}
	consumed, raw, boundaryOK := matchRawSpanForStemmedKey(text, key)
	if !boundaryOK {
		return []hierarchy.Segment{hierarchy.TextSegment(text)}
	}
	marker := &hierarchy.ReferenceMarker{
		OriginNode:   nodeKey,
		Pattern:      hierarchy.PatternGeneric,
		LawName:      raw,
		LawMatch:     hierarchy.LawMatchDict,
		LawID:        lawID,
		Jurisdiction: d.jurisdiction,
	}
	segs := []hierarchy.Segment{marker}
	if consumed < len(text) {
		segs = append(segs, hierarchy.TextSegment(text[consumed:]))
	}
	return segs
}

// ProcessLeaf wraps every citation found inside one leaf's mixed content.
// Existing reference markers (from a previous run) are left untouched;
// only TextSegments are scanned.
func (d *Detector) ProcessLeaf(node *hierarchy.Node) {
	if node.Text == nil {
		return
	}
	var out []hierarchy.Segment
	for _, seg := range node.Text.Segments {
		text, ok := seg.(hierarchy.TextSegment)
		if !ok {
			out = append(out, seg)
			continue
		}
		out = append(out, d.wrapSegment(node.Key, string(text))...)
	}
	node.Text.Segments = out
}

// wrapSegment scans one plain-text run for every non-overlapping citation
// and returns the replacement segment sequence: alternating text and
// marker segments (spec §4.2 "Wrapping contract").
func (d *Detector) wrapSegment(nodeKey, text string) []hierarchy.Segment {
	var out []hierarchy.Segment
	pos := 0
	for pos < len(text) {
		start, markerSeg, end, ok := d.findNextMatch(nodeKey, text, pos)
		if !ok {
			break
		}
		if start > pos {
			out = append(out, hierarchy.TextSegment(text[pos:start]))
		}
		out = append(out, markerSeg)
		pos = end
	}
	if pos < len(text) {
		out = append(out, hierarchy.TextSegment(text[pos:]))
	}
	if len(out) == 0 {
		return []hierarchy.Segment{hierarchy.TextSegment(text)}
	}
	return out
}

// alreadyWrappedOfPattern detects the "of <lawname>" double-wrap guard
// (spec §4.2 "Matches that are immediately followed by of plus an already
// -consumed law name are skipped to avoid double wrapping").
var alreadyWrappedOfPattern = regexp.MustCompile(`(?i)^\s*of\s+`)

// findNextMatch locates the earliest citation at or after pos in text.
func (d *Detector) findNextMatch(nodeKey, text string, pos int) (start int, marker *hierarchy.ReferenceMarker, end int, ok bool) {
	if d.jurisdiction == hierarchy.JurisdictionDE {
		return d.findNextDEMatch(nodeKey, text, pos)
	}
	return d.findNextUSMatch(nodeKey, text, pos)
}

func (d *Detector) findNextDEMatch(nodeKey, text string, pos int) (int, *hierarchy.ReferenceMarker, int, bool) {
	loc := triggerPattern.FindStringIndex(text[pos:])
	if loc == nil {
		return 0, nil, 0, false
	}
	triggerStart := pos + loc[0]
	triggerEnd := pos + loc[1]

	mainLen := scanRangeExpression(text[triggerEnd:])
	mainEnd := triggerEnd + mainLen

	cls := classifyLawSuffix(text[mainEnd:], d.registry)
	suffixEnd := mainEnd + cls.consumed

	if alreadyWrappedOfPattern.MatchString(text[suffixEnd:]) && cls.matchType != hierarchy.LawMatchInternal {
		// Skip: this would double-wrap a law name already consumed by an
		// earlier citation's "of <lawname>" tail.
		return d.findNextDEMatch(nodeKey, text, suffixEnd)
	}

	matchType := cls.matchType
	lawID := cls.resolvedID
	unit := canonicalTriggerUnit(text[triggerStart:triggerEnd])

	if matchType == hierarchy.LawMatchInternal {
		if unit != d.dominantUnit {
			matchType = hierarchy.LawMatchIgnore
		} else {
			lawID = d.documentLawID
		}
	}
	if matchType == hierarchy.LawMatchSGB {
		lawID = resolveSGBLawID(cls.lawName, d.registry)
	}
	if matchType == hierarchy.LawMatchDict && lawID == "" {
		matchType = hierarchy.LawMatchUnknown
	}
	if matchType == hierarchy.LawMatchUnknown && d.report != nil {
		d.report.Add(nodeKey, "unknown-law-suffix", cls.lawName)
	}

	marker := &hierarchy.ReferenceMarker{
		OriginNode:   nodeKey,
		Pattern:      hierarchy.PatternBlock,
		Main:         text[triggerStart:mainEnd],
		Suffix:       text[mainEnd : mainEnd+cls.leadLen],
		LawName:      cls.lawName,
		LawMatch:     matchType,
		LawID:        lawID,
		Jurisdiction: hierarchy.JurisdictionDE,
	}
	return triggerStart, marker, suffixEnd, true
}

func (d *Detector) findNextUSMatch(nodeKey, text string, pos int) (int, *hierarchy.ReferenceMarker, int, bool) {
	rest := text[pos:]

	blockLoc := usBlockPattern.FindStringIndex(rest)
	inlineLoc := usInlinePattern.FindStringIndex(rest)

	var loc []int
	var pattern hierarchy.PatternClass
	switch {
	case blockLoc != nil && (inlineLoc == nil || blockLoc[0] <= inlineLoc[0]):
		loc, pattern = blockLoc, hierarchy.PatternBlock
	case inlineLoc != nil:
		loc, pattern = inlineLoc, hierarchy.PatternInline
	default:
		return 0, nil, 0, false
	}

	start := pos + loc[0]
	end := pos + loc[1]
	marker := &hierarchy.ReferenceMarker{
		OriginNode:   nodeKey,
		Pattern:      pattern,
		Raw:          text[start:end],
		Jurisdiction: hierarchy.JurisdictionUS,
	}
	return start, marker, end, true
}

// canonicalTriggerUnit resolves a trigger token to "§" or "art".
func canonicalTriggerUnit(trigger string) string {
	if strings.HasPrefix(trigger, "§") {
		return "§"
	}
	return "art"
}

// resolveSGBLawID applies the Roman-then-Arabic fallback order
// (SPEC_FULL.md "SGB law-table ambiguity resolution") when neither or both
// forms are present in the active registry.
func resolveSGBLawID(matchedAlias string, registry *lawregistry.Registry) string {
	entry, ok := sgbAliases[strings.ToLower(matchedAlias)]
	if !ok {
		return ""
	}
	if registry != nil {
		if _, ok := registry.Lookup(lawregistry.Stem(entry.roman)); ok {
			return entry.roman
		}
		if _, ok := registry.Lookup(lawregistry.Stem(entry.arabic)); ok {
			return entry.arabic
		}
	}
	return entry.roman
}
