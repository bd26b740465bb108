package hierarchy

// MixedContent is the ordered sequence of plain-text runs and reference
// markers that makes up a leaf's <text> content (spec §6). It starts out as
// a single TextSegment and is mutated by pkg/refarea (§4.2), which splices
// reference markers in, replacing one TextSegment with
// (prefix-text, marker, suffix-text) per the wrapping contract.
type MixedContent struct {
	Segments []Segment
}

// NewPlainText builds mixed content consisting of a single untouched run.
func NewPlainText(s string) *MixedContent {
	if s == "" {
		return &MixedContent{}
	}
	return &MixedContent{Segments: []Segment{TextSegment(s)}}
}

// PlainText concatenates every segment's underlying text, ignoring marker
// structure. Used by pkg/snapshotmap to compare leaf texts across
// snapshots and by the wrapping-preserves-text invariant (spec §8.2).
func (m *MixedContent) PlainText() string {
	var b []byte
	for _, seg := range m.Segments {
		b = append(b, seg.rawText()...)
	}
	return string(b)
}

// Segment is one element of a MixedContent run: either a TextSegment or a
// *ReferenceMarker.
type Segment interface {
	rawText() string
}

// TextSegment is an untouched run of plain text.
type TextSegment string

func (t TextSegment) rawText() string { return string(t) }

// PatternClass classifies a reference marker's grammar (spec §3, §4.2).
type PatternClass string

const (
	PatternBlock   PatternClass = "block"
	PatternInline  PatternClass = "inline"
	PatternGeneric PatternClass = "generic"
)

// LawMatchType classifies how a German reference's law-name suffix was
// resolved (spec §3, §4.2).
type LawMatchType string

const (
	LawMatchDict     LawMatchType = "dict"
	LawMatchSGB      LawMatchType = "sgb"
	LawMatchInternal LawMatchType = "internal"
	LawMatchEU       LawMatchType = "eu"
	LawMatchIgnore   LawMatchType = "ignore"
	LawMatchUnknown  LawMatchType = "unknown"
)

// CitationPathElement is one (unit, value) pair of a citation path (spec §3).
// The synthetic law-identifier element has Unit "Gesetz" (DE) or "title"
// (US); Unit is empty for untyped leading numbers before unit inference
// runs.
type CitationPathElement struct {
	Unit  string
	Value string
}

// CitationPath is an ordered list of (unit, value) pairs. After parsing
// (§4.3), element 0 of a DE path is ("Gesetz", <law-id>) when the marker
// carries a law id, and element 0 of a US path is ("title", <title>);
// a DE path without a law id starts with its first unit.
type CitationPath []CitationPathElement

// Simple returns the "simple" serialization of the path: only the values,
// in order (spec §4.3 "Verbose vs simple output").
func (p CitationPath) Simple() []string {
	values := make([]string, len(p))
	for i, el := range p {
		values[i] = el.Value
	}
	return values
}

// ReferenceMarker is the in-text wrapper produced by §4.2 and filled in by
// §4.3. OriginNode is set once the marker is attached to a leaf.
type ReferenceMarker struct {
	OriginNode string
	Pattern    PatternClass

	// Raw span as first captured by §4.2, before §4.3 parsing.
	Main   string // DE: the trigger+range-expression text; US: unused, see Raw
	Suffix string // DE: the "der|des|..." connector between main and lawname
	Raw    string // US: the full matched citation text

	LawName     string // DE: the textual law-name suffix, before classification
	LawMatch    LawMatchType
	LawID       string // resolved law identifier, once known
	Jurisdiction Jurisdiction

	// Filled in by §4.3.
	Paths  []CitationPath
	Parsed bool // false if parsing failed and the marker carries no paths (spec §7)
}

func (r *ReferenceMarker) rawText() string {
	if r.Jurisdiction == JurisdictionDE {
		return r.Main + r.Suffix + r.LawName
	}
	return r.Raw
}

// ParsedSimple returns the simple serialization of every path (spec §4.3).
func (r *ReferenceMarker) ParsedSimple() [][]string {
	out := make([][]string, len(r.Paths))
	for i, p := range r.Paths {
		out[i] = p.Simple()
	}
	return out
}
