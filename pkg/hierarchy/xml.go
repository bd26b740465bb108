package hierarchy

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// ReadDocument parses one hierarchy-XML document (spec §6 "Hierarchy XML").
// The same reader also accepts reference-annotated XML (spec §6
// "Reference-annotated XML"): a <text> with no <reference> children reads
// back as a single TextSegment, so one reader covers both the §4.2 input
// and the §4.2/§4.3 output wire shapes.
func ReadDocument(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("hierarchy: no <document> element found")
		}
		if err != nil {
			return nil, fmt.Errorf("hierarchy: malformed input: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "document" {
			continue
		}
		return readDocument(dec, se)
	}
}

func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func readDocument(dec *xml.Decoder, start xml.StartElement) (*Document, error) {
	doc := &Document{}
	if v, ok := attrValue(start.Attr, "key"); ok {
		doc.ID = v
	}
	if v, ok := attrValue(start.Attr, "heading"); ok {
		doc.Heading = v
	}
	if v, ok := attrValue(start.Attr, "abbr_1"); ok {
		doc.Abbr1 = v
	}
	if v, ok := attrValue(start.Attr, "abbr_2"); ok {
		doc.Abbr2 = v
	}
	if v, ok := attrValue(start.Attr, "document_type"); ok {
		doc.Type = DocumentType(v)
	}

	root, err := readNode(dec, start, NodeTypeDocument, nil)
	if err != nil {
		return nil, err
	}
	doc.Root = root
	return doc, nil
}

// readNode parses the element named by start (already consumed) as a
// hierarchy node, consuming tokens up to and including its matching
// EndElement.
func readNode(dec *xml.Decoder, start xml.StartElement, nodeType NodeType, parent *Node) (*Node, error) {
	n := &Node{Type: nodeType, Parent: parent}
	if v, ok := attrValue(start.Attr, "key"); ok {
		n.Key = v
	}
	if v, ok := attrValue(start.Attr, "heading"); ok {
		n.Heading = v
	}
	if v, ok := attrValue(start.Attr, "citekey"); ok {
		n.Citekey = v
	}
	if v, ok := attrValue(start.Attr, "level"); ok {
		if level, err := strconv.Atoi(v); err == nil {
			n.Level = level
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("hierarchy: malformed input inside %q: %w", n.Key, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "text":
				content, err := readText(dec)
				if err != nil {
					return nil, err
				}
				if n.Text == nil {
					n.Text = content
				} else {
					n.Text.Segments = append(n.Text.Segments, content.Segments...)
				}
			case "item", "seqitem", "subseqitem":
				child, err := readNode(dec, t, childNodeType(t.Name.Local), n)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, child)
			default:
				if err := skipElement(dec); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return n, nil
		}
	}
}

func childNodeType(tag string) NodeType {
	switch tag {
	case "item":
		return NodeTypeItem
	case "seqitem":
		return NodeTypeSeqitem
	case "subseqitem":
		return NodeTypeSubseqitem
	default:
		return NodeTypeItem
	}
}

// readText parses one <text> element's mixed content: runs of plain
// character data interleaved with <reference> elements (spec §6
// "Reference-annotated XML").
func readText(dec *xml.Decoder) (*MixedContent, error) {
	content := &MixedContent{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("hierarchy: malformed <text>: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if s := string(t); s != "" {
				content.Segments = append(content.Segments, TextSegment(s))
			}
		case xml.StartElement:
			if t.Name.Local == "reference" {
				marker, err := readReference(dec, t)
				if err != nil {
					return nil, err
				}
				content.Segments = append(content.Segments, marker)
			} else if err := skipElement(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return content, nil
		}
	}
}

// readReference parses one <reference> element. DE references carry
// <main>/<suffix>/<lawname> children; US references carry only raw
// character data (spec §6).
func readReference(dec *xml.Decoder, start xml.StartElement) (*ReferenceMarker, error) {
	m := &ReferenceMarker{Pattern: PatternClass(firstAttr(start.Attr, "pattern"))}

	if v, ok := attrValue(start.Attr, "parsed_verbose"); ok && v != "" {
		paths, err := unmarshalParsedVerbose(v)
		if err != nil {
			return nil, fmt.Errorf("hierarchy: parsed_verbose: %w", err)
		}
		m.Paths = paths
		m.Parsed = true
	}

	var rawText []byte
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("hierarchy: malformed <reference>: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			rawText = append(rawText, t...)
		case xml.StartElement:
			switch t.Name.Local {
			case "main":
				text, err := elementText(dec)
				if err != nil {
					return nil, err
				}
				m.Main = text
				m.Jurisdiction = JurisdictionDE
			case "suffix":
				text, err := elementText(dec)
				if err != nil {
					return nil, err
				}
				m.Suffix = text
			case "lawname":
				text, err := elementText(dec)
				if err != nil {
					return nil, err
				}
				m.LawName = text
				m.LawMatch = LawMatchType(firstAttr(t.Attr, "type"))
			default:
				if err := skipElement(dec); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if m.Jurisdiction != JurisdictionDE {
				m.Raw = string(rawText)
			}
			return m, nil
		}
	}
}

func firstAttr(attrs []xml.Attr, name string) string {
	v, _ := attrValue(attrs, name)
	return v
}

// elementText reads the remaining character data of the current element
// up to its EndElement, ignoring any further nested elements.
func elementText(dec *xml.Decoder) (string, error) {
	var b []byte
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b = append(b, t...)
		case xml.EndElement:
			return string(b), nil
		case xml.StartElement:
			if err := skipElement(dec); err != nil {
				return "", err
			}
		}
	}
}

// skipElement consumes tokens up to and including the EndElement matching
// the StartElement just read by the caller.
func skipElement(dec *xml.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// WriteDocument emits doc as reference-annotated XML (spec §6): the
// hierarchy-XML shape with every ReferenceMarker spliced back into its
// <text> parent, carrying parsed_verbose/parsed attributes when the
// marker has been parsed (§4.3).
func WriteDocument(w io.Writer, doc *Document) error {
	enc := xml.NewEncoder(w)

	attrs := []xml.Attr{
		{Name: xml.Name{Local: "key"}, Value: doc.ID},
		{Name: xml.Name{Local: "heading"}, Value: doc.Heading},
		{Name: xml.Name{Local: "abbr_1"}, Value: doc.Abbr1},
	}
	if doc.Abbr2 != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "abbr_2"}, Value: doc.Abbr2})
	}
	attrs = append(attrs,
		xml.Attr{Name: xml.Name{Local: "document_type"}, Value: string(doc.Type)},
		xml.Attr{Name: xml.Name{Local: "level"}, Value: "0"},
	)

	if err := writeNode(enc, "document", doc.Root, attrs); err != nil {
		return err
	}
	return enc.Flush()
}

func writeNode(enc *xml.Encoder, tag string, n *Node, extraAttrs []xml.Attr) error {
	attrs := append([]xml.Attr{}, extraAttrs...)
	if tag != "document" {
		attrs = append(attrs,
			xml.Attr{Name: xml.Name{Local: "key"}, Value: n.Key},
			xml.Attr{Name: xml.Name{Local: "level"}, Value: strconv.Itoa(n.Level)},
		)
		if n.Heading != "" {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "heading"}, Value: n.Heading})
		}
		if n.Citekey != "" {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "citekey"}, Value: n.Citekey})
		}
	}

	start := xml.StartElement{Name: xml.Name{Local: tag}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if n.Text != nil {
		if err := writeText(enc, n.Text); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := writeNode(enc, childTag(child.Type), child, nil); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

func childTag(t NodeType) string {
	switch t {
	case NodeTypeSeqitem:
		return "seqitem"
	case NodeTypeSubseqitem:
		return "subseqitem"
	default:
		return "item"
	}
}

func writeText(enc *xml.Encoder, content *MixedContent) error {
	textStart := xml.StartElement{Name: xml.Name{Local: "text"}}
	if err := enc.EncodeToken(textStart); err != nil {
		return err
	}
	for _, seg := range content.Segments {
		switch s := seg.(type) {
		case TextSegment:
			if err := enc.EncodeToken(xml.CharData(string(s))); err != nil {
				return err
			}
		case *ReferenceMarker:
			if err := writeReference(enc, s); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: textStart.Name})
}

func writeReference(enc *xml.Encoder, m *ReferenceMarker) error {
	attrs := []xml.Attr{{Name: xml.Name{Local: "pattern"}, Value: string(m.Pattern)}}
	if m.Parsed {
		verbose, err := marshalParsedVerbose(m.Paths)
		if err != nil {
			return fmt.Errorf("hierarchy: marshal parsed_verbose: %w", err)
		}
		simple, err := json.Marshal(m.ParsedSimple())
		if err != nil {
			return fmt.Errorf("hierarchy: marshal parsed: %w", err)
		}
		attrs = append(attrs,
			xml.Attr{Name: xml.Name{Local: "parsed_verbose"}, Value: verbose},
			xml.Attr{Name: xml.Name{Local: "parsed"}, Value: string(simple)},
		)
	}

	start := xml.StartElement{Name: xml.Name{Local: "reference"}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if m.Jurisdiction == JurisdictionDE {
		if err := writeWrappedElement(enc, "main", m.Main, nil); err != nil {
			return err
		}
		if err := writeWrappedElement(enc, "suffix", m.Suffix, nil); err != nil {
			return err
		}
		lawnameAttrs := []xml.Attr{{Name: xml.Name{Local: "type"}, Value: string(m.LawMatch)}}
		if err := writeWrappedElement(enc, "lawname", m.LawName, lawnameAttrs); err != nil {
			return err
		}
	} else if err := enc.EncodeToken(xml.CharData(m.Raw)); err != nil {
		return err
	}

	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

func writeWrappedElement(enc *xml.Encoder, tag, text string, attrs []xml.Attr) error {
	start := xml.StartElement{Name: xml.Name{Local: tag}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

// marshalParsedVerbose encodes paths as the spec §6 "JSON array of arrays
// of [unit,value] pairs" wire shape.
func marshalParsedVerbose(paths []CitationPath) (string, error) {
	out := make([][][2]string, len(paths))
	for i, p := range paths {
		pairs := make([][2]string, len(p))
		for j, el := range p {
			pairs[j] = [2]string{el.Unit, el.Value}
		}
		out[i] = pairs
	}
	b, err := json.Marshal(out)
	return string(b), err
}

func unmarshalParsedVerbose(data string) ([]CitationPath, error) {
	var raw [][][2]string
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, err
	}
	paths := make([]CitationPath, len(raw))
	for i, pairs := range raw {
		path := make(CitationPath, len(pairs))
		for j, pair := range pairs {
			path[j] = CitationPathElement{Unit: pair[0], Value: pair[1]}
		}
		paths[i] = path
	}
	return paths, nil
}
