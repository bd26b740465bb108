// Package hierarchy models a single statute-corpus snapshot as a forest of
// hierarchy nodes and provides the reader/writer for the hierarchy XML
// contract (spec §6).
package hierarchy

import "fmt"

// Jurisdiction identifies which national corpus a snapshot belongs to.
type Jurisdiction string

const (
	JurisdictionUS Jurisdiction = "us"
	JurisdictionDE Jurisdiction = "de"
)

// DocumentType distinguishes statutes from regulations.
type DocumentType string

const (
	DocumentTypeStatute    DocumentType = "statute"
	DocumentTypeRegulation DocumentType = "regulation"
)

// NodeType enumerates the hierarchy-node kinds of spec §3.
type NodeType string

const (
	NodeTypeDocument   NodeType = "document"
	NodeTypeItem       NodeType = "item"
	NodeTypeSeqitem    NodeType = "seqitem"
	NodeTypeSubseqitem NodeType = "subseqitem"
)

// Snapshot identifies the state of a corpus as of one date.
//
// For the US corpus, Date carries only a year (Month/Day are zero); for DE
// it carries a full ISO date, matching the two snapshot literal forms of
// spec §6 ("YYYY" vs "YYYY-MM-DD").
type Snapshot struct {
	Jurisdiction Jurisdiction
	Date         Date
}

// String renders the snapshot's filename-stable label.
func (s Snapshot) String() string {
	if s.Jurisdiction == JurisdictionUS {
		return fmt.Sprintf("%04d", s.Date.Year)
	}
	return s.Date.String()
}

// Document is a single statute or regulation valid within one snapshot.
type Document struct {
	ID           string
	Abbr1        string
	Abbr2        string
	Heading      string
	HeadingShort string
	Type         DocumentType
	Snapshot     Snapshot
	Root         *Node
}

// Node is one hierarchy node: a document root, an intermediate item, or a
// leaf (seqitem/subseqitem). Nodes form a forest rooted at documents.
//
// Text is the leaf's mixed content (plain text interleaved with reference
// markers produced by §4.2); for non-leaf nodes Text is nil.
type Node struct {
	Key      string // globally unique within the snapshot, "<doc-id>_<NNNNNN>"
	Level    int
	Type     NodeType
	Heading  string
	Citekey  string // empty if the node carries none
	Parent   *Node
	Children []*Node
	Text     *MixedContent
}

// IsLeaf reports whether n has no descendants, i.e. is a seqitem or
// subseqitem with no children of its own.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0 && (n.Type == NodeTypeSeqitem || n.Type == NodeTypeSubseqitem)
}

// HasCitekey reports whether n carries a non-empty citekey.
func (n *Node) HasCitekey() bool {
	return n.Citekey != ""
}

// Walk visits n and every descendant in document order (depth-first,
// pre-order), matching the left-to-right, top-to-bottom ordering spec §5
// requires for edge emission.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// Leaves returns every leaf descendant of n (including n itself if it is a
// leaf), in document order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// AllNodes returns every node of the subtree rooted at n, in document order.
func (n *Node) AllNodes() []*Node {
	var nodes []*Node
	n.Walk(func(node *Node) {
		nodes = append(nodes, node)
	})
	return nodes
}
