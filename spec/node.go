// Package spec defines the canonical, format-agnostic document tree and
// builds it from extractor blocks. The tree is the pipeline's durable
// artifact: built once per conversion, serialized as JSON, and read by any
// number of renderers without mutation.
package spec

import (
	"strings"

	"github.com/google/uuid"
)

// Namespace prefixes every node type tag on the wire. Renderers dispatch on
// the tag's last path segment, so they keep working if the namespace ever
// changes.
const Namespace = "https://spec.nldoc.nl/Resource/"

// Kind is the closed vocabulary of node types.
type Kind string

const (
	KindDocument       Kind = "Document"
	KindHeading        Kind = "Heading"
	KindParagraph      Kind = "Paragraph"
	KindText           Kind = "Text"
	KindTable          Kind = "Table"
	KindTableHeaderRow Kind = "TableHeaderRow"
	KindTableRow       Kind = "TableRow"
	KindTableCell      Kind = "TableCell"
	KindBulletList     Kind = "BulletList"
	KindOrderedList    Kind = "OrderedList"
	KindListItem       Kind = "ListItem"

	// KindUnknown covers tags outside the vocabulary; renderers recurse
	// into such nodes' children rather than failing.
	KindUnknown Kind = ""
)

// Mark is an inline formatting attribute on a Text node, serialized as
// {"type":"bold"} to match the editor-facing wire format.
type Mark struct {
	Type string `json:"type"`
}

// Mark type tags.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
)

// Node is one node of the canonical tree. Exactly one root of kind Document
// exists per tree; Text nodes are leaves; IDs are unique within a build.
type Node struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Level    int     `json:"level,omitempty"` // Heading only: 10..60
	Order    int     `json:"order,omitempty"` // OrderedList items only: 1-based
	Text     string  `json:"text,omitempty"`  // Text only
	Marks    []Mark  `json:"marks,omitempty"` // Text only
	Children []*Node `json:"children,omitempty"`
}

// Kind resolves the node's type tag to the closed vocabulary by its last
// path segment. Unrecognized tags map to KindUnknown.
func (n *Node) Kind() Kind {
	name := n.Type
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	switch Kind(name) {
	case KindDocument, KindHeading, KindParagraph, KindText,
		KindTable, KindTableHeaderRow, KindTableRow, KindTableCell,
		KindBulletList, KindOrderedList, KindListItem:
		return Kind(name)
	default:
		return KindUnknown
	}
}

// newNode allocates a node of the given kind with a fresh unique ID.
func newNode(kind Kind) *Node {
	return &Node{
		ID:   uuid.NewString(),
		Type: Namespace + string(kind),
	}
}
