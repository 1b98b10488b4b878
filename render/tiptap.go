package render

import (
	"encoding/json"

	"github.com/nldoc/foliospec/spec"
)

// TipTapNode is the editor's JSON node shape. Text is a pointer so an empty
// text node still serializes its "text" key (TipTap requires it) while
// non-text nodes omit it entirely.
type TipTapNode struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []TipTapNode   `json:"content,omitempty"`
	Text    *string        `json:"text,omitempty"`
	Marks   []spec.Mark    `json:"marks,omitempty"`
}

// TipTap converts the canonical tree into a TipTap document. Unsupported
// node kinds render to nothing and are skipped by their parent; unrecognized
// mark tags are dropped. The conversion is lossy-safe and never fails.
func TipTap(root *spec.Node) TipTapNode {
	doc := TipTapNode{Type: "doc"}
	if root == nil || root.Kind() != spec.KindDocument {
		return doc
	}
	for _, c := range root.Children {
		if b, ok := tiptapBlock(c); ok {
			doc.Content = append(doc.Content, b)
		}
	}
	return doc
}

// TipTapJSON renders the tree straight to serialized TipTap JSON.
func TipTapJSON(root *spec.Node) ([]byte, error) {
	return json.Marshal(TipTap(root))
}

func tiptapBlock(n *spec.Node) (TipTapNode, bool) {
	switch n.Kind() {

	case spec.KindHeading:
		return TipTapNode{
			Type:    "heading",
			Attrs:   map[string]any{"level": headingTagLevel(n.Level)},
			Content: textContentOrEmpty(tiptapInline(n.Children)),
		}, true

	case spec.KindParagraph:
		return TipTapNode{
			Type:    "paragraph",
			Content: textContentOrEmpty(tiptapInline(n.Children)),
		}, true

	case spec.KindBulletList:
		return TipTapNode{Type: "bulletList", Content: tiptapBlocks(n.Children)}, true

	case spec.KindOrderedList:
		return TipTapNode{Type: "orderedList", Content: tiptapBlocks(n.Children)}, true

	case spec.KindListItem:
		return TipTapNode{Type: "listItem", Content: tiptapBlocks(n.Children)}, true

	case spec.KindTable:
		return tiptapTable(n), true

	default:
		return TipTapNode{}, false
	}
}

// tiptapBlocks renders a child sequence, dropping anything that renders to
// nothing.
func tiptapBlocks(children []*spec.Node) []TipTapNode {
	var out []TipTapNode
	for _, c := range children {
		if b, ok := tiptapBlock(c); ok {
			out = append(out, b)
		}
	}
	return out
}

// tiptapInline converts Text children to inline text nodes; anything else is
// skipped.
func tiptapInline(children []*spec.Node) []TipTapNode {
	var out []TipTapNode
	for _, c := range children {
		if c.Kind() != spec.KindText {
			continue
		}
		text := c.Text
		out = append(out, TipTapNode{
			Type:  "text",
			Text:  &text,
			Marks: tiptapMarks(c.Marks),
		})
	}
	return out
}

// tiptapMarks maps canonical mark tags 1:1 onto the editor's, accepting the
// strong/em aliases and dropping anything unrecognized.
func tiptapMarks(marks []spec.Mark) []spec.Mark {
	var out []spec.Mark
	for _, m := range marks {
		switch m.Type {
		case spec.MarkBold, "strong":
			out = append(out, spec.Mark{Type: spec.MarkBold})
		case spec.MarkItalic, "em":
			out = append(out, spec.Mark{Type: spec.MarkItalic})
		case spec.MarkUnderline:
			out = append(out, spec.Mark{Type: spec.MarkUnderline})
		}
	}
	return out
}

// tiptapTable splits rows by header/regular kind into tableHeader/tableCell
// leaf cells, each defaulting to an empty paragraph when its own content is
// empty.
func tiptapTable(n *spec.Node) TipTapNode {
	table := TipTapNode{Type: "table"}
	for _, row := range n.Children {
		var cellType string
		switch row.Kind() {
		case spec.KindTableHeaderRow:
			cellType = "tableHeader"
		case spec.KindTableRow:
			cellType = "tableCell"
		default:
			continue
		}

		rowNode := TipTapNode{Type: "tableRow"}
		for _, cell := range row.Children {
			content := tiptapBlocks(cell.Children)
			if len(content) == 0 {
				content = []TipTapNode{emptyParagraph()}
			}
			rowNode.Content = append(rowNode.Content, TipTapNode{
				Type:    cellType,
				Content: content,
			})
		}
		table.Content = append(table.Content, rowNode)
	}
	return table
}

// textContentOrEmpty guarantees the non-empty content arrays TipTap requires
// for paragraphs and headings.
func textContentOrEmpty(content []TipTapNode) []TipTapNode {
	if len(content) > 0 {
		return content
	}
	empty := ""
	return []TipTapNode{{Type: "text", Text: &empty}}
}

func emptyParagraph() TipTapNode {
	return TipTapNode{Type: "paragraph", Content: textContentOrEmpty(nil)}
}
