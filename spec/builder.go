package spec

import (
	"fmt"
	"strings"

	"github.com/nldoc/foliospec/extractor"
)

// Build converts extractor output into a canonical tree rooted at a single
// Document node, preserving block order across pages. Each block maps to one
// subtree with full list/table/mark fidelity. When extraction produced no
// blocks at all, the Document still gets one placeholder paragraph naming
// the expected page count, so downstream renderers always receive a valid
// tree.
func Build(pages []extractor.Page, pageCount int) *Node {
	doc := newNode(KindDocument)
	for _, page := range pages {
		for _, b := range page.Blocks {
			if n := buildBlock(b); n != nil {
				doc.Children = append(doc.Children, n)
			}
		}
	}
	if len(doc.Children) == 0 {
		doc.Children = append(doc.Children, fallbackParagraph(pageCount))
	}
	return doc
}

func buildBlock(b extractor.Block) *Node {
	switch b.Kind {
	case extractor.KindHeading:
		h := newNode(KindHeading)
		h.Level = clampLevel(b.Level) * 10
		h.Children = inlineNodes(b.Runs, b.Text)
		return h

	case extractor.KindParagraph:
		if strings.TrimSpace(b.Text) == "" {
			return nil
		}
		p := newNode(KindParagraph)
		p.Children = inlineNodes(b.Runs, b.Text)
		return p

	case extractor.KindTable:
		return buildTable(b.Rows)

	case extractor.KindBulletList:
		return buildList(KindBulletList, b.Items)

	case extractor.KindOrderedList:
		return buildList(KindOrderedList, b.Items)

	default:
		return nil
	}
}

// buildTable wraps each row's cells in TableCell → Paragraph → Text. The
// first row is typed as the header row.
func buildTable(rows [][]string) *Node {
	if len(rows) == 0 {
		return nil
	}
	table := newNode(KindTable)
	for i, row := range rows {
		kind := KindTableRow
		if i == 0 {
			kind = KindTableHeaderRow
		}
		rowNode := newNode(kind)
		for _, cellText := range row {
			cell := newNode(KindTableCell)
			para := newNode(KindParagraph)
			text := newNode(KindText)
			text.Text = cellText
			para.Children = []*Node{text}
			cell.Children = []*Node{para}
			rowNode.Children = append(rowNode.Children, cell)
		}
		table.Children = append(table.Children, rowNode)
	}
	return table
}

// buildList wraps each item in ListItem → Paragraph with the item's inline
// content. Ordered list items carry a 1-based order.
func buildList(kind Kind, items []extractor.ListItem) *Node {
	if len(items) == 0 {
		return nil
	}
	list := newNode(kind)
	for i, item := range items {
		li := newNode(KindListItem)
		if kind == KindOrderedList {
			li.Order = i + 1
		}
		para := newNode(KindParagraph)
		para.Children = inlineNodes(item.Runs, item.Text)
		li.Children = []*Node{para}
		list.Children = append(list.Children, li)
	}
	return list
}

// inlineNodes converts runs to Text nodes carrying their marks. Blocks
// without usable runs fall back to a single unmarked Text node holding the
// plain text.
func inlineNodes(runs []extractor.Run, fallback string) []*Node {
	var out []*Node
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		t := newNode(KindText)
		t.Text = r.Text
		t.Marks = runMarks(r)
		out = append(out, t)
	}
	if len(out) == 0 {
		t := newNode(KindText)
		t.Text = fallback
		out = append(out, t)
	}
	return out
}

// runMarks emits mark tags in a fixed order so the tree is stable regardless
// of how the source recorded the attributes.
func runMarks(r extractor.Run) []Mark {
	var marks []Mark
	if r.Bold {
		marks = append(marks, Mark{Type: MarkBold})
	}
	if r.Italic {
		marks = append(marks, Mark{Type: MarkItalic})
	}
	if r.Underline {
		marks = append(marks, Mark{Type: MarkUnderline})
	}
	return marks
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// fallbackParagraph is the degraded result for documents whose text could
// not be extracted.
func fallbackParagraph(pageCount int) *Node {
	p := newNode(KindParagraph)
	t := newNode(KindText)
	t.Text = fmt.Sprintf("Dit document bevat %d pagina's maar de tekst kon niet worden geëxtraheerd.", pageCount)
	p.Children = []*Node{t}
	return p
}
