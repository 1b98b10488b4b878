// Package render serializes the canonical document tree into its target
// formats: a standalone HTML page, a TipTap JSON document, and Markdown.
// All renderers are read-only over the tree and total: unknown node kinds
// degrade to their children (HTML) or are skipped (TipTap), never error.
package render

import (
	"fmt"
	"strings"

	"github.com/nldoc/foliospec/spec"
)

// HTML renders the tree as a complete HTML5 document: the body embedded in
// a fixed static shell with an inline stylesheet.
func HTML(root *spec.Node) string {
	return htmlShellHead + HTMLBody(root) + htmlShellFoot
}

// HTMLBody renders just the document content, without the page shell.
func HTMLBody(root *spec.Node) string {
	var sb strings.Builder
	writeNode(&sb, root)
	return sb.String()
}

func writeChildren(sb *strings.Builder, n *spec.Node) {
	for _, c := range n.Children {
		writeNode(sb, c)
	}
}

func writeNode(sb *strings.Builder, n *spec.Node) {
	if n == nil {
		return
	}
	switch n.Kind() {

	case spec.KindText:
		writeMarked(sb, n.Text, n.Marks)

	case spec.KindHeading:
		level := headingTagLevel(n.Level)
		fmt.Fprintf(sb, "<h%d>", level)
		writeChildren(sb, n)
		fmt.Fprintf(sb, "</h%d>\n", level)

	case spec.KindParagraph:
		sb.WriteString("<p>")
		writeChildren(sb, n)
		sb.WriteString("</p>\n")

	case spec.KindBulletList:
		sb.WriteString("<ul>\n")
		writeChildren(sb, n)
		sb.WriteString("</ul>\n")

	case spec.KindOrderedList:
		sb.WriteString("<ol>\n")
		writeChildren(sb, n)
		sb.WriteString("</ol>\n")

	case spec.KindListItem:
		sb.WriteString("<li>")
		writeChildren(sb, n)
		sb.WriteString("</li>\n")

	case spec.KindTable:
		sb.WriteString("<table>\n")
		writeChildren(sb, n)
		sb.WriteString("</table>\n")

	case spec.KindTableHeaderRow:
		writeRow(sb, n, "th")

	case spec.KindTableRow:
		writeRow(sb, n, "td")

	case spec.KindTableCell:
		// The row supplies the cell tag; a cell reached directly just
		// contributes its content.
		writeChildren(sb, n)

	case spec.KindDocument:
		writeChildren(sb, n)

	default:
		// Unknown kind: degrade to the children, or nothing.
		writeChildren(sb, n)
	}
}

// writeRow emits a <tr> whose TableCell children are wrapped in the given
// cell tag (th for header rows, td otherwise).
func writeRow(sb *strings.Builder, row *spec.Node, cellTag string) {
	sb.WriteString("<tr>")
	for _, cell := range row.Children {
		sb.WriteString("<" + cellTag + ">")
		writeChildren(sb, cell)
		sb.WriteString("</" + cellTag + ">")
	}
	sb.WriteString("</tr>\n")
}

// writeMarked escapes the text and wraps it per present mark in a fixed
// order — bold, then italic, then underline — regardless of the order the
// marks were recorded in, so equivalent trees render identically.
func writeMarked(sb *strings.Builder, text string, marks []spec.Mark) {
	out := escapeHTML(text)
	if hasMark(marks, spec.MarkBold, "strong") {
		out = "<strong>" + out + "</strong>"
	}
	if hasMark(marks, spec.MarkItalic, "em") {
		out = "<em>" + out + "</em>"
	}
	if hasMark(marks, spec.MarkUnderline, "") {
		out = "<u>" + out + "</u>"
	}
	sb.WriteString(out)
}

func hasMark(marks []spec.Mark, tag, alias string) bool {
	for _, m := range marks {
		if m.Type == tag || (alias != "" && m.Type == alias) {
			return true
		}
	}
	return false
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

const htmlShellHead = `<!DOCTYPE html>
<html lang="nl">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Geconverteerd Document</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 2rem; color: #333; }
        h1, h2, h3, h4, h5, h6 { margin-top: 1.5em; margin-bottom: 0.5em; color: #1a1a1a; }
        h1 { font-size: 2rem; border-bottom: 2px solid #eee; padding-bottom: 0.3em; }
        h2 { font-size: 1.5rem; border-bottom: 1px solid #eee; padding-bottom: 0.2em; }
        h3 { font-size: 1.25rem; }
        p { margin: 1em 0; }
        ul, ol { margin: 1em 0; padding-left: 2em; }
        li { margin: 0.3em 0; }
        table { border-collapse: collapse; width: 100%; margin: 1em 0; }
        th, td { border: 1px solid #ddd; padding: 0.75em; text-align: left; }
        th { background-color: #f5f5f5; font-weight: bold; }
        tr:nth-child(even) { background-color: #fafafa; }
        strong { font-weight: bold; }
        em { font-style: italic; }
        u { text-decoration: underline; }
    </style>
</head>
<body>
`

const htmlShellFoot = `</body>
</html>
`

// headingTagLevel recovers the h1-h6 tag level from a canonical heading
// level (10..60), clamping anything out of range.
func headingTagLevel(level int) int {
	l := level / 10
	if l < 1 {
		return 1
	}
	if l > 6 {
		return 6
	}
	return l
}
