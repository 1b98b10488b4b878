package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nldoc/foliospec/spec"
)

func node(kind spec.Kind, children ...*spec.Node) *spec.Node {
	return &spec.Node{ID: "id-" + string(kind), Type: spec.Namespace + string(kind), Children: children}
}

func textNode(text string, marks ...spec.Mark) *spec.Node {
	return &spec.Node{ID: "id-text", Type: spec.Namespace + string(spec.KindText), Text: text, Marks: marks}
}

func heading(level int, text string) *spec.Node {
	h := node(spec.KindHeading, textNode(text))
	h.Level = level
	return h
}

func TestHTMLBody_HeadingAndParagraph(t *testing.T) {
	root := node(spec.KindDocument,
		heading(10, "Title"),
		node(spec.KindParagraph, textNode("Hello world.")),
	)
	want := "<h1>Title</h1>\n<p>Hello world.</p>\n"
	if got := HTMLBody(root); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHTMLBody_HeadingLevels(t *testing.T) {
	tests := []struct {
		level int
		tag   string
	}{
		{10, "h1"}, {20, "h2"}, {60, "h6"},
		{0, "h1"},  // clamped
		{70, "h6"}, // clamped
		{25, "h2"}, // truncated
	}
	for _, tt := range tests {
		got := HTMLBody(heading(tt.level, "kop"))
		want := "<" + tt.tag + ">kop</" + tt.tag + ">\n"
		if got != want {
			t.Errorf("level %d: got %q, want %q", tt.level, got, want)
		}
	}
}

func TestHTMLBody_Marks(t *testing.T) {
	p := node(spec.KindParagraph, textNode("Hi", spec.Mark{Type: spec.MarkBold}))
	if got := HTMLBody(p); got != "<p><strong>Hi</strong></p>\n" {
		t.Errorf("bold: got %q", got)
	}

	all := node(spec.KindParagraph, textNode("x",
		spec.Mark{Type: spec.MarkUnderline},
		spec.Mark{Type: spec.MarkBold},
		spec.Mark{Type: spec.MarkItalic},
	))
	// Fixed nesting regardless of recorded order.
	if got := HTMLBody(all); got != "<p><u><em><strong>x</strong></em></u></p>\n" {
		t.Errorf("all marks: got %q", got)
	}
}

func TestHTMLBody_MarkAliases(t *testing.T) {
	p := node(spec.KindParagraph,
		textNode("a", spec.Mark{Type: "strong"}),
		textNode("b", spec.Mark{Type: "em"}),
	)
	if got := HTMLBody(p); got != "<p><strong>a</strong><em>b</em></p>\n" {
		t.Errorf("got %q", got)
	}
}

func TestHTMLBody_Escaping(t *testing.T) {
	p := node(spec.KindParagraph, textNode(`<b>&"fish"'n'chips`))
	got := HTMLBody(p)
	want := "<p>&lt;b&gt;&amp;&quot;fish&quot;&#x27;n&#x27;chips</p>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHTMLBody_Lists(t *testing.T) {
	ul := node(spec.KindBulletList,
		node(spec.KindListItem, node(spec.KindParagraph, textNode("een"))),
		node(spec.KindListItem, node(spec.KindParagraph, textNode("twee"))),
	)
	want := "<ul>\n<li><p>een</p>\n</li>\n<li><p>twee</p>\n</li>\n</ul>\n"
	if got := HTMLBody(ul); got != want {
		t.Errorf("ul: got %q, want %q", got, want)
	}

	ol := node(spec.KindOrderedList,
		node(spec.KindListItem, node(spec.KindParagraph, textNode("eerste"))),
	)
	got := HTMLBody(ol)
	if !strings.HasPrefix(got, "<ol>\n") || !strings.HasSuffix(got, "</ol>\n") {
		t.Errorf("ol: got %q", got)
	}
}

func TestHTMLBody_Table(t *testing.T) {
	cell := func(text string) *spec.Node {
		return node(spec.KindTableCell, node(spec.KindParagraph, textNode(text)))
	}
	table := node(spec.KindTable,
		node(spec.KindTableHeaderRow, cell("Naam"), cell("Waarde")),
		node(spec.KindTableRow, cell("Alice"), cell("42")),
	)
	got := HTMLBody(table)
	want := "<table>\n" +
		"<tr><th><p>Naam</p>\n</th><th><p>Waarde</p>\n</th></tr>\n" +
		"<tr><td><p>Alice</p>\n</td><td><p>42</p>\n</td></tr>\n" +
		"</table>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHTMLBody_UnknownNodeDegradesToChildren(t *testing.T) {
	image := &spec.Node{
		Type:     spec.Namespace + "Image",
		Children: []*spec.Node{node(spec.KindParagraph, textNode("bijschrift"))},
	}
	if got := HTMLBody(image); got != "<p>bijschrift</p>\n" {
		t.Errorf("got %q", got)
	}
}

func TestHTML_Shell(t *testing.T) {
	doc := HTML(node(spec.KindDocument, node(spec.KindParagraph, textNode("inhoud"))))
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="nl">`,
		"<title>Geconverteerd Document</title>",
		"<body>",
		"<p>inhoud</p>",
		"</html>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("shell missing %q", want)
		}
	}
}

func TestRenderersLeaveTreeUntouched(t *testing.T) {
	root := node(spec.KindDocument,
		heading(20, "Kop"),
		node(spec.KindTable,
			node(spec.KindTableHeaderRow, node(spec.KindTableCell, node(spec.KindParagraph, textNode("cel")))),
		),
	)

	before, err := json.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}

	HTML(root)
	if _, err := TipTapJSON(root); err != nil {
		t.Fatal(err)
	}

	after, err := json.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Errorf("tree mutated by rendering:\nbefore %s\nafter  %s", before, after)
	}
}
