package render

import (
	"strings"
	"testing"

	"github.com/nldoc/foliospec/spec"
)

func TestMarkdown(t *testing.T) {
	root := node(spec.KindDocument,
		heading(10, "Title"),
		node(spec.KindParagraph, textNode("Gewone tekst.")),
		node(spec.KindBulletList,
			node(spec.KindListItem, node(spec.KindParagraph, textNode("punt"))),
		),
	)

	got, err := Markdown(root)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Title", "Gewone tekst.", "- punt"} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown %q missing %q", got, want)
		}
	}
}

func TestMarkdown_Marks(t *testing.T) {
	root := node(spec.KindDocument,
		node(spec.KindParagraph, textNode("vet", spec.Mark{Type: spec.MarkBold})),
	)
	got, err := Markdown(root)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "**vet**") {
		t.Errorf("markdown %q missing bold emphasis", got)
	}
}
