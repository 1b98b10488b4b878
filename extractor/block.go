// Package extractor turns raw PDF and DOCX bytes into an ordered sequence of
// typed content blocks: the transient, format-specific half of the conversion
// pipeline. Blocks are consumed by the spec package, which builds the
// canonical document tree from them.
package extractor

// BlockKind identifies the structural role of a Block.
type BlockKind string

const (
	KindHeading     BlockKind = "heading"
	KindParagraph   BlockKind = "paragraph"
	KindTable       BlockKind = "table"
	KindBulletList  BlockKind = "bulletList"
	KindOrderedList BlockKind = "orderedList"
)

// Run is a span of text carrying independent inline formatting flags.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// Marked reports whether the run carries any formatting at all.
func (r Run) Marked() bool {
	return r.Bold || r.Italic || r.Underline
}

// ListItem is a single entry of a bullet or ordered list block.
type ListItem struct {
	Text string
	Runs []Run
}

// Block is one extractor-produced unit of document content.
//
// Only the fields matching Kind are populated: Level for headings, Rows for
// tables, Items for lists. Runs carry inline formatting for headings,
// paragraphs and list items when the source format exposes it; extractors
// that cannot (PDF) leave Runs empty and downstream falls back to Text.
type Block struct {
	Kind  BlockKind
	Text  string
	Level int // headings only, 1-6
	Runs  []Run
	Rows  [][]string // tables only
	Items []ListItem // lists only
}

// Page is an ordered sequence of blocks from one source page. DOCX documents
// have no page geometry and yield a single logical page.
type Page struct {
	Number int
	Blocks []Block
}

// SinglePage wraps a flat block sequence as one logical page.
func SinglePage(blocks []Block) []Page {
	return []Page{{Number: 1, Blocks: blocks}}
}
