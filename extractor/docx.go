package extractor

// DOCX files are ZIP archives containing OOXML. The main document lives at
// word/document.xml. We stream-parse that XML in body order, tracking
// paragraph/run/table context, and classify each paragraph into a heading,
// list item or plain paragraph while an explicit two-state accumulator
// collects consecutive list items into one block.

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Classification thresholds for DOCX paragraphs. OOXML font sizes (w:sz) are
// half-points, so 28 means 14 pt.
const (
	orderedNumIDMin    = 10 // numbering ids below this are bullet definitions
	boldPromoMaxWords  = 15 // longest text still considered a bold label
	boldPromoShortWord = 8  // below this, boldness alone promotes
	boldPromoMinSz     = 28 // half-points; 14 pt
	boldPromoLevel     = 3  // heading level assigned to promoted labels
)

// bulletGlyphs are leading characters that mark a paragraph as a bullet item
// when no numbering properties or list style are present.
const bulletGlyphs = "•●○▪-*"

// ExtractDOCX turns DOCX bytes into an ordered block sequence (one logical
// page). Any internal error — not a ZIP, no word/document.xml, malformed
// XML — yields nil rather than an error: the caller treats an empty result
// as "this extractor has nothing to say".
func ExtractDOCX(data []byte) []Block {
	blocks, err := extractDocx(data)
	if err != nil {
		return nil
	}
	return blocks
}

func extractDocx(data []byte) ([]Block, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	return parseDocumentXML(rc)
}

// ---------------------------------------------------------------------------
// List accumulation state machine
// ---------------------------------------------------------------------------

// listState accumulates consecutive list paragraphs. It is either empty
// (building == false) or building one list of a single kind. Tables, empty
// paragraphs, headings and plain paragraphs flush it; a list paragraph of a
// different kind flushes the old list and starts a new one.
type listState struct {
	building bool
	kind     BlockKind
	items    []ListItem
}

// flush emits the in-progress list, if any, and resets to the empty state.
func (s *listState) flush(blocks []Block) []Block {
	if s.building && len(s.items) > 0 {
		blocks = append(blocks, Block{Kind: s.kind, Items: s.items})
	}
	*s = listState{}
	return blocks
}

// add appends an item to the in-progress list, first flushing when the kind
// changes or starting a new list when none is being built.
func (s *listState) add(kind BlockKind, item ListItem, blocks []Block) []Block {
	if s.building && s.kind != kind {
		blocks = s.flush(blocks)
	}
	if !s.building {
		*s = listState{building: true, kind: kind}
	}
	s.items = append(s.items, item)
	return blocks
}

// ---------------------------------------------------------------------------
// Streaming XML parser
// ---------------------------------------------------------------------------

type docxParser struct {
	blocks []Block
	list   listState

	// element name stack for context queries
	stack []string

	// paragraph state
	inPara     bool
	paraStyle  string
	hasNumPr   bool
	numID      int
	runs       []Run
	firstRunSz int
	paraText   strings.Builder

	// run state
	inRun bool
	run   Run
	runSz int

	// table state
	tblDepth  int
	rows      [][]string
	currRow   []string
	inCell    bool
	cellParas []string
}

func (p *docxParser) push(name string) { p.stack = append(p.stack, name) }
func (p *docxParser) pop() {
	if len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}
func (p *docxParser) inCtx(name string) bool {
	for _, s := range p.stack {
		if s == name {
			return true
		}
	}
	return false
}

func parseDocumentXML(r io.Reader) ([]Block, error) {
	dec := xml.NewDecoder(r)
	p := &docxParser{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.push(t.Name.Local)
			p.handleStart(t)
		case xml.EndElement:
			p.handleEnd(t.Name.Local)
			p.pop()
		case xml.CharData:
			p.handleText(string(t))
		}
	}

	// End of body flushes any open list.
	return p.list.flush(p.blocks), nil
}

func (p *docxParser) handleStart(t xml.StartElement) {
	switch t.Name.Local {

	// --- table ---
	case "tbl":
		p.tblDepth++
		if p.tblDepth == 1 {
			// A table interrupts any list being built.
			p.blocks = p.list.flush(p.blocks)
			p.rows = nil
		}
	case "tr":
		if p.tblDepth == 1 {
			p.currRow = nil
		}
	case "tc":
		if p.tblDepth == 1 {
			p.inCell = true
			p.cellParas = nil
		}

	// --- paragraph ---
	case "p":
		p.inPara = true
		p.paraStyle = ""
		p.hasNumPr = false
		p.numID = 0
		p.runs = nil
		p.firstRunSz = 0
		p.paraText.Reset()
	case "pStyle":
		if p.inPara && p.inCtx("pPr") {
			p.paraStyle = attrVal(t, "val")
		}
	case "numPr":
		if p.inPara && p.inCtx("pPr") {
			p.hasNumPr = true
		}
	case "numId":
		if p.inPara && p.inCtx("numPr") {
			fmt.Sscanf(attrVal(t, "val"), "%d", &p.numID)
		}

	// --- run ---
	case "r":
		if p.inPara {
			p.inRun = true
			p.run = Run{}
			p.runSz = 0
		}
	case "b":
		if p.inRun && p.inCtx("rPr") && !attrOff(t) {
			p.run.Bold = true
		}
	case "i":
		if p.inRun && p.inCtx("rPr") && !attrOff(t) {
			p.run.Italic = true
		}
	case "u":
		if p.inRun && p.inCtx("rPr") && attrVal(t, "val") != "none" && !attrOff(t) {
			p.run.Underline = true
		}
	case "sz":
		if p.inRun && p.inCtx("rPr") {
			fmt.Sscanf(attrVal(t, "val"), "%d", &p.runSz)
		}
	case "br":
		if p.inRun {
			p.run.Text += "\n"
		}
	case "tab":
		if p.inRun {
			p.run.Text += "\t"
		}
	}
}

func (p *docxParser) handleEnd(local string) {
	switch local {

	case "r":
		if p.inRun {
			if p.run.Text != "" {
				if len(p.runs) == 0 {
					p.firstRunSz = p.runSz
				}
				p.runs = append(p.runs, p.run)
				p.paraText.WriteString(p.run.Text)
			}
			p.inRun = false
		}

	case "p":
		if p.inPara {
			p.endParagraph()
			p.inPara = false
		}

	case "tc":
		if p.tblDepth == 1 && p.inCell {
			p.currRow = append(p.currRow, strings.Join(p.cellParas, "\n"))
			p.inCell = false
			p.cellParas = nil
		}

	case "tr":
		if p.tblDepth == 1 {
			p.rows = append(p.rows, p.currRow)
			p.currRow = nil
		}

	case "tbl":
		p.tblDepth--
		if p.tblDepth == 0 && len(p.rows) > 0 {
			p.blocks = append(p.blocks, Block{Kind: KindTable, Rows: p.rows})
			p.rows = nil
		}
	}
}

func (p *docxParser) handleText(text string) {
	if p.inRun && p.inCtx("t") {
		p.run.Text += text
	}
}

// endParagraph classifies a finished paragraph and feeds it to the block
// stream or, inside a table cell, to the cell text.
func (p *docxParser) endParagraph() {
	text := strings.TrimSpace(p.paraText.String())

	if p.inCell {
		p.cellParas = append(p.cellParas, text)
		return
	}
	if p.tblDepth > 0 {
		// Stray paragraph between table rows; nothing to attach it to.
		return
	}

	// An empty paragraph terminates any list being built.
	if text == "" {
		p.blocks = p.list.flush(p.blocks)
		return
	}

	style := strings.ToLower(p.paraStyle)

	if isHeadingStyle(style) {
		p.blocks = p.list.flush(p.blocks)
		p.blocks = append(p.blocks, Block{
			Kind:  KindHeading,
			Level: headingLevel(style),
			Text:  text,
			Runs:  p.runs,
		})
		return
	}

	if kind, ok := p.detectList(style, text); ok {
		p.blocks = p.list.add(kind, ListItem{Text: text, Runs: p.runs}, p.blocks)
		return
	}

	p.blocks = p.list.flush(p.blocks)

	if p.isBoldLabel(text) {
		p.blocks = append(p.blocks, Block{
			Kind:  KindHeading,
			Level: boldPromoLevel,
			Text:  text,
			Runs:  p.runs,
		})
		return
	}

	p.blocks = append(p.blocks, Block{
		Kind: KindParagraph,
		Text: text,
		Runs: p.runs,
	})
}

// detectList decides whether the current paragraph is a list item and of
// which kind. Precedence: explicit numbering properties, then list-ish style
// names, then the text prefix.
func (p *docxParser) detectList(style, text string) (BlockKind, bool) {
	if p.hasNumPr {
		if p.numID >= orderedNumIDMin || strings.Contains(style, "number") {
			return KindOrderedList, true
		}
		return KindBulletList, true
	}
	if strings.Contains(style, "list") {
		if strings.Contains(style, "number") || strings.Contains(style, "ordered") {
			return KindOrderedList, true
		}
		return KindBulletList, true
	}
	return detectListPrefix(text)
}

// detectListPrefix matches bare-text list markers: a bullet glyph, or one or
// more digits followed by '.', ')' or ':'.
func detectListPrefix(text string) (BlockKind, bool) {
	runes := []rune(text)
	if len(runes) == 0 {
		return "", false
	}
	if strings.ContainsRune(bulletGlyphs, runes[0]) {
		return KindBulletList, true
	}
	i := 0
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	if i > 0 && i < len(runes) && (runes[i] == '.' || runes[i] == ')' || runes[i] == ':') {
		return KindOrderedList, true
	}
	return "", false
}

// isBoldLabel reports whether a non-styled paragraph should be promoted to a
// heading: short text whose first run is bold, with either an explicit large
// font size or very few words.
func (p *docxParser) isBoldLabel(text string) bool {
	if len(p.runs) == 0 || !p.runs[0].Bold {
		return false
	}
	words := len(strings.Fields(text))
	if words >= boldPromoMaxWords {
		return false
	}
	if p.firstRunSz >= boldPromoMinSz {
		return true
	}
	return words < boldPromoShortWord
}

// isHeadingStyle matches Word's built-in heading styles, including the Dutch
// "Kop" variants.
func isHeadingStyle(style string) bool {
	return strings.Contains(style, "heading") ||
		strings.Contains(style, "title") ||
		strings.Contains(style, "kop")
}

// headingLevel extracts the first digit from a style name ("heading2",
// "kop3"), defaulting to 1 when the name carries none. Out-of-range values
// are clamped later, when the canonical tree is built.
func headingLevel(style string) int {
	for _, r := range style {
		if r >= '0' && r <= '9' {
			return int(r - '0')
		}
	}
	return 1
}

func attrVal(t xml.StartElement, localName string) string {
	for _, a := range t.Attr {
		if a.Name.Local == localName {
			return a.Value
		}
	}
	return ""
}

// attrOff reports whether a toggle property (w:b, w:i, w:u) is explicitly
// switched off via val="0" or val="false".
func attrOff(t xml.StartElement) bool {
	v := attrVal(t, "val")
	return v == "0" || v == "false"
}
