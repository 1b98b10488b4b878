package extractor

// PDF text extraction via the ledongthuc/pdf text layer. The library yields
// positioned spans (font name, size, X/Y); we reassemble those into lines in
// reading order and classify each line as heading or paragraph from its
// maximum font size and font weight. Scanned (image-only) PDFs have no text
// layer and come out empty.

import (
	"bytes"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Heuristics are the named thresholds of the PDF line classifier. They are a
// parameter rather than constants so tests and callers can tune them
// independently of the extraction mechanics.
type Heuristics struct {
	// H1FontSize is the minimum font size for a level-1 heading.
	H1FontSize float64
	// H2FontSize is the minimum font size for a level-2 heading; a bold
	// span anywhere in the line promotes to level 2 as well.
	H2FontSize float64
	// LineTolerance is the vertical distance (points) within which spans
	// are considered part of the same line.
	LineTolerance float64
	// WordGap is the fraction of the font size a horizontal gap between
	// spans must exceed to be rendered as a space.
	WordGap float64
}

// DefaultHeuristics returns the tuned production thresholds.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		H1FontSize:    18,
		H2FontSize:    16,
		LineTolerance: 3.0,
		WordGap:       0.3,
	}
}

// ExtractPDF turns PDF bytes into ordered pages of classified blocks. A
// malformed PDF yields nil: the library errors — and the panics it is known
// to raise on hostile input — never reach the caller.
func ExtractPDF(data []byte, h Heuristics) (pages []Page) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}

	total := reader.NumPage()
	for n := 1; n <= total; n++ {
		pages = append(pages, Page{Number: n, Blocks: extractPage(reader, n, h)})
	}
	return pages
}

// extractPage pulls the blocks of one page, absorbing per-page panics so a
// single corrupt content stream does not void the rest of the document.
func extractPage(reader *pdf.Reader, n int, h Heuristics) (blocks []Block) {
	defer func() {
		if r := recover(); r != nil {
			blocks = nil
		}
	}()

	page := reader.Page(n)
	if page.V.IsNull() {
		return nil
	}
	return classifyLines(groupLines(page.Content().Text, h), h)
}

// pdfLine is a reassembled line of text spans sharing a baseline.
type pdfLine struct {
	spans   []pdf.Text
	y       float64
	maxSize float64
	bold    bool
}

// groupLines clusters spans by vertical position. Spans arrive roughly in
// content-stream order; sorting by Y descending (PDF origin is bottom-left)
// then X restores reading order.
func groupLines(texts []pdf.Text, h Heuristics) []pdfLine {
	spans := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		spans = append(spans, t)
	}
	if len(spans) == 0 {
		return nil
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Y != spans[j].Y {
			return spans[i].Y > spans[j].Y
		}
		return spans[i].X < spans[j].X
	})

	var lines []pdfLine
	for _, t := range spans {
		if len(lines) == 0 || abs(t.Y-lines[len(lines)-1].y) > h.LineTolerance {
			lines = append(lines, pdfLine{y: t.Y})
		}
		line := &lines[len(lines)-1]
		line.spans = append(line.spans, t)
		if t.FontSize > line.maxSize {
			line.maxSize = t.FontSize
		}
		if strings.Contains(strings.ToLower(t.Font), "bold") {
			line.bold = true
		}
	}
	return lines
}

// classifyLines merges each line's spans into one string and classifies it.
// Whitespace-only lines are dropped; every surviving line passes through the
// encoding fixer before classification.
func classifyLines(lines []pdfLine, h Heuristics) []Block {
	var blocks []Block
	for _, line := range lines {
		text := strings.TrimSpace(FixEncoding(mergeSpans(line.spans, h)))
		if text == "" {
			continue
		}

		switch {
		case line.maxSize >= h.H1FontSize:
			blocks = append(blocks, Block{Kind: KindHeading, Level: 1, Text: text})
		case line.maxSize >= h.H2FontSize || line.bold:
			blocks = append(blocks, Block{Kind: KindHeading, Level: 2, Text: text})
		default:
			blocks = append(blocks, Block{Kind: KindParagraph, Text: text})
		}
	}
	return blocks
}

// mergeSpans joins a line's spans left to right, inserting a space where the
// horizontal gap between adjacent spans exceeds the word-gap threshold.
func mergeSpans(spans []pdf.Text, h Heuristics) string {
	var sb strings.Builder
	for i, t := range spans {
		if i > 0 {
			prev := spans[i-1]
			if t.X-(prev.X+prev.W) > prev.FontSize*h.WordGap {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
	return sb.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
