// Package converter orchestrates one document conversion end to end: sniff
// the stored bytes, run the matching extractor, build the canonical tree,
// and persist the tree plus the requested renderings back to blob storage.
//
// Conversions are synchronous and share no state, so any number may run
// concurrently against the same store.
package converter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/nldoc/foliospec/blob"
	"github.com/nldoc/foliospec/config"
	"github.com/nldoc/foliospec/extractor"
	"github.com/nldoc/foliospec/render"
	"github.com/nldoc/foliospec/spec"
)

// Target content types selectable per job. HTML is always produced; the
// others are rendered additionally when requested.
const (
	TargetHTML     = "text/html"
	TargetTipTap   = "application/vnd.nldoc.tiptap+json"
	TargetMarkdown = "text/markdown"
)

// DefaultPageCount is assumed when a job carries no page count hint; it only
// surfaces in the fallback placeholder text.
const DefaultPageCount = 10

// Job identifies one document to convert.
type Job struct {
	// Bucket holding the input document; the configured files bucket is
	// used when empty.
	Bucket string
	// Filename is the object key of the input document.
	Filename string
	// TargetFileType selects an additional rendering (TipTap or
	// Markdown); HTML and the canonical spec JSON are always written.
	TargetFileType string
	// PageCount is a hint used by the fallback placeholder when nothing
	// can be extracted.
	PageCount int
}

// Result records where the conversion artifacts were stored.
type Result struct {
	DocID       string             `json:"docId"`
	FileType    extractor.FileType `json:"fileType"`
	SpecKey     string             `json:"specKey"`
	HTMLKey     string             `json:"htmlKey"`
	TipTapKey   string             `json:"tiptapKey,omitempty"`
	MarkdownKey string             `json:"markdownKey,omitempty"`
	// Fallback is true when extraction produced no content and the tree
	// holds only the placeholder paragraph.
	Fallback bool `json:"fallback"`
}

// Pipeline is the conversion surface consumed by the serving layer; the
// interface exists so tests can inject a stub.
type Pipeline interface {
	Convert(ctx context.Context, job Job) (*Result, error)
	DetectFileType(ctx context.Context, bucket, key string) extractor.FileType
}

// Converter implements Pipeline against a blob store.
type Converter struct {
	store  blob.Store
	cfg    *config.Config
	heur   extractor.Heuristics
	logger *slog.Logger
}

// New creates a Converter with default extraction heuristics.
func New(store blob.Store, cfg *config.Config) *Converter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		store:  store,
		cfg:    cfg,
		heur:   extractor.DefaultHeuristics(),
		logger: logger,
	}
}

// DetectFileType sniffs a stored object's magic bytes. Read errors classify
// as unknown, never fail.
func (c *Converter) DetectFileType(ctx context.Context, bucket, key string) extractor.FileType {
	prefix, err := c.store.GetRange(ctx, bucket, key, extractor.SniffLen)
	if err != nil {
		return extractor.FileTypeUnknown
	}
	return extractor.DetectFileType(prefix)
}

// Convert runs one conversion job. Malformed input degrades to the fallback
// tree rather than failing; only blob I/O reports errors.
func (c *Converter) Convert(ctx context.Context, job Job) (*Result, error) {
	bucket := job.Bucket
	if bucket == "" {
		bucket = c.cfg.FilesBucket
	}
	pageCount := job.PageCount
	if pageCount <= 0 {
		pageCount = DefaultPageCount
	}
	docID := docIDFromFilename(job.Filename)

	fileType := c.DetectFileType(ctx, bucket, job.Filename)

	data, err := c.store.Get(ctx, bucket, job.Filename)
	if err != nil {
		return nil, fmt.Errorf("download %s/%s: %w", bucket, job.Filename, err)
	}
	if int64(len(data)) > c.cfg.MaxFileSizeBytes {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", len(data), c.cfg.MaxFileSizeBytes)
	}

	pages := c.extract(fileType, data)
	tree := spec.Build(pages, pageCount)

	res := &Result{
		DocID:    docID,
		FileType: fileType,
		Fallback: blockCount(pages) == 0,
	}

	specJSON, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("marshal spec: %w", err)
	}
	res.SpecKey = docID + ".spec.json"
	if err := c.store.Put(ctx, c.cfg.FilesBucket, res.SpecKey, specJSON, "application/json"); err != nil {
		return nil, fmt.Errorf("store spec: %w", err)
	}

	html := render.HTML(tree)
	res.HTMLKey = docID + ".html"
	if err := c.store.Put(ctx, c.cfg.OutputBucket, res.HTMLKey, []byte(html), "text/html; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("store html: %w", err)
	}

	switch job.TargetFileType {
	case TargetTipTap:
		tiptapJSON, err := render.TipTapJSON(tree)
		if err != nil {
			return nil, fmt.Errorf("render tiptap: %w", err)
		}
		res.TipTapKey = docID + ".json"
		if err := c.store.Put(ctx, c.cfg.OutputBucket, res.TipTapKey, tiptapJSON, TargetTipTap+"; charset=utf-8"); err != nil {
			return nil, fmt.Errorf("store tiptap: %w", err)
		}

	case TargetMarkdown:
		markdown, err := render.Markdown(tree)
		if err != nil {
			return nil, fmt.Errorf("render markdown: %w", err)
		}
		res.MarkdownKey = docID + ".md"
		if err := c.store.Put(ctx, c.cfg.OutputBucket, res.MarkdownKey, []byte(markdown), "text/markdown; charset=utf-8"); err != nil {
			return nil, fmt.Errorf("store markdown: %w", err)
		}
	}

	c.logger.Info("converted document",
		"doc", docID,
		"fileType", fileType,
		"blocks", blockCount(pages),
		"fallback", res.Fallback,
		"target", job.TargetFileType,
	)
	return res, nil
}

// extract picks the extractor for the sniffed type. Unknown bytes get the
// PDF extractor first, then DOCX; the first non-empty result wins.
func (c *Converter) extract(fileType extractor.FileType, data []byte) []extractor.Page {
	switch fileType {
	case extractor.FileTypePDF:
		return extractor.ExtractPDF(data, c.heur)
	case extractor.FileTypeDOCX:
		return docxPages(data)
	default:
		if pages := extractor.ExtractPDF(data, c.heur); len(pages) > 0 {
			return pages
		}
		return docxPages(data)
	}
}

func docxPages(data []byte) []extractor.Page {
	blocks := extractor.ExtractDOCX(data)
	if blocks == nil {
		return nil
	}
	return extractor.SinglePage(blocks)
}

func blockCount(pages []extractor.Page) int {
	n := 0
	for _, p := range pages {
		n += len(p.Blocks)
	}
	return n
}

// docIDFromFilename strips any directory prefix and extension so artifacts
// for "inbox/report.docx" land at "report.spec.json" and friends.
func docIDFromFilename(filename string) string {
	base := path.Base(filename)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == "/" {
		return "document"
	}
	return base
}
