package extractor

import "bytes"

// FileType classifies document bytes by their magic prefix.
type FileType string

const (
	FileTypePDF     FileType = "pdf"
	FileTypeDOCX    FileType = "docx"
	FileTypeUnknown FileType = "unknown"
)

// SniffLen is the number of leading bytes DetectFileType needs.
const SniffLen = 8

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte("PK\x03\x04")
)

// DetectFileType classifies a document by its leading bytes. DOCX files are
// ZIP archives, so the ZIP local-file-header magic stands in for them; the
// DOCX extractor rejects non-Word archives later. Never fails: anything
// unrecognized (including a short or empty prefix) is FileTypeUnknown.
func DetectFileType(prefix []byte) FileType {
	switch {
	case bytes.HasPrefix(prefix, pdfMagic):
		return FileTypePDF
	case bytes.HasPrefix(prefix, zipMagic):
		return FileTypeDOCX
	default:
		return FileTypeUnknown
	}
}
