package extractor

import "strings"

// fixer repairs text that was decoded once too often: UTF-8 bytes read back
// as Windows-1252 (the "â€œ" family), CP437 console artifacts (the "ΓÇ"
// family), and invisible characters PDF text layers tend to leak.
//
// Longer sequences are listed before their prefixes; strings.Replacer picks
// the earliest listed pattern at each position, so "â€œ" wins over the bare
// "â€" fallback. None of the replacement values contain a pattern, which
// makes the pass idempotent.
var fixer = strings.NewReplacer(
	"â€”", "—",
	"â€“", "–",
	"â€™", "'",
	"â€œ", "“",
	"â€", "”",
	"â€¦", "…",
	"â€", "”",
	"Ã©", "é",
	"Ã¨", "è",
	"Ã«", "ë",
	"Ã¯", "ï",
	"Ã¶", "ö",
	"Ã¼", "ü",
	"Ã ", "à",
	"ΓÇô", "–",
	"ΓÇö", "—",
	"ΓÇï", "",
	"ΓÇ£", "“",
	"ΓÇª", "…",
	"​", "", // zero-width space
	"\uFEFF", "", // BOM
)

// FixEncoding repairs common mis-decoded byte sequences in extracted text.
// Applying it twice yields the same result as applying it once.
func FixEncoding(text string) string {
	return fixer.Replace(text)
}
