package render

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/nldoc/foliospec/spec"
)

// Markdown renders the tree as Markdown by converting the rendered HTML
// body. A fresh converter per call keeps the renderer safe for concurrent
// conversions.
func Markdown(root *spec.Node) (string, error) {
	conv := md.NewConverter("", true, nil)
	out, err := conv.ConvertString(HTMLBody(root))
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}
	return out, nil
}
