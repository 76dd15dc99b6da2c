// Package trafilatura extracts the main content of web pages with
// go-trafilatura, dropping navigation, footers and comment sections.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagerag"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagerag.Extractor at compile time.
var _ pagerag.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the page title and the main content as HTML. A page
// without recognisable main content yields an empty ContentHTML.
func (e *Extractor) Extract(rawHTML string) (*pagerag.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagerag.Errorf(pagerag.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &pagerag.ExtractResult{}, nil
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &pagerag.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
