// Package readability extracts the main article of a web page using
// go-readability, the Mozilla Readability algorithm.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/pagerag"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagerag.Extractor at compile time.
var _ pagerag.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	base *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and content HTML. Pages readability
// does not consider readable still get extracted; the caller decides
// whether the result is empty.
func (e *Extractor) Extract(rawHTML string) (*pagerag.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagerag.Errorf(pagerag.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.base)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = strings.TrimSpace(article.SiteName)
	}

	return &pagerag.ExtractResult{
		Title:       title,
		ContentHTML: article.Content,
	}, nil
}
