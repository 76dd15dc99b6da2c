// Package goquery provides a whole-page Extractor built on goquery. Unlike
// the readability-style extractors it keeps all visible body content.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagerag"
)

// Ensure Extractor implements pagerag.Extractor at compile time.
var _ pagerag.Extractor = (*Extractor)(nil)

// nonContent matches elements that never carry visible page text.
const nonContent = "script, style, noscript, template, iframe, svg, link, meta"

// Extractor returns the whole document body without scripts and styles.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and the cleaned body HTML.
func (e *Extractor) Extract(rawHTML string) (*pagerag.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagerag.Errorf(pagerag.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	body := doc.Find("body")
	body.Find(nonContent).Remove()
	removeComments(body)

	content, err := body.Html()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body.Text()) == "" {
		content = ""
	}

	return &pagerag.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(content),
	}, nil
}

// removeComments drops HTML comment nodes below sel.
func removeComments(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#comment" {
			s.Remove()
			return
		}
		removeComments(s)
	})
}
