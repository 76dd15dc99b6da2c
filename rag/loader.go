// Package rag wires the retrieval-augmented generation pipeline together.
// It loads pages, builds and caches their indexes, retrieves relevant
// segments and turns user requests into answers.
package rag

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/pagerag"
)

var _ pagerag.PageLoader = (*Loader)(nil)

// Loader fetches a page and turns it into text. Payloads recognised by one
// of the Decoders (PDF, XML) are decoded directly; everything else is
// treated as HTML and passed through the Extractor and Converter.
type Loader struct {
	Fetcher   pagerag.Fetcher
	Extractor pagerag.Extractor
	Converter pagerag.Converter
	Decoders  []pagerag.Decoder

	// Limiter is optional.
	Limiter pagerag.DomainLimiter
}

// Load fetches rawURL and returns its text content.
func (l *Loader) Load(ctx context.Context, rawURL string) (*pagerag.Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, pagerag.Errorf(pagerag.EINVALID, "invalid URL %q", rawURL)
	}

	if l.Limiter != nil {
		if err := l.Limiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	body, err := l.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if strings.TrimSpace(body) == "" {
		return nil, pagerag.Errorf(pagerag.EEMPTY, "no content could be extracted from %s", rawURL)
	}

	for _, d := range l.Decoders {
		if !d.Detect(body) {
			continue
		}
		title, text, err := d.Decode(body)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", rawURL, err)
		}
		return newPage(rawURL, title, text)
	}

	result, err := l.Extractor.Extract(body)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", rawURL, err)
	}
	if strings.TrimSpace(result.ContentHTML) == "" {
		return nil, pagerag.Errorf(pagerag.EEMPTY, "no content could be extracted from %s", rawURL)
	}

	markdown, err := l.Converter.Convert(result.ContentHTML)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", rawURL, err)
	}
	return newPage(rawURL, result.Title, markdown)
}

func newPage(rawURL, title, content string) (*pagerag.Page, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pagerag.Errorf(pagerag.EEMPTY, "no content could be extracted from %s", rawURL)
	}
	return &pagerag.Page{URL: rawURL, Title: title, Content: content}, nil
}
