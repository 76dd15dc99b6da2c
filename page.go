package pagerag

import "context"

// Page represents the textual content of a fetched web page.
type Page struct {
	URL     string
	Title   string
	Content string // Markdown or plain text
}

// PageLoader fetches a URL and returns its text content.
// Implementations hide payload detection, extraction and conversion.
type PageLoader interface {
	// Load returns EEMPTY when the page yields no text.
	Load(ctx context.Context, url string) (*Page, error)
}
