package pagerag

import "context"

// Fetcher retrieves the raw payload behind a URL: HTML for web pages, the
// document bytes for PDF or XML resources.
type Fetcher interface {
	// Fetch returns the payload at url. Browser-based implementations
	// return the HTML after JavaScript has rendered.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter paces outbound requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
