package pagerag

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// Extractor extracts readable content from HTML pages.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}

// Decoder extracts plain text from payloads that are not HTML pages,
// such as PDF documents or XML feeds.
type Decoder interface {
	// Detect reports whether the payload is in the decoder's format.
	Detect(body string) bool

	// Decode returns the document title (possibly empty) and its text.
	Decode(body string) (title string, text string, err error)
}
