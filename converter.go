package pagerag

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms extracted content HTML into Markdown, which is
	// the text that gets chunked and embedded.
	Convert(html string) (string, error)
}
