// Package htmltomarkdown converts extracted page HTML to Markdown text,
// the form in which page content is split and embedded.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagerag"
)

// Ensure Converter implements pagerag.Converter at compile time.
var _ pagerag.Converter = (*Converter)(nil)

var (
	imagePattern  = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	blankPattern  = regexp.MustCompile(`\n{3,}`)
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Images are dropped since
// only text is embedded, and runs of blank lines are collapsed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pagerag.Errorf(pagerag.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	md = imagePattern.ReplaceAllString(md, "")
	md = trailingSpace.ReplaceAllString(md, "\n")
	md = blankPattern.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md), nil
}
