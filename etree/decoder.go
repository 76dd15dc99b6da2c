// Package etree decodes XML payloads such as RSS and Atom feeds into text.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagerag"
)

// Ensure Decoder implements pagerag.Decoder at compile time.
var _ pagerag.Decoder = (*Decoder)(nil)

// Decoder flattens XML documents into one line per text-bearing element.
// XHTML documents are left to the HTML pipeline.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Detect reports whether body is an XML document other than XHTML.
func (d *Decoder) Detect(body string) bool {
	s := strings.TrimSpace(body)
	if !strings.HasPrefix(s, "<?xml") {
		return false
	}
	head := strings.ToLower(s[:min(len(s), 1024)])
	return !strings.Contains(head, "<html") && !strings.Contains(head, "<!doctype html")
}

// Decode returns the first <title> found in the document and its text.
func (d *Decoder) Decode(body string) (title, text string, err error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return "", "", pagerag.Errorf(pagerag.EINVALID, "parse XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return "", "", pagerag.Errorf(pagerag.EEMPTY, "empty XML document")
	}

	if el := doc.FindElement("//title"); el != nil {
		title = strings.TrimSpace(el.Text())
	}

	var lines []string
	collectText(root, &lines)
	return title, strings.Join(lines, "\n"), nil
}

// collectText appends the trimmed character data of el and its
// descendants in document order.
func collectText(el *etree.Element, lines *[]string) {
	var sb strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			if s := strings.Join(strings.Fields(sb.String()), " "); s != "" {
				*lines = append(*lines, s)
			}
			sb.Reset()
			collectText(t, lines)
		}
	}
	if s := strings.Join(strings.Fields(sb.String()), " "); s != "" {
		*lines = append(*lines, s)
	}
}
