// Package pdf decodes PDF documents served at page URLs into plain text.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/pagerag"
	"github.com/ledongthuc/pdf"
)

// Ensure Decoder implements pagerag.Decoder at compile time.
var _ pagerag.Decoder = (*Decoder)(nil)

// Decoder extracts text from PDF payloads.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Detect reports whether body starts with the PDF magic bytes.
func (d *Decoder) Detect(body string) bool {
	return strings.HasPrefix(body, "%PDF-")
}

// Decode returns the document title from the info dictionary, if any, and
// the text of all pages.
func (d *Decoder) Decode(body string) (title, text string, err error) {
	// The PDF reader panics on malformed input.
	defer func() {
		if r := recover(); r != nil {
			title, text = "", ""
			err = pagerag.Errorf(pagerag.EINVALID, "malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(strings.NewReader(body), int64(len(body)))
	if err != nil {
		return "", "", pagerag.Errorf(pagerag.EINVALID, "read PDF: %v", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", "", fmt.Errorf("extract PDF text: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", "", err
	}

	title = strings.TrimSpace(r.Trailer().Key("Info").Key("Title").Text())
	return title, strings.TrimSpace(string(b)), nil
}
