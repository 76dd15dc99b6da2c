package mock

import "github.com/fwojciec/pagerag"

var _ pagerag.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagerag.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pagerag.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pagerag.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ pagerag.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of pagerag.Decoder.
type Decoder struct {
	DetectFn func(body string) bool
	DecodeFn func(body string) (string, string, error)
}

func (d *Decoder) Detect(body string) bool {
	return d.DetectFn(body)
}

func (d *Decoder) Decode(body string) (string, string, error) {
	return d.DecodeFn(body)
}
