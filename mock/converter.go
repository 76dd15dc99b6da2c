package mock

import "github.com/fwojciec/pagerag"

var _ pagerag.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagerag.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
