package mock

import "github.com/fwojciec/readerview"

var _ readerview.Converter = (*Converter)(nil)

// Converter is a mock implementation of readerview.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
