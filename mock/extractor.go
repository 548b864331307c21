package mock

import "github.com/fwojciec/readerview"

var _ readerview.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of readerview.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*readerview.Article, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*readerview.Article, error) {
	return e.ExtractFn(html, pageURL)
}
