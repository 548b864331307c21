package html

import (
	"strings"

	"github.com/fwojciec/readerview"
)

// Ensure Extractor implements readerview.Extractor at compile time.
var _ readerview.Extractor = (*Extractor)(nil)

// Extractor extracts articles from raw HTML with the native pipeline.
type Extractor struct {
	opts    readerview.Options
	options []Option
}

// NewExtractor creates a new Extractor. Every call to Extract builds a
// fresh Parser with opts and options.
func NewExtractor(opts readerview.Options, options ...Option) *Extractor {
	return &Extractor{opts: opts, options: options}
}

// Extract parses rawHTML and returns its article.
func (e *Extractor) Extract(rawHTML, pageURL string) (*readerview.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readerview.Errorf(readerview.EINVALID, "empty HTML input")
	}
	p, err := NewParser(strings.NewReader(rawHTML), pageURL, e.opts, e.options...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}
