package mock

import (
	"github.com/fwojciec/readerview"
	"golang.org/x/net/html"
)

// MetadataResolver is a mock implementation of html.MetadataResolver.
type MetadataResolver struct {
	ResolveFn func(doc *html.Node, jsonLD []string, opts readerview.Options) readerview.Metadata
}

func (r *MetadataResolver) Resolve(doc *html.Node, jsonLD []string, opts readerview.Options) readerview.Metadata {
	return r.ResolveFn(doc, jsonLD, opts)
}
