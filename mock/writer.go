package mock

import (
	"context"

	"github.com/fwojciec/readerview"
)

var _ readerview.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of readerview.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *readerview.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *readerview.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
