package mock

import (
	"context"

	"github.com/fwojciec/readerview"
)

var _ readerview.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of readerview.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *readerview.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*readerview.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter readerview.DocumentFilter) ([]*readerview.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *readerview.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*readerview.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter readerview.DocumentFilter) ([]*readerview.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
