package readerview

import (
	"context"
	"time"
)

// Document is an extracted article rendered for storage.
type Document struct {
	ID            string    `json:"id,omitempty"`
	SourceURL     string    `json:"sourceUrl"`
	Title         string    `json:"title"`
	Byline        string    `json:"byline,omitempty"`
	SiteName      string    `json:"siteName,omitempty"`
	PublishedTime string    `json:"publishedTime,omitempty"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Content       string    `json:"content"`
	ContentHash   string    `json:"contentHash"`
	ExtractedAt   time.Time `json:"extractedAt"`
}

// NewDocument builds a Document from an article and its Markdown rendering.
func NewDocument(sourceURL string, article *Article, markdown string, extractedAt time.Time) *Document {
	return &Document{
		SourceURL:     sourceURL,
		Title:         article.Title,
		Byline:        article.Byline,
		SiteName:      article.SiteName,
		PublishedTime: article.PublishedTime,
		Excerpt:       article.Excerpt,
		Content:       markdown,
		ExtractedAt:   extractedAt,
	}
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// DocumentService manages stored documents.
type DocumentService interface {
	DocumentWriter

	// FindDocumentByID retrieves a document by its ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, newest first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	SourceURL *string

	Limit  int
	Offset int
}
