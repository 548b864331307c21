package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/readerview"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readerview.DocumentService = (*DocumentService)(nil)

const documentColumns = "id, source_url, title, byline, site_name, published_time, excerpt, content, content_hash, extracted_at"

// DocumentService implements readerview.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// CreateDocument stores a new document. The ID and content hash are
// generated; a zero ExtractedAt is set to the current time.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *readerview.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.ContentHash = hashContent(doc.Content)
	if doc.ExtractedAt.IsZero() {
		doc.ExtractedAt = time.Now()
	}
	doc.ExtractedAt = doc.ExtractedAt.UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourceURL, doc.Title, doc.Byline, doc.SiteName, doc.PublishedTime,
		doc.Excerpt, doc.Content, doc.ContentHash, doc.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*readerview.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, readerview.Errorf(readerview.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, most recently
// extracted first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter readerview.DocumentFilter) ([]*readerview.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY extracted_at DESC, rowid DESC")
	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*readerview.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return readerview.Errorf(readerview.ENOTFOUND, "document not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*readerview.Document, error) {
	var doc readerview.Document
	var extractedAt string

	if err := row.Scan(&doc.ID, &doc.SourceURL, &doc.Title, &doc.Byline, &doc.SiteName,
		&doc.PublishedTime, &doc.Excerpt, &doc.Content, &doc.ContentHash, &extractedAt); err != nil {
		return nil, err
	}

	t, err := parseTimestamp(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}
	doc.ExtractedAt = t

	return &doc, nil
}
