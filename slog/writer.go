package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readerview"
)

// Ensure LoggingDocumentWriter implements readerview.DocumentWriter.
var _ readerview.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter wraps a DocumentWriter with logging.
type LoggingDocumentWriter struct {
	next   readerview.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next readerview.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// CreateDocument delegates to the wrapped writer and logs the operation.
func (w *LoggingDocumentWriter) CreateDocument(ctx context.Context, doc *readerview.Document) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("document write",
			"source", doc.SourceURL,
			"hash", doc.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.CreateDocument(ctx, doc)
}
