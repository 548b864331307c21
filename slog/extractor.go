package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/readerview"
)

// Ensure LoggingExtractor implements readerview.Extractor.
var _ readerview.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging of each extraction.
type LoggingExtractor struct {
	next   readerview.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next readerview.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string, pageURL string) (article *readerview.Article, err error) {
	defer func(begin time.Time) {
		var length int
		if article != nil {
			length = article.Length
		}
		e.logger.Info("article extraction",
			"url", pageURL,
			"bytes", len(html),
			"length", length,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
