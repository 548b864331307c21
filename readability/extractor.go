package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/readerview"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements readerview.Extractor at compile time.
var _ readerview.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability as a reference engine for comparing
// extraction results.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*readerview.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readerview.Errorf(readerview.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		var err error
		if u, err = url.Parse(pageURL); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, readerview.Errorf(readerview.EINVALID, "page URL %q must be absolute", pageURL)
		}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, readerview.Errorf(readerview.ENOCONTENT, "no content found")
	}

	return &readerview.Article{
		Title:       article.Title,
		Content:     article.Content,
		TextContent: article.TextContent,
		Length:      article.Length,
		Excerpt:     article.Excerpt,
		Byline:      article.Byline,
		SiteName:    article.SiteName,
	}, nil
}
