package trafilatura

import (
	"bytes"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/readerview"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements readerview.Extractor at compile time.
var _ readerview.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura as a reference engine for comparing
// extraction results.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. An empty
// result is reported as ENOCONTENT.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*readerview.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readerview.Errorf(readerview.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, readerview.Errorf(readerview.EINVALID, "page URL %q must be absolute", pageURL)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, readerview.Errorf(readerview.ENOCONTENT, "no content found")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	article := &readerview.Article{
		Title:       result.Metadata.Title,
		Content:     contentHTML,
		TextContent: result.ContentText,
		Length:      utf8.RuneCountInString(result.ContentText),
		Excerpt:     result.Metadata.Description,
		Byline:      result.Metadata.Author,
		Lang:        result.Metadata.Language,
		SiteName:    result.Metadata.Sitename,
	}
	if !result.Metadata.Date.IsZero() {
		article.PublishedTime = result.Metadata.Date.Format("2006-01-02")
	}
	return article, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
