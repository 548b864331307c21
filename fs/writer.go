// Package fs provides file-based storage for extracted articles.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/readerview"
	"gopkg.in/yaml.v3"
)

// URLToPath converts an article URL to a relative file path.
// Example: https://example.com/blog/2024/post → blog/2024/post.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	// Pages saved as .html or .htm keep their name with a new extension.
	if ext := filepath.Ext(path); ext == ".html" || ext == ".htm" {
		path = strings.TrimSuffix(path, ext)
	}
	return path + ".md", nil
}

// DocumentPath returns the relative path a document is written to. Sources
// that are absolute URLs mirror the URL path; local files keep their base
// name with a .md extension.
func DocumentPath(source string) (string, error) {
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Host != "" {
		return URLToPath(source)
	}
	name := filepath.Base(source)
	if name == "." || name == string(filepath.Separator) || name == "-" {
		return "", readerview.Errorf(readerview.EINVALID, "cannot derive file name from source %q", source)
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".md", nil
}

// ContentHash returns the hex xxhash digest of content.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// FormatDocument formats a document with YAML frontmatter. Empty optional
// fields are omitted and multi-line values are folded onto one line.
func FormatDocument(doc *readerview.Document) (string, error) {
	front := &yaml.Node{Kind: yaml.MappingNode}
	field := func(key, value, tag string) {
		if value == "" {
			return
		}
		front.Content = append(front.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: singleLine(value)},
		)
	}
	field("source", doc.SourceURL, "!!str")
	field("title", doc.Title, "!!str")
	field("byline", doc.Byline, "!!str")
	field("site", doc.SiteName, "!!str")
	field("published", doc.PublishedTime, "!!str")
	field("excerpt", doc.Excerpt, "!!str")
	field("hash", doc.ContentHash, "!!str")
	if !doc.ExtractedAt.IsZero() {
		field("extracted", doc.ExtractedAt.Format("2006-01-02"), "!!timestamp")
	}

	var b strings.Builder
	b.WriteString("---\n")
	if len(front.Content) > 0 {
		out, err := yaml.Marshal(front)
		if err != nil {
			return "", fmt.Errorf("failed to encode front matter: %w", err)
		}
		b.Write(out)
	}
	b.WriteString("---\n\n")
	b.WriteString(doc.Content)
	return b.String(), nil
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Ensure Writer implements readerview.DocumentWriter at compile time.
var _ readerview.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateDocument writes a document to disk as a markdown file. A missing
// content hash is computed from the content.
func (w *Writer) CreateDocument(ctx context.Context, doc *readerview.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.ContentHash == "" {
		doc.ContentHash = ContentHash(doc.Content)
	}

	relPath, err := DocumentPath(doc.SourceURL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
