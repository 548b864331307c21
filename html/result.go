package html

import (
	"fmt"
	"strings"

	"github.com/fwojciec/readerview"
	"golang.org/x/net/html"
)

// buildArticle serializes the cleaned content and merges it with the
// resolved metadata.
func (p *Parser) buildArticle(a *attempt, meta readerview.Metadata) (*readerview.Article, error) {
	content, err := renderChildren(a.content)
	if err != nil {
		return nil, fmt.Errorf("render article: %w", err)
	}
	text := textContent(a.content)

	excerpt := meta.Excerpt
	if excerpt == "" {
		excerpt = firstParagraph(a.content)
	}

	dir := a.dir
	if dir == "" {
		dir = meta.Dir
	}

	return &readerview.Article{
		Title:         meta.Title,
		Content:       content,
		TextContent:   text,
		Length:        charCount(text),
		Excerpt:       excerpt,
		Byline:        meta.Byline,
		Dir:           dir,
		Lang:          meta.Lang,
		SiteName:      meta.SiteName,
		PublishedTime: meta.PublishedTime,
	}, nil
}

// renderChildren serializes the children of n, which is the page wrapper's
// detached container.
func renderChildren(n *html.Node) (string, error) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// firstParagraph returns the text of the first paragraph long enough to
// stand as an excerpt.
func firstParagraph(content *html.Node) string {
	for _, p := range elementsByTag(content, "p") {
		if text := strings.TrimSpace(textContent(p)); charCount(text) >= minExcerptLength {
			return text
		}
	}
	return ""
}
