package readerview

// Extractor extracts the main article from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the article.
	// pageURL may be empty; when set, relative links in the content are
	// resolved against it. Returns ENOCONTENT when no article is found and
	// EINVALID when pageURL is not an absolute URL.
	Extract(html string, pageURL string) (*Article, error)
}
