package readerview

// Article is the result of a successful extraction.
type Article struct {
	// Title is the resolved article title.
	Title string `json:"title"`

	// Content is the cleaned article as an HTML fragment.
	Content string `json:"content"`

	// TextContent is Content with all markup removed.
	TextContent string `json:"textContent"`

	// Length is the number of characters (runes) in TextContent.
	Length int `json:"length"`

	Excerpt       string `json:"excerpt,omitempty"`
	Byline        string `json:"byline,omitempty"`
	Dir           string `json:"dir,omitempty"`
	Lang          string `json:"lang,omitempty"`
	SiteName      string `json:"siteName,omitempty"`
	PublishedTime string `json:"publishedTime,omitempty"`
}

// Metadata holds article attributes resolved from structured data, meta
// tags and document heuristics. An empty field means the value is absent.
type Metadata struct {
	Title         string `json:"title,omitempty"`
	Byline        string `json:"byline,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
	SiteName      string `json:"siteName,omitempty"`
	PublishedTime string `json:"publishedTime,omitempty"`
	Dir           string `json:"dir,omitempty"`
	Lang          string `json:"lang,omitempty"`
}
