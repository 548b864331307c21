package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readerview"
	xhtml "golang.org/x/net/html"
)

var (
	// Properties such as "og:title" or "article:author". A single
	// attribute value may carry several space separated properties.
	rxMetaProperty = regexp.MustCompile(`(?i)\s*(article|dc|dcterm|og|twitter)\s*:\s*(author|creator|description|published_time|title|site_name)\s*`)
	rxMetaName     = regexp.MustCompile(`(?i)^\s*(?:(dc|dcterm|og|twitter|parsely|weibo:(?:article|webpage))\s*[-.:]\s*)?(author|creator|pub-date|description|title|site_name)\s*$`)
	rxWhitespace   = regexp.MustCompile(`\s`)
	rxByline       = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)
)

const maxBylineLength = 100

// Meta keys per field, highest priority first. Each group of the sources
// OpenGraph, Twitter Card, Dublin Core and generic meta names is consulted
// in that order.
var (
	titleKeys = []string{
		"og:title",
		"twitter:title",
		"dc:title", "dcterm:title",
		"title", "parsely-title", "weibo:article:title", "weibo:webpage:title",
	}
	bylineKeys = []string{
		"article:author",
		"dc:creator", "dcterm:creator",
		"author", "parsely-author",
	}
	excerptKeys = []string{
		"og:description",
		"twitter:description",
		"dc:description", "dcterm:description",
		"description", "weibo:article:description", "weibo:webpage:description",
	}
	siteNameKeys      = []string{"og:site_name"}
	publishedTimeKeys = []string{"article:published_time", "parsely-pub-date"}
)

// MetadataResolver resolves article metadata from structured data, meta
// tags and the document itself.
type MetadataResolver struct{}

// NewMetadataResolver creates a new MetadataResolver.
func NewMetadataResolver() *MetadataResolver {
	return &MetadataResolver{}
}

// Resolve returns the metadata of doc. For every field the first source
// yielding a value wins: JSON-LD, OpenGraph, Twitter Card, Dublin Core,
// generic meta names, then DOM heuristics. It never fails; fields nobody
// provides stay empty.
func (r *MetadataResolver) Resolve(doc *xhtml.Node, jsonLD []string, opts readerview.Options) readerview.Metadata {
	d := goquery.NewDocumentFromNode(doc)
	values := metaValues(d)
	docTitle := ArticleTitle(d)

	var ld readerview.Metadata
	if !opts.DisableJSONLD {
		ld = ParseJSONLD(jsonLD, docTitle)
	}

	meta := readerview.Metadata{
		Title:         firstOf(ld.Title, lookup(values, titleKeys, nil)),
		Byline:        firstOf(validByline(ld.Byline), lookup(values, bylineKeys, isMetaByline)),
		Excerpt:       firstOf(ld.Excerpt, lookup(values, excerptKeys, nil)),
		SiteName:      firstOf(ld.SiteName, lookup(values, siteNameKeys, nil)),
		PublishedTime: firstOf(ld.PublishedTime, lookup(values, publishedTimeKeys, nil)),
	}

	if meta.Title == "" {
		meta.Title = docTitle
	}
	if meta.Byline == "" {
		meta.Byline = domByline(d)
	}
	if meta.PublishedTime == "" {
		meta.PublishedTime = domPublishedTime(d)
	}

	root := d.Find("html").First()
	meta.Lang = strings.TrimSpace(root.AttrOr("lang", ""))
	meta.Dir = strings.TrimSpace(root.AttrOr("dir", ""))
	return meta
}

// metaValues collects meta tag contents keyed by normalized property or name.
// The first tag for a key wins.
func metaValues(d *goquery.Document) map[string]string {
	values := make(map[string]string)
	set := func(key, content string) {
		if _, ok := values[key]; !ok {
			values[key] = content
		}
	}

	d.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}

		matched := false
		if property := s.AttrOr("property", ""); property != "" {
			for _, m := range rxMetaProperty.FindAllString(property, -1) {
				set(normalizeKey(m), content)
				matched = true
			}
		}
		if name := s.AttrOr("name", ""); !matched && rxMetaName.MatchString(name) {
			key := strings.ReplaceAll(normalizeKey(name), ".", ":")
			set(key, content)
		}
	})
	return values
}

func normalizeKey(s string) string {
	return strings.ToLower(rxWhitespace.ReplaceAllString(s, ""))
}

// lookup returns the first value among keys accepted by valid, unescaped.
func lookup(values map[string]string, keys []string, valid func(string) bool) string {
	for _, k := range keys {
		v := clean(values[k])
		if v == "" {
			continue
		}
		if valid != nil && !valid(v) {
			continue
		}
		return v
	}
	return ""
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// clean unescapes HTML entities and trims whitespace.
func clean(s string) string {
	return strings.TrimSpace(xhtml.UnescapeString(s))
}

// isMetaByline rejects profile URLs some sites put in article:author.
func isMetaByline(s string) bool {
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		return false
	}
	return validByline(s) != ""
}

// validByline returns s when it has an acceptable byline length.
func validByline(s string) string {
	s = strings.TrimSpace(s)
	if n := len([]rune(s)); n == 0 || n > maxBylineLength {
		return ""
	}
	return s
}

// domByline finds the first element marked up as an author credit.
func domByline(d *goquery.Document) string {
	var byline string
	d.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		match := s.AttrOr("class", "") + " " + s.AttrOr("id", "")
		if s.AttrOr("rel", "") != "author" &&
			!strings.Contains(s.AttrOr("itemprop", ""), "author") &&
			!rxByline.MatchString(match) {
			return true
		}
		text := s.Text()
		if name := s.Find(`[itemprop="name"]`).First(); name.Length() > 0 {
			text = name.Text()
		}
		if v := validByline(text); v != "" {
			byline = v
			return false
		}
		return true
	})
	return byline
}

// domPublishedTime reads microdata and time elements marking the
// publication date.
func domPublishedTime(d *goquery.Document) string {
	s := d.Find(`[itemprop="datePublished"]`).First()
	if s.Length() > 0 {
		if v := firstOf(clean(s.AttrOr("content", "")), clean(s.AttrOr("datetime", ""))); v != "" {
			return v
		}
	}
	return clean(d.Find("time[pubdate]").First().AttrOr("datetime", ""))
}
