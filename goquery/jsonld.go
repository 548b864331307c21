package goquery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/fwojciec/readerview"
)

var (
	rxSchemaOrg    = regexp.MustCompile(`^https?://schema\.org/?$`)
	rxArticleTypes = regexp.MustCompile(`^(Article|AdvertiserContentArticle|NewsArticle|AnalysisNewsArticle|AskPublicNewsArticle|BackgroundNewsArticle|OpinionNewsArticle|ReportageNewsArticle|ReviewNewsArticle|Report|SatiricalArticle|ScholarlyArticle|MedicalScholarlyArticle|SocialMediaPosting|BlogPosting|LiveBlogPosting|DiscussionForumPosting|TechArticle|APIReference)$`)
)

// titleSimilarity is the minimum similarity for a JSON-LD title to be
// considered the same as the document title.
const titleSimilarity = 0.75

// ParseJSONLD extracts article metadata from the first schema.org JSON-LD
// block describing an article. docTitle disambiguates between name and
// headline when both are present and differ. Malformed blocks are skipped.
func ParseJSONLD(blocks []string, docTitle string) readerview.Metadata {
	for _, block := range blocks {
		obj, ok := findArticle(block)
		if !ok {
			continue
		}
		return articleMetadata(obj, docTitle)
	}
	return readerview.Metadata{}
}

func findArticle(block string) (map[string]any, bool) {
	var parsed any
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return nil, false
	}

	var obj map[string]any
	switch v := parsed.(type) {
	case map[string]any:
		obj = v
	case []any:
		obj = firstArticle(v)
	}
	if obj == nil || !isSchemaOrg(obj["@context"]) {
		return nil, false
	}

	if _, ok := obj["@type"]; !ok {
		if graph, ok := obj["@graph"].([]any); ok {
			obj = firstArticle(graph)
		}
	}
	if obj == nil || !isArticleType(obj["@type"]) {
		return nil, false
	}
	return obj, true
}

func firstArticle(items []any) map[string]any {
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok && isArticleType(obj["@type"]) {
			return obj
		}
	}
	return nil
}

func isSchemaOrg(context any) bool {
	switch v := context.(type) {
	case string:
		return rxSchemaOrg.MatchString(v)
	case map[string]any:
		vocab, ok := v["@vocab"].(string)
		return ok && rxSchemaOrg.MatchString(vocab)
	}
	return false
}

// isArticleType accepts a type name or a list of type names.
func isArticleType(t any) bool {
	switch v := t.(type) {
	case string:
		return rxArticleTypes.MatchString(v)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && rxArticleTypes.MatchString(s) {
				return true
			}
		}
	}
	return false
}

func articleMetadata(obj map[string]any, docTitle string) readerview.Metadata {
	var meta readerview.Metadata

	name, hasName := obj["name"].(string)
	headline, hasHeadline := obj["headline"].(string)
	switch {
	case hasName && hasHeadline && name != headline:
		nameMatches := readerview.TextSimilarity(name, docTitle) > titleSimilarity
		headlineMatches := readerview.TextSimilarity(headline, docTitle) > titleSimilarity
		if headlineMatches && !nameMatches {
			meta.Title = clean(headline)
		} else {
			meta.Title = clean(name)
		}
	case hasName:
		meta.Title = clean(name)
	case hasHeadline:
		meta.Title = clean(headline)
	}

	meta.Byline = authorNames(obj["author"])

	if description, ok := obj["description"].(string); ok {
		meta.Excerpt = clean(description)
	}
	if publisher, ok := obj["publisher"].(map[string]any); ok {
		if name, ok := publisher["name"].(string); ok {
			meta.SiteName = clean(name)
		}
	}
	if published, ok := obj["datePublished"].(string); ok {
		meta.PublishedTime = clean(published)
	}
	return meta
}

// authorNames reads an author object or a list of them.
func authorNames(author any) string {
	switch v := author.(type) {
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return clean(name)
		}
	case []any:
		var names []string
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if name, ok := obj["name"].(string); ok {
				if name = clean(name); name != "" {
					names = append(names, name)
				}
			}
		}
		return strings.Join(names, ", ")
	}
	return ""
}
