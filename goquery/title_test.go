package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readerview/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		body  string
		want  string
	}{
		{"plain title", "Morning at the Harbor Town", "", "Morning at the Harbor Town"},
		{"site name suffix", "Morning at the Harbor Town - Harbor News", "", "Morning at the Harbor Town"},
		{"site name prefix", "Harbor News | Morning at the Harbor Town", "", "Morning at the Harbor Town"},
		{"colon prefix", "Harbor News: Morning at the Harbor Town Today", "", "Morning at the Harbor Town Today"},
		{"colon title matching a heading", "Update: Harbor Reopens", "<h1>Update: Harbor Reopens</h1>", "Update: Harbor Reopens"},
		{"short title uses the only h1", "Home", "<h1>Morning at the Harbor Town</h1>", "Morning at the Harbor Town"},
		{"too few words keeps the original", "Breaking - News", "", "Breaking - News"},
		{"collapses whitespace", "Morning   at the\n Harbor Town", "", "Morning at the Harbor Town"},
		{"missing title", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := "<html><head><title>" + tt.title + "</title></head><body>" + tt.body + "</body></html>"
			d, err := gq.NewDocumentFromReader(strings.NewReader(raw))
			require.NoError(t, err)

			assert.Equal(t, tt.want, goquery.ArticleTitle(d))
		})
	}
}
