package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/readerview"
	"github.com/fwojciec/readerview/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements readerview.Extractor at compile time.
var _ readerview.Extractor = (*trafilatura.Extractor)(nil)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
<title>Why Boring Technology Wins - Example Blog</title>
<meta property="og:title" content="Why Boring Technology Wins">
</head>
<body>
<nav><a href="/">Home</a><a href="/archive">Archive</a></nav>
<article>
<h1>Why Boring Technology Wins</h1>
<p>Teams that pick well understood tools spend their innovation budget on the problems that matter to their users, not on debugging the tools themselves.</p>
<p>Every new component carries an operational cost that is paid long after the excitement of adopting it has faded, and that cost compounds with each addition.</p>
<p>Choosing boring technology is not about avoiding change. It is about being deliberate with the few places where novelty pays for itself.</p>
</article>
<footer>Copyright 2024</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		article, err := ext.Extract(articleHTML, "https://example.com/boring")

		require.NoError(t, err)
		assert.NotEmpty(t, article.Title)
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		article, err := ext.Extract(articleHTML, "")

		require.NoError(t, err)
		assert.Contains(t, article.Content, "innovation budget")
		assert.Contains(t, article.TextContent, "operational cost")
		assert.Positive(t, article.Length)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("", "")

		require.Error(t, err)
		assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
	})

	t.Run("rejects relative page URL", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract(articleHTML, "/boring")

		require.Error(t, err)
		assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
	})
}
