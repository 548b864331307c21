package html_test

import (
	"testing"

	"github.com/fwojciec/readerview"
	rvhtml "github.com/fwojciec/readerview/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ readerview.Extractor = (*rvhtml.Extractor)(nil)
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts an article", func(t *testing.T) {
		t.Parallel()

		e := rvhtml.NewExtractor(readerview.DefaultOptions())
		article, err := e.Extract(page("<title>Morning at the Harbor Town</title>", `<div class="post">`+paragraphs(4)+`</div>`), "https://harbor.example/")

		require.NoError(t, err)
		assert.Equal(t, "Morning at the Harbor Town", article.Title)
		assert.Greater(t, article.Length, readerview.DefaultCharThreshold)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		e := rvhtml.NewExtractor(readerview.DefaultOptions())
		_, err := e.Extract("   ", "")

		require.Error(t, err)
		assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
	})

	t.Run("rejects relative page URL", func(t *testing.T) {
		t.Parallel()

		e := rvhtml.NewExtractor(readerview.DefaultOptions())
		_, err := e.Extract(page("", paragraphs(4)), "story.html")

		require.Error(t, err)
		assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
	})

	t.Run("reports pages without content", func(t *testing.T) {
		t.Parallel()

		e := rvhtml.NewExtractor(readerview.DefaultOptions())
		_, err := e.Extract(page("", "<div></div>"), "")

		require.Error(t, err)
		assert.True(t, readerview.IsNoContent(err))
	})
}
