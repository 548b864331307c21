package htmltomarkdown_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/readerview"
	"github.com/fwojciec/readerview/htmltomarkdown"
	"github.com/fwojciec/readerview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements readerview.Converter at compile time.
var _ readerview.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts article paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<div id="readability-page-1" class="page"><p>Hello, world!</p><p>Second paragraph.</p></div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Hello, world!")
		assert.Contains(t, md, "Second paragraph.")
	})

	t.Run("converts demoted headings", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Subtitle</h2><h3>Section</h3>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "## Subtitle")
		assert.Contains(t, md, "### Section")
	})

	t.Run("keeps absolute links", func(t *testing.T) {
		t.Parallel()

		html := `<p>Visit <a href="https://example.com/more">Example</a> for more info.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com/more)")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><thead><tr><th>Name</th><th>Value</th></tr></thead><tbody><tr><td>a</td><td>1</td></tr></tbody></table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "| Name")
		assert.Contains(t, md, "| a")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  \n ")

		require.Error(t, err)
		assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
	})
}

func TestConvertArticle(t *testing.T) {
	t.Parallel()

	t.Run("prepends title heading", func(t *testing.T) {
		t.Parallel()

		article := &readerview.Article{Title: "My Article", Content: "<p>Body text.</p>"}

		md, err := htmltomarkdown.ConvertArticle(htmltomarkdown.NewConverter(), article)

		require.NoError(t, err)
		assert.Equal(t, "# My Article\n\nBody text.\n", md)
	})

	t.Run("omits heading without title", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "converted", nil
			},
		}

		md, err := htmltomarkdown.ConvertArticle(conv, &readerview.Article{Content: "<p>x</p>"})

		require.NoError(t, err)
		assert.Equal(t, "converted", md)
	})

	t.Run("propagates converter error", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("boom")
			},
		}

		_, err := htmltomarkdown.ConvertArticle(conv, &readerview.Article{Title: "T", Content: "<p>x</p>"})

		require.Error(t, err)
	})
}
