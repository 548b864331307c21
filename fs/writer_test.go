package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/readerview"
	"github.com/fwojciec/readerview/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "simple path",
			url:  "https://example.com/blog/2024/post",
			want: "blog/2024/post.md",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://example.com/blog/",
			want: "blog/index.md",
		},
		{
			name: "root path becomes index",
			url:  "https://example.com/",
			want: "index.md",
		},
		{
			name: "html extension is replaced",
			url:  "https://example.com/news/story.html",
			want: "news/story.md",
		},
		{
			name: "ignores query string",
			url:  "https://example.com/blog/post?ref=rss",
			want: "blog/post.md",
		},
		{
			name: "ignores fragment",
			url:  "https://example.com/blog/post#comments",
			want: "blog/post.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentPath(t *testing.T) {
	t.Parallel()

	t.Run("mirrors URL sources", func(t *testing.T) {
		t.Parallel()

		got, err := fs.DocumentPath("https://example.com/blog/post")

		require.NoError(t, err)
		assert.Equal(t, "blog/post.md", got)
	})

	t.Run("uses base name of local files", func(t *testing.T) {
		t.Parallel()

		got, err := fs.DocumentPath(filepath.Join("testdata", "pages", "story.html"))

		require.NoError(t, err)
		assert.Equal(t, "story.md", got)
	})

	t.Run("rejects stdin source", func(t *testing.T) {
		t.Parallel()

		_, err := fs.DocumentPath("-")

		require.Error(t, err)
		assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
	})
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	t.Run("is stable for equal content", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, fs.ContentHash("hello"), fs.ContentHash("hello"))
		assert.NotEqual(t, fs.ContentHash("hello"), fs.ContentHash("world"))
		assert.Regexp(t, `^[0-9a-f]{16}$`, fs.ContentHash("hello"))
	})
}

func TestFormatDocument(t *testing.T) {
	t.Parallel()

	t.Run("formats document with frontmatter", func(t *testing.T) {
		t.Parallel()

		doc := &readerview.Document{
			SourceURL:   "https://example.com/blog/post",
			Title:       "A Post",
			Byline:      "Jane Doe",
			ContentHash: "abc",
			Content:     "# A Post\n\nBody.",
			ExtractedAt: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		}

		got, err := fs.FormatDocument(doc)

		require.NoError(t, err)
		want := `---
source: https://example.com/blog/post
title: A Post
byline: Jane Doe
hash: abc
extracted: 2025-01-08
---

# A Post

Body.`

		assert.Equal(t, want, got)
	})

	t.Run("folds multi-line values", func(t *testing.T) {
		t.Parallel()

		doc := &readerview.Document{
			SourceURL: "a.html",
			Excerpt:   "first line\nsecond   line",
			Content:   "x",
		}

		got, err := fs.FormatDocument(doc)

		require.NoError(t, err)
		assert.Contains(t, got, "excerpt: first line second line\n")
	})

	t.Run("quotes values that are not plain strings", func(t *testing.T) {
		t.Parallel()

		doc := &readerview.Document{
			SourceURL:     "a.html",
			Title:         "Update: the bridge opens",
			PublishedTime: "2025",
			Content:       "x",
		}

		got, err := fs.FormatDocument(doc)

		require.NoError(t, err)
		assert.Contains(t, got, "title: 'Update: the bridge opens'\n")
		assert.Contains(t, got, "published: \"2025\"\n")
	})
}

func TestWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ readerview.DocumentWriter = &fs.Writer{}
}

func TestWriter_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes document to correct path with frontmatter", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		doc := &readerview.Document{
			SourceURL:   "https://example.com/blog/2024/post",
			Title:       "Post",
			Content:     "# Post\n\nText.",
			ExtractedAt: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		}

		err := w.CreateDocument(context.Background(), doc)

		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(baseDir, "blog/2024/post.md"))
		require.NoError(t, err)

		want, err := fs.FormatDocument(&readerview.Document{
			SourceURL:   "https://example.com/blog/2024/post",
			Title:       "Post",
			ContentHash: fs.ContentHash("# Post\n\nText."),
			Content:     "# Post\n\nText.",
			ExtractedAt: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, want, string(content))
		assert.True(t, strings.HasPrefix(string(content), "---\nsource: https://example.com/blog/2024/post\ntitle: Post\nhash: "))
		assert.True(t, strings.HasSuffix(string(content), "extracted: 2025-01-08\n---\n\n# Post\n\nText."))
	})

	t.Run("writes local sources by base name", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		doc := &readerview.Document{SourceURL: "/tmp/pages/story.html", Content: "Text"}

		err := w.CreateDocument(context.Background(), doc)

		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(baseDir, "story.md"))
		require.NoError(t, err)
	})

	t.Run("validates document", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		err := w.CreateDocument(context.Background(), &readerview.Document{Title: "No source"})

		require.Error(t, err)
		assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
	})
}
