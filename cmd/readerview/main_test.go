package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/readerview/cmd/readerview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paragraph = "The committee met on Tuesday to review the proposal, and after a long " +
	"discussion about costs, timelines, and the needs of local residents, it agreed " +
	"to move forward with the first phase of construction this spring."

// articlePage returns a page with a navigation menu and an article long
// enough to pass the default character threshold.
func articlePage() string {
	var b strings.Builder
	b.WriteString(`<html lang="en"><head><title>Bridge Plan Approved After Long Debate</title>`)
	b.WriteString(`<meta property="og:site_name" content="Town Gazette"></head><body>`)
	b.WriteString(`<nav><a href="/">Home</a> <a href="/news">News</a> <a href="/about">About</a></nav>`)
	b.WriteString(`<article><h1>Bridge Plan Approved After Long Debate</h1>`)
	for range 6 {
		b.WriteString("<p>" + paragraph + "</p>")
	}
	b.WriteString(`<p><img src="/img/bridge.png"></p></article></body></html>`)
	return b.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newMain() *main.Main {
	m := main.NewMain()
	m.Stdin = strings.NewReader("")
	m.Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return m
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"extract", "compare", "check", "docs"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help returns nil and shows commands", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage:")
		assert.Contains(t, stdout.String(), "extract")
	})

	t.Run("no arguments returns an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("rejects invalid engine flags", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page.html", articlePage())
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{"extract", "--top-candidates", "0", path}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "top candidate count must be positive")
	})

	t.Run("extracts a file as JSON", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page.html", articlePage())
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(),
			[]string{"extract", "--url", "https://gazette.example/news/bridge", path}, stdout, stderr)

		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "Bridge Plan Approved After Long Debate", got["title"])
		assert.Equal(t, "Town Gazette", got["siteName"])
		assert.Equal(t, "https://gazette.example/news/bridge", got["source"])
		assert.NotEmpty(t, got["contentHash"])
		assert.Contains(t, got["content"], "https://gazette.example/img/bridge.png")
		assert.NotContains(t, got["textContent"], "About")
	})

	t.Run("reads standard input", func(t *testing.T) {
		t.Parallel()

		m := newMain()
		m.Stdin = strings.NewReader(articlePage())
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", "--format", "text", "-"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "The committee met on Tuesday")
	})

	t.Run("writes markdown documents to the output directory", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "bridge.html", articlePage())
		out := t.TempDir()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{"extract", "--out", out, path}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Extracted 1 of 1 files")

		content, err := os.ReadFile(filepath.Join(out, "bridge.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "title: Bridge Plan Approved After Long Debate")
		assert.Contains(t, string(content), "extracted: 2025-03-01")
		assert.Contains(t, string(content), "# Bridge Plan Approved After Long Debate")
	})

	t.Run("debug logs extractions to stderr", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page.html", articlePage())
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{"--debug", "extract", path}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "article extraction")
		assert.Contains(t, stderr.String(), "extraction pass")
	})

	t.Run("checks whether a file is readerable", func(t *testing.T) {
		t.Parallel()

		article := writeFile(t, "article.html", articlePage())
		empty := writeFile(t, "empty.html", "<html><body><p>Short.</p></body></html>")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{"check", article, empty}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), article+": readerable")
		assert.Contains(t, stdout.String(), empty+": not readerable")
	})

	t.Run("archives documents and lists them", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "bridge.html", articlePage())
		db := filepath.Join(t.TempDir(), "archive.db")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{"extract", "--db", db, "--url", "https://gazette.example/bridge", path}, stdout, stderr)
		require.NoError(t, err)
		id := strings.SplitN(stdout.String(), "\n", 2)[0]
		require.NotEmpty(t, id)

		stdout.Reset()
		err = newMain().Run(context.Background(), []string{"docs", "--db", db}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), id)
		assert.Contains(t, stdout.String(), "Bridge Plan Approved After Long Debate")
		assert.Contains(t, stdout.String(), "https://gazette.example/bridge")

		stdout.Reset()
		err = newMain().Run(context.Background(), []string{"docs", "--db", db, id}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "source: https://gazette.example/bridge")
		assert.Contains(t, stdout.String(), "The committee met on Tuesday")
	})

	t.Run("reports a database that cannot be opened", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{"docs", "--db", "/nonexistent/dir/archive.db"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open database")
		assert.Contains(t, stderr.String(), "READERVIEW_DB")
	})
}
