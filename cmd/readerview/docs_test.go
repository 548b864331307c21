package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/readerview"
	main "github.com/fwojciec/readerview/cmd/readerview"
	"github.com/fwojciec/readerview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docsDeps(stdout, stderr *bytes.Buffer, docs *mock.DocumentService) *main.Dependencies {
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Documents: docs,
	}
}

func TestDocsCmd_Run(t *testing.T) {
	t.Parallel()

	archived := &readerview.Document{
		ID:          "d1",
		SourceURL:   "https://gazette.example/bridge",
		Title:       "Bridge Plan Approved",
		Content:     "# Bridge Plan Approved\n\nThe committee met.\n",
		ExtractedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	t.Run("requires a database", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr}

		err := (&main.DocsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--db is required")
	})

	t.Run("lists documents with the filter", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		var got readerview.DocumentFilter
		docs := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, filter readerview.DocumentFilter) ([]*readerview.Document, error) {
				got = filter
				return []*readerview.Document{archived, {ID: "d2", SourceURL: "page.html"}}, nil
			},
		}

		cmd := &main.DocsCmd{Source: "https://gazette.example/bridge", Limit: 10}
		err := cmd.Run(docsDeps(stdout, stderr, docs))

		require.NoError(t, err)
		require.NotNil(t, got.SourceURL)
		assert.Equal(t, "https://gazette.example/bridge", *got.SourceURL)
		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, "d1  2025-03-01  Bridge Plan Approved  https://gazette.example/bridge\n"+
			"d2  0001-01-01  (untitled)            page.html\n", stdout.String())
	})

	t.Run("truncates long titles by display width", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		docs := &mock.DocumentService{
			FindDocumentsFn: func(context.Context, readerview.DocumentFilter) ([]*readerview.Document, error) {
				return []*readerview.Document{{ID: "d1", Title: strings.Repeat("橋", 40), SourceURL: "s"}}, nil
			},
		}

		err := (&main.DocsCmd{}).Run(docsDeps(stdout, stderr, docs))

		require.NoError(t, err)
		assert.Equal(t, "d1  0001-01-01  "+strings.Repeat("橋", 28)+"...  s\n", stdout.String())
	})

	t.Run("reports an empty archive", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		docs := &mock.DocumentService{
			FindDocumentsFn: func(context.Context, readerview.DocumentFilter) ([]*readerview.Document, error) {
				return nil, nil
			},
		}

		err := (&main.DocsCmd{}).Run(docsDeps(stdout, stderr, docs))

		require.NoError(t, err)
		assert.Equal(t, "No documents found\n", stdout.String())
	})

	t.Run("shows a document with front matter", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		docs := &mock.DocumentService{
			FindDocumentByIDFn: func(_ context.Context, id string) (*readerview.Document, error) {
				assert.Equal(t, "d1", id)
				return archived, nil
			},
		}

		err := (&main.DocsCmd{ID: "d1"}).Run(docsDeps(stdout, stderr, docs))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "source: https://gazette.example/bridge\n")
		assert.Contains(t, stdout.String(), "The committee met.")
	})

	t.Run("reports a missing document", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		docs := &mock.DocumentService{
			FindDocumentByIDFn: func(context.Context, string) (*readerview.Document, error) {
				return nil, readerview.Errorf(readerview.ENOTFOUND, "document not found")
			},
		}

		err := (&main.DocsCmd{ID: "nope"}).Run(docsDeps(stdout, stderr, docs))

		require.Error(t, err)
		assert.Equal(t, "error: document not found\n", stderr.String())
	})

	t.Run("deletes a document", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		var deleted string
		docs := &mock.DocumentService{
			DeleteDocumentFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		err := (&main.DocsCmd{ID: "d1", Delete: true}).Run(docsDeps(stdout, stderr, docs))

		require.NoError(t, err)
		assert.Equal(t, "d1", deleted)
		assert.Equal(t, "Deleted d1\n", stdout.String())
	})

	t.Run("delete requires an ID", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := (&main.DocsCmd{Delete: true}).Run(docsDeps(stdout, stderr, &mock.DocumentService{}))

		require.Error(t, err)
		assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
	})
}
