package main_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/readerview"
	main "github.com/fwojciec/readerview/cmd/readerview"
	"github.com/fwojciec/readerview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLength(n int) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(_ string, _ string) (*readerview.Article, error) {
			return &readerview.Article{Length: n}, nil
		},
	}
}

func TestCompareCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports agreement per reference engine", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page.html", "<p>page</p>")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := extractDeps(stdout, stderr, fixedLength(1000))
		deps.References = []main.Reference{
			{Name: "close", Extractor: fixedLength(1200)},
			{Name: "far", Extractor: fixedLength(3000)},
		}

		err := (&main.CompareCmd{File: path}).Run(deps)

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "native")
		assert.Contains(t, lines[0], "1000")
		assert.Contains(t, lines[1], "close")
		assert.Contains(t, lines[1], "agrees")
		assert.Contains(t, lines[2], "far")
		assert.Contains(t, lines[2], "differs")
	})

	t.Run("treats missing content as empty", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page.html", "<p>page</p>")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		empty := &mock.Extractor{
			ExtractFn: func(_ string, _ string) (*readerview.Article, error) {
				return nil, readerview.Errorf(readerview.ENOCONTENT, "no article found")
			},
		}
		deps := extractDeps(stdout, stderr, empty)
		deps.References = []main.Reference{{Name: "other", Extractor: fixedLength(800)}}

		err := (&main.CompareCmd{File: path}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "differs")
	})

	t.Run("shows reference failures without aborting", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page.html", "<p>page</p>")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		broken := &mock.Extractor{
			ExtractFn: func(_ string, _ string) (*readerview.Article, error) {
				return nil, readerview.Errorf(readerview.EINVALID, "bad input")
			},
		}
		deps := extractDeps(stdout, stderr, fixedLength(100))
		deps.References = []main.Reference{
			{Name: "broken", Extractor: broken},
			{Name: "same", Extractor: fixedLength(100)},
		}

		err := (&main.CompareCmd{File: path}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "bad input")
		assert.Contains(t, stdout.String(), "agrees")
	})
}
