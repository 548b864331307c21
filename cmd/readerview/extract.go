package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/readerview"
	"github.com/fwojciec/readerview/fs"
	"github.com/fwojciec/readerview/htmltomarkdown"
	"golang.org/x/sync/errgroup"
)

// articleJSON is the JSON output of a single extraction.
type articleJSON struct {
	Source string `json:"source"`
	*readerview.Article
	ContentHash string `json:"contentHash"`
}

// fileError attaches the input name to an extraction failure.
type fileError struct {
	name string
	err  error
}

func (e *fileError) Error() string { return e.name + ": " + e.err.Error() }

func (e *fileError) Unwrap() error { return e.err }

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if err := c.validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}

	inputs, err := readInputs(deps, c.Files)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}

	articles := make([]*readerview.Article, len(inputs))
	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			article, err := deps.Extractor.Extract(in.html, c.URL)
			if readerview.IsNoContent(err) {
				return nil
			} else if err != nil {
				return &fileError{name: in.name, err: err}
			}
			articles[i] = article
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	written := 0
	for i, in := range inputs {
		article := articles[i]
		if article == nil {
			fmt.Fprintf(deps.Stderr, "skip %s: no article found\n", in.name)
			continue
		}
		if err := c.output(deps, c.source(in), article); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(&fileError{name: in.name, err: err}))
			return err
		}
		written++
	}

	if deps.Writer != nil {
		fmt.Fprintf(deps.Stdout, "Extracted %d of %d files\n", written, len(inputs))
	}
	return nil
}

func (c *ExtractCmd) validate() error {
	if c.URL != "" && len(c.Files) > 1 {
		return readerview.Errorf(readerview.EINVALID, "--url can only be used with a single file")
	}
	if c.Out != "" && c.DB != "" {
		return readerview.Errorf(readerview.EINVALID, "--out and --db cannot be used together")
	}
	if c.Concurrency < 1 {
		return readerview.Errorf(readerview.EINVALID, "concurrency must be positive, got %d", c.Concurrency)
	}
	return nil
}

// source is the URL an article is attributed to, or its file name when no
// URL is given.
func (c *ExtractCmd) source(in input) string {
	if c.URL != "" {
		return c.URL
	}
	return in.name
}

func (c *ExtractCmd) output(deps *Dependencies, source string, article *readerview.Article) error {
	if deps.Writer != nil {
		return c.save(deps, source, article)
	}

	switch c.Format {
	case "html":
		_, err := fmt.Fprintln(deps.Stdout, article.Content)
		return err
	case "text":
		_, err := fmt.Fprintln(deps.Stdout, article.TextContent)
		return err
	case "markdown":
		md, err := htmltomarkdown.ConvertArticle(deps.Converter, article)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(deps.Stdout, md)
		return err
	default:
		return json.NewEncoder(deps.Stdout).Encode(articleJSON{
			Source:      source,
			Article:     article,
			ContentHash: fs.ContentHash(article.Content),
		})
	}
}

// save hands the article to the document writer and prints where it went:
// the file path for a directory or the document ID for the archive.
func (c *ExtractCmd) save(deps *Dependencies, source string, article *readerview.Article) error {
	var path string
	if c.Out != "" {
		p, err := fs.DocumentPath(source)
		if err != nil {
			return err
		}
		path = p
	}
	md, err := htmltomarkdown.ConvertArticle(deps.Converter, article)
	if err != nil {
		return err
	}
	doc := readerview.NewDocument(source, article, md, deps.Now())
	if err := deps.Writer.CreateDocument(deps.Ctx, doc); err != nil {
		return err
	}
	if path == "" {
		path = doc.ID
	}
	fmt.Fprintln(deps.Stdout, path)
	return nil
}

// errorMessage returns the user facing message of err, prefixed with the
// input name when known.
func errorMessage(err error) string {
	if fe, ok := err.(*fileError); ok {
		return fe.name + ": " + readerview.ErrorMessage(fe.err)
	}
	return readerview.ErrorMessage(err)
}
