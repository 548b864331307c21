package main

import (
	"fmt"

	"github.com/fwojciec/readerview"
	"github.com/fwojciec/readerview/fs"
	"github.com/mattn/go-runewidth"
)

// maxTitleWidth is the display width titles are truncated to in listings.
const maxTitleWidth = 60

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	if deps.Documents == nil {
		err := readerview.Errorf(readerview.EINVALID, "--db is required (or set READERVIEW_DB)")
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}

	if c.ID == "" {
		if c.Delete {
			err := readerview.Errorf(readerview.EINVALID, "--delete requires a document ID")
			fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
			return err
		}
		return c.list(deps)
	}

	if c.Delete {
		if err := deps.Documents.DeleteDocument(deps.Ctx, c.ID); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.ID)
		return nil
	}

	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}
	content, err := fs.FormatDocument(doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}
	fmt.Fprint(deps.Stdout, content)
	return nil
}

func (c *DocsCmd) list(deps *Dependencies) error {
	filter := readerview.DocumentFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found")
		return nil
	}
	titles := make([]string, len(docs))
	width := 0
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = "(untitled)"
		}
		titles[i] = runewidth.Truncate(title, maxTitleWidth, "...")
		width = max(width, runewidth.StringWidth(titles[i]))
	}
	for i, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			doc.ID, doc.ExtractedAt.Format("2006-01-02"), runewidth.FillRight(titles[i], width), doc.SourceURL)
	}
	return nil
}
