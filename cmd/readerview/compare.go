package main

import (
	"fmt"

	"github.com/fwojciec/readerview"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	html, err := readInput(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}

	native, err := deps.Extractor.Extract(html, c.URL)
	if err != nil && !readerview.IsNoContent(err) {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "%-12s %8d\n", "native", length(native))

	for _, ref := range deps.References {
		article, err := ref.Extractor.Extract(html, c.URL)
		if err != nil && !readerview.IsNoContent(err) {
			fmt.Fprintf(deps.Stdout, "%-12s %8s  %s\n", ref.Name, "-", readerview.ErrorMessage(err))
			continue
		}
		verdict := "agrees"
		if readerview.ContentDiffers(native, article) {
			verdict = "differs"
		}
		fmt.Fprintf(deps.Stdout, "%-12s %8d  %s\n", ref.Name, length(article), verdict)
	}
	return nil
}

func length(a *readerview.Article) int {
	if a == nil {
		return 0
	}
	return a.Length
}
