package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/readerview"
	rvhtml "github.com/fwojciec/readerview/html"
	"golang.org/x/net/html"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	inputs, err := readInputs(deps, c.Files)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}

	opts := rvhtml.ReaderableOptions{
		MinContentLength: c.MinContentLength,
		MinScore:         c.MinScore,
	}
	for _, in := range inputs {
		doc, err := html.Parse(strings.NewReader(in.html))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %v\n", in.name, err)
			return err
		}
		verdict := "not readerable"
		if rvhtml.IsProbablyReaderable(doc, opts) {
			verdict = "readerable"
		}
		fmt.Fprintf(deps.Stdout, "%s: %s\n", in.name, verdict)
	}
	return nil
}
