package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/readerview"
)

// stdinName is the file argument that reads standard input.
const stdinName = "-"

// input is a raw HTML document and the name it was read from.
type input struct {
	name string
	html string
}

// readInputs reads every named file in order. Standard input may be named
// at most once.
func readInputs(deps *Dependencies, names []string) ([]input, error) {
	inputs := make([]input, 0, len(names))
	seenStdin := false
	for _, name := range names {
		if name == stdinName {
			if seenStdin {
				return nil, readerview.Errorf(readerview.EINVALID, "standard input can only be read once")
			}
			seenStdin = true
		}
		html, err := readInput(deps, name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{name: name, html: html})
	}
	return inputs, nil
}

func readInput(deps *Dependencies, name string) (string, error) {
	if name == stdinName {
		if deps.Stdin == nil {
			return "", readerview.Errorf(readerview.EINVALID, "standard input is not available")
		}
		b, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", readerview.Errorf(readerview.ENOTFOUND, "file %q not found", name)
	} else if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(b), nil
}
