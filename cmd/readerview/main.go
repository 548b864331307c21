package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/readerview"
	"github.com/fwojciec/readerview/fs"
	rvhtml "github.com/fwojciec/readerview/html"
	"github.com/fwojciec/readerview/htmltomarkdown"
	"github.com/fwojciec/readerview/readability"
	rvslog "github.com/fwojciec/readerview/slog"
	"github.com/fwojciec/readerview/sqlite"
	"github.com/fwojciec/readerview/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read for the "-" file argument.
	Stdin io.Reader

	// Now stamps written documents.
	Now func() time.Time

	// DB is the document archive, open while a command runs with --db.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
		Now:   time.Now,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		err := m.DB.Close()
		m.DB = nil
		return err
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readerview"),
		kong.Description("Extract readable articles from HTML pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'readerview --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	opts := cli.EngineFlags.Options(cli.Debug)
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", readerview.ErrorMessage(err))
		return err
	}

	if path := dbPath(kongCtx.Command(), cli); path != "" {
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			m.DB = nil
			fmt.Fprintf(stderr, "Hint: Pass --db or set READERVIEW_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer m.Close()
	}

	m.wire(deps, cli, opts)

	return kongCtx.Run(deps)
}

// wire fills deps with the services the commands use. Logging decorators
// are only installed in debug mode.
func (m *Main) wire(deps *Dependencies, cli *CLI, opts readerview.Options) {
	logger := slog.New(slog.DiscardHandler)
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	deps.Logger = logger

	var extractor readerview.Extractor = rvhtml.NewExtractor(opts, rvhtml.WithLogger(logger))
	references := []Reference{
		{Name: "trafilatura", Extractor: trafilatura.NewExtractor()},
		{Name: "readability", Extractor: readability.NewExtractor()},
	}
	if cli.Debug {
		extractor = rvslog.NewLoggingExtractor(extractor, logger)
		for i := range references {
			references[i].Extractor = rvslog.NewLoggingExtractor(references[i].Extractor, logger.With("engine", references[i].Name))
		}
	}
	deps.Extractor = extractor
	deps.References = references
	deps.Converter = htmltomarkdown.NewConverter()

	var writer readerview.DocumentWriter
	if m.DB != nil {
		docs := sqlite.NewDocumentService(m.DB)
		deps.Documents = docs
		writer = docs
	}
	if cli.Extract.Out != "" {
		writer = fs.NewWriter(cli.Extract.Out)
	}
	if writer != nil && cli.Debug {
		writer = rvslog.NewLoggingDocumentWriter(writer, logger)
	}
	deps.Writer = writer
}

// dbPath returns the database the selected command works on.
func dbPath(command string, cli *CLI) string {
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "extract":
		return cli.Extract.DB
	case "docs":
		return cli.Docs.DB
	}
	return ""
}
