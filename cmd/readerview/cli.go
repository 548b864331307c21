package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/readerview"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Extractor  readerview.Extractor
	References []Reference
	Converter  readerview.Converter
	Writer     readerview.DocumentWriter
	Documents  readerview.DocumentService
	Now        func() time.Time
}

// Reference is a named extraction engine used for comparison.
type Reference struct {
	Name      string
	Extractor readerview.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	EngineFlags `embed:""`

	Debug bool `help:"Log extraction diagnostics to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract the article from HTML files"`
	Compare CompareCmd `cmd:"" help:"Compare native extraction with reference engines"`
	Check   CheckCmd   `cmd:"" help:"Report whether HTML files are likely to contain an article"`
	Docs    DocsCmd    `cmd:"" help:"List, show or delete archived documents"`
}

// EngineFlags tune the native extraction engine.
type EngineFlags struct {
	CharThreshold       int      `default:"500" help:"Minimum article length before retrying with relaxed heuristics"`
	TopCandidates       int      `default:"5" help:"Number of top candidates considered for a common ancestor"`
	MaxElems            int      `default:"0" help:"Abort documents with more elements (0 disables the limit)"`
	KeepClasses         bool     `help:"Keep all class attributes in the content"`
	PreserveClass       []string `name:"preserve-class" help:"Class kept when classes are stripped (repeatable)"`
	DisableJSONLD       bool     `name:"disable-json-ld" help:"Ignore JSON-LD structured data"`
	LinkDensityModifier float64  `help:"Added to link density thresholds when cleaning"`
	AllowedVideoRegex   string   `help:"Regex of embed URLs kept in the content"`
}

// Options converts the flags into extraction options.
func (f EngineFlags) Options(debug bool) readerview.Options {
	opts := readerview.DefaultOptions()
	opts.Debug = debug
	opts.CharThreshold = f.CharThreshold
	opts.NbTopCandidates = f.TopCandidates
	opts.MaxElemsToParse = f.MaxElems
	opts.KeepClasses = f.KeepClasses
	opts.ClassesToPreserve = f.PreserveClass
	opts.DisableJSONLD = f.DisableJSONLD
	opts.LinkDensityModifier = f.LinkDensityModifier
	if f.AllowedVideoRegex != "" {
		opts.AllowedVideoRegex = f.AllowedVideoRegex
	}
	return opts
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files       []string `arg:"" help:"HTML files to extract, - reads standard input"`
	URL         string   `help:"Page URL used to resolve relative links (single file only)"`
	Format      string   `short:"f" enum:"json,html,text,markdown" default:"json" help:"Output format (json, html, text, markdown)"`
	Out         string   `short:"o" help:"Write Markdown documents into this directory"`
	DB          string   `name:"db" help:"Archive documents in this SQLite database"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	File string `arg:"" help:"HTML file to compare, - reads standard input"`
	URL  string `help:"Page URL used to resolve relative links"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Files            []string `arg:"" help:"HTML files to check, - reads standard input"`
	MinContentLength int      `default:"140" help:"Text length a paragraph needs to count"`
	MinScore         float64  `default:"20" help:"Score above which a document is readerable"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	ID     string `arg:"" optional:"" help:"Document to show"`
	DB     string `name:"db" env:"READERVIEW_DB" help:"SQLite database of archived documents"`
	Source string `help:"Only list documents extracted from this source"`
	Limit  int    `short:"n" default:"50" help:"Maximum number of documents listed (0 lists all)"`
	Delete bool   `help:"Delete the document instead of showing it"`
}
