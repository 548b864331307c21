package html

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/readerview"
	rvgoquery "github.com/fwojciec/readerview/goquery"
	"golang.org/x/net/html"
)

// MetadataResolver resolves title, byline and other page-level metadata from
// a preprocessed document and the JSON-LD blocks collected from it.
type MetadataResolver interface {
	Resolve(doc *html.Node, jsonLD []string, opts readerview.Options) readerview.Metadata
}

// Ensure the default resolver satisfies MetadataResolver at compile time.
var _ MetadataResolver = (*rvgoquery.MetadataResolver)(nil)

// Parser extracts the article from one parsed document. The document is
// cloned on every call to Parse, so a Parser can be reused.
type Parser struct {
	doc      *html.Node
	url      *url.URL
	opts     readerview.Options
	video    *regexp.Regexp
	preserve map[string]bool
	logger   *slog.Logger
	resolver MetadataResolver
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for debug diagnostics. Records are only
// emitted when Options.Debug is set.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithMetadataResolver replaces the default metadata resolver.
func WithMetadataResolver(r MetadataResolver) Option {
	return func(p *Parser) {
		p.resolver = r
	}
}

// NewParser parses raw HTML from r. pageURL is optional; when set it must
// be an absolute URL and is used to resolve relative links.
func NewParser(r io.Reader, pageURL string, opts readerview.Options, options ...Option) (*Parser, error) {
	doc, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return NewParserFromNode(doc, pageURL, opts, options...)
}

// NewParserFromNode builds a Parser around an already parsed document.
// The document is never modified.
func NewParserFromNode(doc *html.Node, pageURL string, opts readerview.Options, options ...Option) (*Parser, error) {
	if doc == nil {
		return nil, readerview.Errorf(readerview.EINVALID, "document is required")
	}
	u, err := parsePageURL(pageURL)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	video, err := opts.VideoRegexp()
	if err != nil {
		return nil, readerview.Errorf(readerview.EINVALID, "invalid allowed video regex: %v", err)
	}

	p := &Parser{
		doc:      doc,
		url:      u,
		opts:     opts,
		video:    video,
		preserve: set(opts.PreservedClasses()...),
		resolver: rvgoquery.NewMetadataResolver(),
	}
	for _, o := range options {
		o(p)
	}

	switch {
	case !opts.Debug:
		p.logger = slog.New(slog.DiscardHandler)
	case p.logger == nil:
		p.logger = slog.Default()
	}
	return p, nil
}

func parsePageURL(pageURL string) (*url.URL, error) {
	if pageURL == "" {
		return nil, nil
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, readerview.Errorf(readerview.EINVALID, "invalid page URL %q: %v", pageURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, readerview.Errorf(readerview.EINVALID, "page URL %q must be absolute", pageURL)
	}
	return u, nil
}

// Parse runs the extraction pipeline. It returns an error with code
// ENOCONTENT when no article could be found and ETOOLARGE when the document
// has more elements than Options.MaxElemsToParse.
func (p *Parser) Parse() (*readerview.Article, error) {
	doc := cloneTree(p.doc)

	if limit := p.opts.MaxElemsToParse; limit > 0 {
		if n := len(elementsByTag(doc)); n > limit {
			return nil, readerview.Errorf(readerview.ETOOLARGE, "document has %d elements, limit is %d", n, limit)
		}
	}

	base := p.baseURL(doc)
	jsonLD := preprocess(doc)
	meta := p.resolver.Resolve(doc, jsonLD, p.opts)

	g := &grabber{
		opts:     p.opts,
		video:    p.video,
		preserve: p.preserve,
		logger:   p.logger,
		title:    meta.Title,
		byline:   meta.Byline,
	}
	a, err := g.grab(doc)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("article selected", "pass", a.pass.String(), "length", a.textLength)

	p.postProcess(a.content, base)
	return p.buildArticle(a, meta)
}

// baseURL returns the URL relative links resolve against: the first
// <base href> resolved against the page URL, or the page URL itself.
func (p *Parser) baseURL(doc *html.Node) *url.URL {
	if p.url == nil {
		return nil
	}
	for _, b := range elementsByTag(doc, "base") {
		href := strings.TrimSpace(getAttr(b, "href"))
		if href == "" {
			continue
		}
		if u, err := p.url.Parse(href); err == nil {
			return u
		}
		break
	}
	return p.url
}
