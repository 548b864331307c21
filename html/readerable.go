package html

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ReaderableOptions tunes IsProbablyReaderable.
type ReaderableOptions struct {
	// MinContentLength is the text length a node needs to count.
	MinContentLength int

	// MinScore is the accumulated score above which a document is readerable.
	MinScore float64
}

// DefaultReaderableOptions returns the thresholds used by reader modes.
func DefaultReaderableOptions() ReaderableOptions {
	return ReaderableOptions{
		MinContentLength: 140,
		MinScore:         20,
	}
}

// IsProbablyReaderable is a quick check of whether Parse is likely to find
// an article in doc. It does not modify doc.
func IsProbablyReaderable(doc *html.Node, opts ReaderableOptions) bool {
	d := goquery.NewDocumentFromNode(doc)

	nodes := d.Find("p, pre, article")
	d.Find("div > br").Each(func(_ int, br *goquery.Selection) {
		nodes = nodes.AddSelection(br.Parent())
	})

	var score float64
	readerable := false
	nodes.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		n := s.Get(0)
		if !isProbablyVisible(n) {
			return true
		}
		match := matchString(n)
		if rxUnlikelyCandidates.MatchString(match) && !rxOkMaybeItsACandidate.MatchString(match) {
			return true
		}
		if s.Is("li p") {
			return true
		}
		length := charCount(strings.TrimSpace(s.Text()))
		if length < opts.MinContentLength {
			return true
		}
		score += math.Sqrt(float64(length - opts.MinContentLength))
		readerable = score > opts.MinScore
		return !readerable
	})
	return readerable
}
