package html

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// shortTextLimit is the longest normalized text a span keeps verbatim. It
// covers every anchored pattern matched against a whole element's text.
const shortTextLimit = 32

// textSpan summarizes a run of text as innerText would see it: trimmed,
// with white space runs collapsed to one space. Spans concatenate, so the
// span of an element is built from its children without rescanning them.
type textSpan struct {
	raw         bool // holds at least one character
	lead, trail bool // starts or ends with white space
	runes       int  // non-space runes
	fields      int  // space separated words
	short       string
	truncated   bool // short is unset because the text is too long
}

func spanOf(s string) textSpan {
	if s == "" {
		return textSpan{}
	}
	t := textSpan{raw: true}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	t.lead = unicode.IsSpace(first)
	t.trail = unicode.IsSpace(last)
	inWord := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		t.runes++
		if !inWord {
			t.fields++
			inWord = true
		}
	}
	if t.length() <= shortTextLimit {
		t.short = strings.Join(strings.Fields(s), " ")
	} else {
		t.truncated = true
	}
	return t
}

// length is the rune count of the normalized text.
func (t textSpan) length() int {
	if t.fields == 0 {
		return 0
	}
	return t.runes + t.fields - 1
}

// concat returns the span of t followed by u.
func (t textSpan) concat(u textSpan) textSpan {
	if !t.raw {
		return u
	}
	if !u.raw {
		return t
	}
	join := t.fields > 0 && u.fields > 0 && !t.trail && !u.lead
	out := textSpan{
		raw:    true,
		lead:   t.lead,
		trail:  u.trail,
		runes:  t.runes + u.runes,
		fields: t.fields + u.fields,
	}
	if join {
		out.fields--
	}
	if t.truncated || u.truncated || out.length() > shortTextLimit {
		out.truncated = true
		return out
	}
	sep := ""
	if t.fields > 0 && u.fields > 0 && !join {
		sep = " "
	}
	out.short = t.short + sep + u.short
	return out
}

// subtreeStats summarizes a node and everything below it. Lengths are
// normalized text lengths of matching elements; counts are elements.
type subtreeStats struct {
	text     textSpan
	commas   int
	ascii    int // ASCII commas
	links    float64
	lists    int
	headings int
	textish  int

	p, img, li, input, embeds int

	allowedVideo bool
	dataTable    bool
}

func (s *subtreeStats) add(o *subtreeStats) {
	s.text = s.text.concat(o.text)
	s.commas += o.commas
	s.ascii += o.ascii
	s.links += o.links
	s.lists += o.lists
	s.headings += o.headings
	s.textish += o.textish
	s.p += o.p
	s.img += o.img
	s.li += o.li
	s.input += o.input
	s.embeds += o.embeds
	s.allowedVideo = s.allowedVideo || o.allowedVideo
	s.dataTable = s.dataTable || o.dataTable
}

// textishTags hold the text that keeps a container from looking empty.
var textishTags = func() map[string]bool {
	m := set("span", "li", "td")
	for t := range divToPElems {
		m[t] = true
	}
	return m
}()

// statsCache computes subtreeStats bottom-up and keeps them until the tree
// changes. The cached set is closed under descendants: a node is only
// cached once all of its children are.
type statsCache struct {
	m          map[*html.Node]*subtreeStats
	dataTables map[*html.Node]bool
	video      *regexp.Regexp
}

func newStatsCache(dataTables map[*html.Node]bool, video *regexp.Regexp) *statsCache {
	return &statsCache{
		m:          make(map[*html.Node]*subtreeStats),
		dataTables: dataTables,
		video:      video,
	}
}

// of returns the stats of n and its subtree.
func (sc *statsCache) of(n *html.Node) *subtreeStats {
	if st, ok := sc.m[n]; ok {
		return st
	}
	type frame struct {
		n       *html.Node
		visited bool
	}
	stack := []frame{{n: n}}
	for len(stack) > 0 {
		top := len(stack) - 1
		f := stack[top]
		if f.visited {
			stack = stack[:top]
			sc.m[f.n] = sc.compute(f.n)
			continue
		}
		stack[top].visited = true
		for c := f.n.LastChild; c != nil; c = c.PrevSibling {
			if _, ok := sc.m[c]; !ok {
				stack = append(stack, frame{n: c})
			}
		}
	}
	return sc.m[n]
}

// below returns the stats of the descendants of n, without n itself.
func (sc *statsCache) below(n *html.Node) *subtreeStats {
	sc.of(n)
	return sc.sum(n)
}

func (sc *statsCache) sum(n *html.Node) *subtreeStats {
	st := &subtreeStats{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		st.add(sc.m[c])
	}
	return st
}

// compute builds the stats of n from its already cached children.
func (sc *statsCache) compute(n *html.Node) *subtreeStats {
	switch n.Type {
	case html.TextNode:
		return &subtreeStats{
			text:   spanOf(n.Data),
			commas: len(rxCommas.FindAllStringIndex(n.Data, -1)),
			ascii:  strings.Count(n.Data, ","),
		}
	case html.ElementNode, html.DocumentNode:
	default:
		return &subtreeStats{}
	}

	st := sc.sum(n)
	if n.Type != html.ElementNode {
		return st
	}
	length := st.text.length()
	switch n.Data {
	case "a":
		coefficient := 1.0
		if rxHashURL.MatchString(getAttr(n, "href")) {
			coefficient = hashLinkCoefficient
		}
		st.links += float64(length) * coefficient
	case "ul", "ol":
		st.lists += length
	case "h1", "h2", "h3", "h4", "h5", "h6":
		st.headings += length
	case "p":
		st.p++
	case "img":
		st.img++
	case "li":
		st.li++
	case "input":
		st.input++
	case "object", "embed", "iframe":
		st.embeds++
		if sc.video != nil && isAllowedVideo(n, sc.video) {
			st.allowedVideo = true
		}
	case "table":
		if sc.dataTables[n] {
			st.dataTable = true
		}
	}
	if textishTags[n.Data] {
		st.textish += length
	}
	return st
}

// detach removes n from the tree and drops the stats of its former
// ancestors. Because the cache is closed under descendants, the walk stops
// at the first ancestor that is not cached.
func (sc *statsCache) detach(n *html.Node) {
	for p := n.Parent; p != nil; p = p.Parent {
		if _, ok := sc.m[p]; !ok {
			break
		}
		delete(sc.m, p)
	}
	detach(n)
}

// textLength is the normalized text length of n.
func (sc *statsCache) textLength(n *html.Node) int {
	return sc.of(n).text.length()
}

// linkDensity is the share of n's text that sits inside links below n.
func (sc *statsCache) linkDensity(n *html.Node) float64 {
	length := sc.textLength(n)
	if length == 0 {
		return 0
	}
	return sc.below(n).links / float64(length)
}
