package html

import (
	"log/slog"
	"math"
	"regexp"
	"sort"

	"github.com/fwojciec/readerview"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// grabber selects the article container of a document. It runs scoring
// passes with progressively relaxed heuristics until one yields enough text.
type grabber struct {
	opts     readerview.Options
	video    *regexp.Regexp
	preserve map[string]bool
	logger   *slog.Logger

	// title and byline are the resolved metadata; nodes repeating them
	// are dropped from the content.
	title  string
	byline string
}

// attempt is the outcome of one pass.
type attempt struct {
	pass       readerview.Pass
	content    *html.Node
	textLength int
	dir        string
}

// grab runs the retry loop. Each pass starts from a pristine copy of the
// body. The first attempt reaching the character threshold wins; once
// relaxation is exhausted the longest attempt is returned. An error with
// code ENOCONTENT is returned when every attempt is empty.
func (g *grabber) grab(doc *html.Node) (*attempt, error) {
	page := body(doc)
	if page == nil {
		return nil, readerview.Errorf(readerview.ENOCONTENT, "document has no body")
	}
	pristine := cloneTree(page)

	var attempts []*attempt
	for pass := readerview.PassStrict; !pass.Exhausted(); pass = pass.Next() {
		if pass != readerview.PassStrict {
			restoreChildren(page, pristine)
		}

		a := g.attempt(doc, page, pass)
		g.logger.Debug("extraction pass",
			"pass", pass.String(),
			"length", a.textLength,
			"threshold", g.opts.CharThreshold,
		)
		if a.textLength >= g.opts.CharThreshold {
			return a, nil
		}
		attempts = append(attempts, a)
	}

	best := attempts[0]
	for _, a := range attempts[1:] {
		if a.textLength > best.textLength {
			best = a
		}
	}
	if best.textLength == 0 {
		return nil, readerview.Errorf(readerview.ENOCONTENT, "no content found")
	}
	return best, nil
}

// restoreChildren replaces the children of page with a copy of pristine's.
func restoreChildren(page, pristine *html.Node) {
	for page.FirstChild != nil {
		page.RemoveChild(page.FirstChild)
	}
	moveChildren(page, cloneTree(pristine))
}

// attempt scores the document with the flags of pass, picks the top
// candidate, merges its siblings and cleans the result.
func (g *grabber) attempt(doc, page *html.Node, pass readerview.Pass) *attempt {
	s := newScorer(pass)
	elements := g.prepNodes(doc, s)
	stats := newStatsCache(nil, nil)
	s.score(elements, stats)
	ranked := g.rank(s, doc, stats)

	var top *html.Node
	createdTop := false
	if len(ranked) == 0 || ranked[0].node.DataAtom == atom.Body {
		// Nothing stands out: wrap the whole body.
		top = createElement("div")
		createdTop = true
		moveChildren(top, page)
		page.AppendChild(top)
		s.initialize(top)
	} else {
		top = g.refineTop(s, ranked)
	}

	dir := articleDir(top)

	content := createElement("div")
	g.mergeSiblings(s, top, content)

	c := newCleaner(g, s)
	c.prepArticle(content)

	if createdTop {
		setAttr(top, "id", "readability-page-1")
		setAttr(top, "class", "page")
	} else {
		wrapper := createElement("div")
		setAttr(wrapper, "id", "readability-page-1")
		setAttr(wrapper, "class", "page")
		moveChildren(wrapper, content)
		content.AppendChild(wrapper)
	}

	return &attempt{
		pass:       pass,
		content:    content,
		textLength: charCount(innerText(content)),
		dir:        dir,
	}
}

// rank scales every candidate score by its link density and returns the
// best candidates, highest first. Equal scores keep document order.
func (g *grabber) rank(s *scorer, doc *html.Node, stats *statsCache) []*candidate {
	index := make(map[*html.Node]int)
	for i, n := range descendants(doc) {
		index[n] = i
	}

	ranked := make([]*candidate, 0, len(s.order))
	for _, c := range s.order {
		c.score *= 1 - stats.linkDensity(c.node)
		ranked = append(ranked, c)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return index[ranked[i].node] < index[ranked[j].node]
	})
	if len(ranked) > g.opts.NbTopCandidates {
		ranked = ranked[:g.opts.NbTopCandidates]
	}

	if len(ranked) > 0 {
		g.logger.Debug("top candidates",
			"count", len(ranked),
			"tag", ranked[0].node.Data,
			"score", ranked[0].score,
		)
	}
	return ranked
}

// refineTop improves on the best candidate: a common ancestor of several
// strong candidates, a better scoring parent, or a parent with no other
// child takes its place.
func (g *grabber) refineTop(s *scorer, ranked []*candidate) *html.Node {
	top := ranked[0].node
	topScore := ranked[0].score

	// shared counts how many strong alternatives sit below each ancestor.
	shared := make(map[*html.Node]int)
	alternatives := 0
	if topScore > 0 {
		for _, c := range ranked[1:] {
			if c.score/topScore >= alternativeScoreRatio {
				alternatives++
				for _, a := range ancestors(c.node, 0) {
					shared[a]++
				}
			}
		}
	}
	if alternatives >= minimumTopCandidates {
		for parent := top.Parent; parent != nil && parent.DataAtom != atom.Body; parent = parent.Parent {
			if shared[parent] >= minimumTopCandidates {
				top = parent
				break
			}
		}
	}
	lastScore := s.initialize(top).score

	// Climb while parents keep a meaningful share of the score.
	threshold := lastScore / 3
	for parent := top.Parent; parent != nil && isElement(parent) && parent.DataAtom != atom.Body; parent = parent.Parent {
		c, ok := s.lookup(parent)
		if !ok {
			continue
		}
		if c.score < threshold {
			break
		}
		if c.score > lastScore {
			top = parent
			break
		}
		lastScore = c.score
	}

	// A parent with a single element child says the same thing.
	for parent := top.Parent; parent != nil && isElement(parent) && parent.DataAtom != atom.Body && len(children(parent)) == 1; parent = top.Parent {
		top = parent
	}
	s.initialize(top)
	return top
}

// mergeSiblings moves top and the siblings that look like part of the same
// article into content.
func (g *grabber) mergeSiblings(s *scorer, top, content *html.Node) {
	topCandidate := s.initialize(top)
	threshold := math.Max(minSiblingScore, topCandidate.score*siblingScoreRatio)
	topClass := className(top)

	parent := top.Parent
	if parent == nil {
		appendChild(content, top)
		return
	}

	for _, sibling := range children(parent) {
		include := sibling == top
		if !include {
			var bonus float64
			if topClass != "" && className(sibling) == topClass {
				bonus += topCandidate.score * siblingScoreRatio
			}
			if c, ok := s.lookup(sibling); ok && c.score+bonus >= threshold {
				include = true
			} else if sibling.DataAtom == atom.P {
				include = isProseParagraph(sibling)
			}
		}
		if !include {
			continue
		}
		if !alterToDivExceptions[sibling.Data] {
			setTag(sibling, "div")
		}
		appendChild(content, sibling)
	}
}

// isProseParagraph reports whether a paragraph reads like article text:
// long with few links, or short, link free and ending a sentence.
func isProseParagraph(p *html.Node) bool {
	density := linkDensity(p)
	text := innerText(p)
	length := charCount(text)
	if length > 80 && density < 0.25 {
		return true
	}
	return length < 80 && length > 0 && density == 0 && rxSentenceEnd.MatchString(text)
}

// articleDir returns the first dir attribute found on top's parent, top,
// or the parent's ancestors.
func articleDir(top *html.Node) string {
	nodes := []*html.Node{top}
	if top.Parent != nil {
		nodes = append([]*html.Node{top.Parent, top}, ancestors(top.Parent, 0)...)
	}
	for _, n := range nodes {
		if !isElement(n) {
			continue
		}
		if dir := getAttr(n, "dir"); dir != "" {
			return dir
		}
	}
	return ""
}
