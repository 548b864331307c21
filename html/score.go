package html

import (
	"math"
	"strings"

	"github.com/fwojciec/readerview"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// candidate is a node considered as the article container during one
// scoring pass.
type candidate struct {
	node  *html.Node
	score float64
}

// scorer assigns content scores to the nodes of one attempt. A new scorer
// is created for every pass.
type scorer struct {
	pass       readerview.Pass
	candidates map[*html.Node]*candidate
	order      []*candidate
}

func newScorer(pass readerview.Pass) *scorer {
	return &scorer{
		pass:       pass,
		candidates: make(map[*html.Node]*candidate),
	}
}

// classWeight rewards or penalizes n by its class and id names.
func (s *scorer) classWeight(n *html.Node) float64 {
	return classWeightFor(n, s.pass)
}

func classWeightFor(n *html.Node, pass readerview.Pass) float64 {
	if !pass.WeightClasses() {
		return 0
	}
	var weight float64
	if c := className(n); c != "" {
		if rxNegative.MatchString(c) {
			weight -= classWeight
		}
		if rxPositive.MatchString(c) {
			weight += classWeight
		}
	}
	if i := id(n); i != "" {
		if rxNegative.MatchString(i) {
			weight -= classWeight
		}
		if rxPositive.MatchString(i) {
			weight += classWeight
		}
	}
	return weight
}

// initialize registers n as a candidate with its tag and class weight.
// An already registered node is returned unchanged.
func (s *scorer) initialize(n *html.Node) *candidate {
	if c, ok := s.candidates[n]; ok {
		return c
	}
	c := &candidate{node: n, score: tagWeights[n.Data] + s.classWeight(n)}
	s.candidates[n] = c
	s.order = append(s.order, c)
	return c
}

func (s *scorer) lookup(n *html.Node) (*candidate, bool) {
	c, ok := s.candidates[n]
	return c, ok
}

// score computes the content score of every element and propagates it to
// the element's ancestors, tapering with distance. The tree must not change
// while stats are in use.
func (s *scorer) score(elements []*html.Node, stats *statsCache) {
	for _, el := range elements {
		if el.Parent == nil || !isElement(el.Parent) {
			continue
		}
		st := stats.of(el)
		length := st.text.length()
		if length < minScoredTextLength {
			continue
		}
		parents := ancestors(el, maxScoredAncestors)
		if len(parents) == 0 {
			continue
		}

		contentScore := 1.0
		contentScore += float64(st.commas + 1)
		contentScore += math.Min(math.Floor(float64(length)/100), 3)

		for level, ancestor := range parents {
			if !isElement(ancestor) || ancestor.Parent == nil || !isElement(ancestor.Parent) {
				continue
			}
			c := s.initialize(ancestor)
			var divider float64
			switch level {
			case 0:
				divider = 1
			case 1:
				divider = 2
			default:
				divider = float64(level) * 3
			}
			c.score += contentScore / divider
		}
	}
}

// linkDensity is the share of n's text that sits inside links. Links that
// only carry a fragment count for less.
func linkDensity(n *html.Node) float64 {
	textLength := charCount(innerText(n))
	if textLength == 0 {
		return 0
	}
	var linkLength float64
	for _, a := range elementsByTag(n, "a") {
		coefficient := 1.0
		if rxHashURL.MatchString(getAttr(a, "href")) {
			coefficient = hashLinkCoefficient
		}
		linkLength += float64(charCount(innerText(a))) * coefficient
	}
	return linkLength / float64(textLength)
}

// prepNodes walks the document once, removing nodes that can never be
// content, normalizing divs and collecting the elements to score.
func (g *grabber) prepNodes(doc *html.Node, s *scorer) []*html.Node {
	var elements []*html.Node
	removeTitleHeader := true
	bylineRemoved := false

	n := documentElement(doc)
	for n != nil {
		match := matchString(n)

		if g.byline != "" && !bylineRemoved && isBylineNode(n, match) && strings.TrimSpace(textContent(n)) == g.byline {
			bylineRemoved = true
			n = removeAndGetNext(n)
			continue
		}

		if removeTitleHeader && g.headerDuplicatesTitle(n) {
			removeTitleHeader = false
			n = removeAndGetNext(n)
			continue
		}

		if s.pass.StripUnlikely() && n.DataAtom != atom.Body && n.DataAtom != atom.A && !g.hasPreservedClass(n) {
			if rxUnlikelyCandidates.MatchString(match) &&
				!rxOkMaybeItsACandidate.MatchString(match) &&
				!hasAncestorTag(n, "table", 3, nil) &&
				!hasAncestorTag(n, "code", 3, nil) {
				g.logger.Debug("removing unlikely candidate", "tag", n.Data, "match", match)
				n = removeAndGetNext(n)
				continue
			}
			if unlikelyRoles[getAttr(n, "role")] {
				g.logger.Debug("removing unlikely role", "tag", n.Data, "role", getAttr(n, "role"))
				n = removeAndGetNext(n)
				continue
			}
		}

		switch n.DataAtom {
		case atom.Div, atom.Section, atom.Header, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			if isElementWithoutContent(n) {
				n = removeAndGetNext(n)
				continue
			}
		}

		if tagsToScore[n.Data] {
			elements = append(elements, n)
		}

		if n.DataAtom == atom.Div {
			wrapPhrasingContent(n)

			if hasSingleTagInside(n, "p") && linkDensity(n) < singleParagraphDensity {
				child := children(n)[0]
				replaceNode(n, child)
				n = child
				elements = append(elements, n)
			} else if !hasChildBlockElement(n) {
				setTag(n, "p")
				elements = append(elements, n)
			}
		}

		n = nextNode(n, false)
	}
	return elements
}

// hasPreservedClass reports whether n carries a class the caller asked to
// keep.
func (g *grabber) hasPreservedClass(n *html.Node) bool {
	for _, class := range strings.Fields(className(n)) {
		if g.preserve[class] {
			return true
		}
	}
	return false
}

// wrapPhrasingContent puts runs of inline children of div into paragraphs.
func wrapPhrasingContent(div *html.Node) {
	var p *html.Node
	for child := div.FirstChild; child != nil; {
		next := child.NextSibling
		if isPhrasingContent(child) {
			if p != nil {
				appendChild(p, child)
			} else if !isWhitespace(child) {
				p = createElement("p")
				replaceNode(child, p)
				appendChild(p, child)
			}
		} else if p != nil {
			for p.LastChild != nil && isWhitespace(p.LastChild) {
				p.RemoveChild(p.LastChild)
			}
			p = nil
		}
		child = next
	}
	if p != nil {
		for p.LastChild != nil && isWhitespace(p.LastChild) {
			p.RemoveChild(p.LastChild)
		}
	}
}

func isBylineNode(n *html.Node, match string) bool {
	if getAttr(n, "rel") == "author" || strings.Contains(getAttr(n, "itemprop"), "author") {
		return true
	}
	return rxByline.MatchString(match)
}

// headerDuplicatesTitle reports whether n is an h1 or h2 repeating the
// article title.
func (g *grabber) headerDuplicatesTitle(n *html.Node) bool {
	if n.DataAtom != atom.H1 && n.DataAtom != atom.H2 {
		return false
	}
	if g.title == "" {
		return false
	}
	heading := innerText(n)
	return readerview.TextSimilarity(g.title, heading) > 0.75
}
