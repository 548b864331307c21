package html

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/readerview"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// cleaner removes clutter from the merged article container of one attempt.
type cleaner struct {
	g          *grabber
	s          *scorer
	dataTables map[*html.Node]bool

	// inDataTable memoizes whether a node is, or sits inside, a data table.
	inDataTable map[*html.Node]bool
}

func newCleaner(g *grabber, s *scorer) *cleaner {
	return &cleaner{
		g:           g,
		s:           s,
		dataTables:  make(map[*html.Node]bool),
		inDataTable: make(map[*html.Node]bool),
	}
}

// prepArticle cleans article in place. The steps run in a fixed order;
// later steps rely on tables being classified first.
func (c *cleaner) prepArticle(article *html.Node) {
	c.markDataTables(article)
	fixLazyImages(article)

	c.cleanConditionally(article, "form")
	c.cleanConditionally(article, "fieldset")
	c.clean(article, "object")
	c.clean(article, "embed")
	c.clean(article, "footer")
	c.clean(article, "link")
	c.clean(article, "aside")

	c.removeWidgets(article)

	c.clean(article, "iframe")
	c.clean(article, "input")
	c.clean(article, "textarea")
	c.clean(article, "select")
	c.clean(article, "button")
	c.cleanHeaders(article)

	c.cleanConditionally(article, "table")
	c.cleanConditionally(article, "ul")
	c.cleanConditionally(article, "div")

	for _, h1 := range elementsByTag(article, "h1") {
		setTag(h1, "h2")
	}

	for _, p := range elementsByTag(article, "p") {
		media := len(elementsByTag(p, "img", "embed", "object", "iframe"))
		if media == 0 && innerText(p) == "" {
			detach(p)
		}
	}

	for _, br := range elementsByTag(article, "br") {
		if next := skipBlank(br.NextSibling); isTag(next, atom.P) {
			detach(br)
		}
	}

	unwrapSingleCellTables(article)
}

// clean removes every tag element below root. Embeds pointing at an allowed
// video host are kept.
func (c *cleaner) clean(root *html.Node, tag string) {
	embed := tag == "object" || tag == "embed" || tag == "iframe"
	for _, n := range elementsByTag(root, tag) {
		if embed && isAllowedVideo(n, c.g.video) {
			continue
		}
		detach(n)
	}
}

func isAllowedVideo(n *html.Node, video *regexp.Regexp) bool {
	for _, a := range n.Attr {
		if video.MatchString(a.Val) {
			return true
		}
	}
	return n.DataAtom == atom.Object && video.MatchString(innerHTML(n))
}

// removeWidgets drops share buttons and navigation blocks below article,
// top-level blocks included. Large blocks and blocks carrying a preserved
// class are kept.
func (c *cleaner) removeWidgets(article *html.Node) {
	stats := newStatsCache(nil, nil)
	end := nextNode(article, true)
	n := nextNode(article, false)
	for n != nil && n != end {
		if c.isWidget(n, stats) {
			c.g.logger.Debug("removing widget", "tag", n.Data, "match", matchString(n))
			next := nextNode(n, true)
			stats.detach(n)
			n = next
			continue
		}
		n = nextNode(n, false)
	}
}

func (c *cleaner) isWidget(n *html.Node, stats *statsCache) bool {
	if c.g.hasPreservedClass(n) {
		return false
	}
	match := matchString(n)
	widget := rxShareElements.MatchString(match)
	if !widget {
		switch n.DataAtom {
		case atom.Nav:
			widget = true
		case atom.Div, atom.Section, atom.Ul, atom.Ol:
			widget = rxNavigationElements.MatchString(match)
		}
	}
	return widget && stats.textLength(n) < readerview.DefaultCharThreshold
}

// cleanHeaders removes h1 and h2 elements whose class weight is negative.
func (c *cleaner) cleanHeaders(root *html.Node) {
	for _, h := range elementsByTag(root, "h1", "h2") {
		if c.s.classWeight(h) < 0 {
			detach(h)
		}
	}
}

// cleanConditionally removes tag elements that look more like clutter than
// content. It is skipped on the last relaxation pass.
func (c *cleaner) cleanConditionally(root *html.Node, tag string) {
	if !c.s.pass.CleanConditionally() {
		return
	}
	stats := newStatsCache(c.dataTables, c.g.video)
	nodes := elementsByTag(root, tag)
	// Backwards, so nested elements are judged before their containers.
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if c.shouldRemove(n, tag, stats) {
			c.g.logger.Debug("cleaning conditionally", "tag", tag, "match", matchString(n))
			stats.detach(n)
		}
	}
}

func (c *cleaner) shouldRemove(n *html.Node, tag string, stats *statsCache) bool {
	own := stats.of(n)
	inner := stats.below(n)
	contentLength := own.text.length()

	isList := tag == "ul" || tag == "ol"
	if !isList && contentLength > 0 {
		isList = float64(inner.lists)/float64(contentLength) > 0.9
	}

	if tag == "table" && c.dataTables[n] {
		return false
	}
	if c.insideDataTable(n) {
		return false
	}
	if hasAncestorTag(n, "code", 3, nil) {
		return false
	}
	if inner.dataTable {
		return false
	}

	weight := c.s.classWeight(n)
	if weight < 0 {
		return true
	}
	if own.ascii >= 10 {
		return false
	}

	p := inner.p
	img := inner.img
	li := inner.li - 100
	input := inner.input
	if inner.allowedVideo {
		return false
	}
	embeds := inner.embeds

	if text := own.text; !text.truncated && (rxAdWords.MatchString(text.short) || rxLoadingWords.MatchString(text.short)) {
		return true
	}

	var density, headingDensity, textishDensity float64
	if contentLength > 0 {
		density = inner.links / float64(contentLength)
		headingDensity = float64(inner.headings) / float64(contentLength)
		textishDensity = float64(inner.textish) / float64(contentLength)
	}
	inFigure := hasAncestorTag(n, "figure", 3, nil)
	modifier := c.g.opts.LinkDensityModifier

	var remove bool
	switch {
	case !inFigure && img > 1 && float64(p)/float64(img) < 0.5:
		remove = true
	case !isList && li > p:
		remove = true
	case float64(input) > math.Floor(float64(p)/3):
		remove = true
	case !isList && !inFigure && headingDensity < 0.9 && contentLength < 25 && (img == 0 || img > 2) && density > 0:
		remove = true
	case !isList && weight < 25 && density > 0.2+modifier:
		remove = true
	case weight >= 25 && density > 0.5+modifier:
		remove = true
	case (embeds == 1 && contentLength < 75) || embeds > 1:
		remove = true
	case img == 0 && textishDensity == 0:
		remove = true
	}

	// Lists made of simple items, one image each, are galleries.
	if isList && remove {
		for _, child := range children(n) {
			if len(children(child)) > 1 {
				return remove
			}
		}
		if img == inner.li {
			return false
		}
	}
	return remove
}

// insideDataTable reports whether an ancestor of n is a data table.
func (c *cleaner) insideDataTable(n *html.Node) bool {
	var path []*html.Node
	inside := false
	for p := n.Parent; p != nil; p = p.Parent {
		if v, ok := c.inDataTable[p]; ok {
			inside = v
			break
		}
		path = append(path, p)
	}
	for i := len(path) - 1; i >= 0; i-- {
		q := path[i]
		inside = inside || (isTag(q, atom.Table) && c.dataTables[q])
		c.inDataTable[q] = inside
	}
	return inside
}

// markDataTables records which tables hold tabular data rather than layout.
func (c *cleaner) markDataTables(root *html.Node) {
	for _, table := range elementsByTag(root, "table") {
		c.dataTables[table] = isDataTable(table)
	}
}

func isDataTable(table *html.Node) bool {
	if getAttr(table, "role") == "presentation" {
		return false
	}
	if getAttr(table, "datatable") == "0" {
		return false
	}
	if hasAttr(table, "summary") {
		return true
	}
	if caption := firstByTag(table, "caption"); caption != nil && caption.FirstChild != nil {
		return true
	}
	if len(elementsByTag(table, "col", "colgroup", "tfoot", "thead", "th")) > 0 {
		return true
	}
	if firstByTag(table, "table") != nil {
		return false
	}
	rows, columns := rowAndColumnCount(table)
	if rows == 1 || columns == 1 {
		return false
	}
	if rows >= 10 || columns > 4 {
		return true
	}
	return rows*columns > 10
}

func rowAndColumnCount(table *html.Node) (rows, columns int) {
	for _, tr := range elementsByTag(table, "tr") {
		rows += spanValue(tr, "rowspan")
		var cells int
		for _, td := range elementsByTag(tr, "td") {
			cells += spanValue(td, "colspan")
		}
		columns = max(columns, cells)
	}
	return rows, columns
}

// spanValue reads a rowspan or colspan attribute, defaulting to one.
func spanValue(n *html.Node, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(getAttr(n, key)))
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// fixLazyImages moves image URLs kept in custom attributes into src and
// srcset, and drops tiny base64 placeholders when a real URL exists.
func fixLazyImages(root *html.Node) {
	for _, el := range elementsByTag(root, "img", "picture", "figure") {
		if src := getAttr(el, "src"); src != "" {
			if m := rxB64DataURL.FindStringSubmatch(src); m != nil {
				if m[1] == "image/svg+xml" {
					continue
				}
				if hasImageURLAttr(el) {
					start := rxBase64Marker.FindStringIndex(src)[0] + 7
					if len(src)-start < 133 {
						removeAttr(el, "src")
					}
				}
			}
		}

		srcset := getAttr(el, "srcset")
		if (getAttr(el, "src") != "" || (srcset != "" && srcset != "null")) &&
			!strings.Contains(strings.ToLower(className(el)), "lazy") {
			continue
		}

		attrs := append([]html.Attribute(nil), el.Attr...)
		for _, a := range attrs {
			switch a.Key {
			case "src", "srcset", "alt":
				continue
			}
			var copyTo string
			switch {
			case rxSrcsetCandidate.MatchString(a.Val):
				copyTo = "srcset"
			case rxSrcCandidate.MatchString(a.Val):
				copyTo = "src"
			default:
				continue
			}
			switch el.DataAtom {
			case atom.Img, atom.Picture:
				setAttr(el, copyTo, a.Val)
			case atom.Figure:
				if len(elementsByTag(el, "img", "picture")) == 0 {
					img := createElement("img")
					setAttr(img, copyTo, a.Val)
					el.AppendChild(img)
				}
			}
		}
	}
}

// hasImageURLAttr reports whether an attribute other than src looks like an
// image URL.
func hasImageURLAttr(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "src" {
			continue
		}
		if rxImageExtension.MatchString(a.Val) {
			return true
		}
	}
	return false
}

// unwrapSingleCellTables replaces tables with exactly one cell by the cell,
// turned into a paragraph when it only holds inline content.
func unwrapSingleCellTables(root *html.Node) {
	for _, table := range elementsByTag(root, "table") {
		tbody := table
		if hasSingleTagInside(table, "tbody") {
			tbody = firstElementChild(table)
		}
		if !hasSingleTagInside(tbody, "tr") {
			continue
		}
		row := firstElementChild(tbody)
		if !hasSingleTagInside(row, "td") {
			continue
		}
		cell := firstElementChild(row)
		tag := "div"
		if allPhrasing(cell) {
			tag = "p"
		}
		setTag(cell, tag)
		replaceNode(table, cell)
	}
}

func allPhrasing(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isPhrasingContent(c) {
			return false
		}
	}
	return true
}

// innerHTML renders the children of n, or "" if they cannot be rendered.
func innerHTML(n *html.Node) string {
	s, _ := renderChildren(n)
	return s
}
