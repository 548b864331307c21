package html

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Helpers over golang.org/x/net/html nodes. Walks are iterative: documents
// from the wild can nest thousands of levels deep.

func isElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

func isTag(n *html.Node, a atom.Atom) bool {
	return isElement(n) && n.DataAtom == a
}

// tagName returns the lower-case tag of an element, or "" for other nodes.
func tagName(n *html.Node) string {
	if !isElement(n) {
		return ""
	}
	return n.Data
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

func className(n *html.Node) string {
	return getAttr(n, "class")
}

func id(n *html.Node) string {
	return getAttr(n, "id")
}

// matchString is the class and id of n joined for pattern matching.
func matchString(n *html.Node) string {
	return className(n) + " " + id(n)
}

// setTag renames an element in place. The node keeps its identity, so
// scores recorded for it stay attached.
func setTag(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

func createElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func createText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// detach removes n from its parent, if any.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// appendChild moves child under parent, detaching it first.
func appendChild(parent, child *html.Node) {
	detach(child)
	parent.AppendChild(child)
}

// replaceNode puts repl in the position of old. repl is detached first.
func replaceNode(old, repl *html.Node) {
	if old.Parent == nil {
		return
	}
	detach(repl)
	old.Parent.InsertBefore(repl, old)
	old.Parent.RemoveChild(old)
}

// moveChildren moves every child of src to the end of dst.
func moveChildren(dst, src *html.Node) {
	for src.FirstChild != nil {
		appendChild(dst, src.FirstChild)
	}
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c) {
			return c
		}
	}
	return nil
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if isElement(s) {
			return s
		}
	}
	return nil
}

func previousElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if isElement(s) {
			return s
		}
	}
	return nil
}

// children returns the element children of n.
func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c) {
			out = append(out, c)
		}
	}
	return out
}

// childNodes returns every child of n, including text.
func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// nextNode returns the next node in depth-first order among elements.
// With skipChildren the subtree of n is skipped.
func nextNode(n *html.Node, skipChildren bool) *html.Node {
	if !skipChildren {
		if c := firstElementChild(n); c != nil {
			return c
		}
	}
	if s := nextElementSibling(n); s != nil {
		return s
	}
	for n = n.Parent; n != nil; n = n.Parent {
		if s := nextElementSibling(n); s != nil {
			return s
		}
	}
	return nil
}

// removeAndGetNext removes n and returns the node that follows its subtree.
func removeAndGetNext(n *html.Node) *html.Node {
	next := nextNode(n, true)
	detach(n)
	return next
}

// descendants returns every node strictly below root in document order.
func descendants(root *html.Node) []*html.Node {
	var out []*html.Node
	stack := []*html.Node{}
	for c := root.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return out
}

// elementsByTag returns descendant elements of root whose tag is one of
// tags, in document order. An empty tag list matches every element.
func elementsByTag(root *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	for _, n := range descendants(root) {
		if !isElement(n) {
			continue
		}
		if len(tags) == 0 {
			out = append(out, n)
			continue
		}
		for _, t := range tags {
			if n.Data == t {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// firstByTag returns the first element below root with the given tag.
func firstByTag(root *html.Node, tag string) *html.Node {
	stack := []*html.Node{}
	for c := root.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isElement(n) && n.Data == tag {
			return n
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return nil
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for _, d := range descendants(n) {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return b.String()
}

// innerText is the trimmed text of n with whitespace runs collapsed.
func innerText(n *html.Node) string {
	return normalizeSpaces(strings.TrimSpace(textContent(n)))
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// charCount is the Unicode-aware length used for every threshold.
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

// ancestors returns up to maxDepth ancestors of n, nearest first.
// maxDepth <= 0 means no limit.
func ancestors(n *html.Node, maxDepth int) []*html.Node {
	var out []*html.Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
		if maxDepth > 0 && len(out) == maxDepth {
			break
		}
	}
	return out
}

// hasAncestorTag reports whether an ancestor of n within maxDepth levels has
// the given tag and satisfies filter. maxDepth <= 0 means no limit.
func hasAncestorTag(n *html.Node, tag string, maxDepth int, filter func(*html.Node) bool) bool {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if maxDepth > 0 && depth > maxDepth {
			return false
		}
		if isElement(p) && p.Data == tag && (filter == nil || filter(p)) {
			return true
		}
		depth++
	}
	return false
}

// isWhitespace reports whether n is blank text or a <br>.
func isWhitespace(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return strings.TrimSpace(n.Data) == ""
	case html.ElementNode:
		return n.DataAtom == atom.Br
	}
	return false
}

// isPhrasingContent reports whether n is inline content. Links, del and ins
// count as phrasing when all their content is phrasing.
func isPhrasingContent(n *html.Node) bool {
	stack := []*html.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.TextNode {
			continue
		}
		if !isElement(cur) {
			return false
		}
		if phrasingElems[cur.Data] {
			continue
		}
		switch cur.DataAtom {
		case atom.A, atom.Del, atom.Ins:
			for c := cur.FirstChild; c != nil; c = c.NextSibling {
				stack = append(stack, c)
			}
		default:
			return false
		}
	}
	return true
}

// hasSingleTagInside reports whether n has exactly one element child with
// the given tag and no non-blank text of its own.
func hasSingleTagInside(n *html.Node, tag string) bool {
	kids := children(n)
	if len(kids) != 1 || kids[0].Data != tag {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && rxHasContent.MatchString(c.Data) {
			return false
		}
	}
	return true
}

// isElementWithoutContent reports whether n is an element with no text
// whose only element children, if any, are <br> and <hr>. Only the
// children of n are inspected.
func isElementWithoutContent(n *html.Node) bool {
	if !isElement(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		case html.ElementNode:
			if c.DataAtom != atom.Br && c.DataAtom != atom.Hr {
				return false
			}
		}
	}
	return true
}

// hasChildBlockElement reports whether any descendant of n is a block
// element that prevents turning n into a paragraph. The walk stops at the
// first one.
func hasChildBlockElement(n *html.Node) bool {
	stack := []*html.Node{}
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isElement(d) && divToPElems[d.Data] {
			return true
		}
		for c := d.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return false
}

// isSingleImage reports whether n is an <img> or wraps a single image
// with no text along the way.
func isSingleImage(n *html.Node) bool {
	for {
		if isTag(n, atom.Img) {
			return true
		}
		kids := children(n)
		if len(kids) != 1 || strings.TrimSpace(textContent(n)) != "" {
			return false
		}
		n = kids[0]
	}
}

// cloneTree returns a deep copy of n without parent or siblings.
func cloneTree(n *html.Node) *html.Node {
	type pair struct{ src, dst *html.Node }
	root := cloneNode(n)
	stack := []pair{{n, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := p.src.FirstChild; c != nil; c = c.NextSibling {
			cc := cloneNode(c)
			p.dst.AppendChild(cc)
			stack = append(stack, pair{c, cc})
		}
	}
	return root
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	return c
}

// documentElement returns the <html> element of a document node.
func documentElement(doc *html.Node) *html.Node {
	if isTag(doc, atom.Html) {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if isTag(c, atom.Html) {
			return c
		}
	}
	return nil
}

// body returns the <body> element, or nil.
func body(doc *html.Node) *html.Node {
	root := documentElement(doc)
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if isTag(c, atom.Body) {
			return c
		}
	}
	return nil
}
