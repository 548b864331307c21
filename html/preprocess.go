package html

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// preprocess normalizes doc in place before any scoring happens. It never
// fails. The raw JSON-LD blocks are returned because the script elements
// that carry them are removed here.
func preprocess(doc *html.Node) []string {
	jsonLD := collectJSONLD(doc)
	unwrapNoscriptImages(doc)
	removeInert(doc)
	removeHidden(doc)
	if b := body(doc); b != nil {
		replaceBrs(b)
	}
	replacePresentational(doc)
	mergeTextNodes(doc)
	return jsonLD
}

func collectJSONLD(doc *html.Node) []string {
	var blocks []string
	for _, s := range elementsByTag(doc, "script") {
		if !strings.EqualFold(strings.TrimSpace(getAttr(s, "type")), "application/ld+json") {
			continue
		}
		content := strings.TrimSpace(textContent(s))
		content = strings.TrimPrefix(content, "<![CDATA[")
		content = strings.TrimSuffix(content, "]]>")
		if content = strings.TrimSpace(content); content != "" {
			blocks = append(blocks, content)
		}
	}
	return blocks
}

// unwrapNoscriptImages drops placeholder images that have no source and
// swaps lazy-loaded images for the real image kept inside <noscript>.
func unwrapNoscriptImages(doc *html.Node) {
	for _, img := range elementsByTag(doc, "img") {
		if !hasImageSource(img) {
			detach(img)
		}
	}

	for _, noscript := range elementsByTag(doc, "noscript") {
		if noscript.Parent == nil || !isSingleImage(noscript) {
			continue
		}
		replacement := firstElementChild(noscript)
		prev := previousElementSibling(noscript)
		if replacement == nil || prev == nil || !isSingleImage(prev) {
			continue
		}

		prevImg := prev
		if !isTag(prevImg, atom.Img) {
			prevImg = firstByTag(prev, "img")
		}
		newImg := replacement
		if !isTag(newImg, atom.Img) {
			newImg = firstByTag(replacement, "img")
		}
		if prevImg == nil || newImg == nil {
			continue
		}

		for _, a := range prevImg.Attr {
			if a.Val == "" {
				continue
			}
			if a.Key != "src" && a.Key != "srcset" && !rxImageExtension.MatchString(a.Val) {
				continue
			}
			if getAttr(newImg, a.Key) == a.Val {
				continue
			}
			key := a.Key
			if hasAttr(newImg, key) {
				key = "data-old-" + key
			}
			setAttr(newImg, key, a.Val)
		}
		replaceNode(prev, replacement)
	}
}

func hasImageSource(img *html.Node) bool {
	for _, a := range img.Attr {
		switch a.Key {
		case "src", "srcset", "data-src", "data-srcset":
			return true
		}
		if rxImageExtension.MatchString(a.Val) {
			return true
		}
	}
	return false
}

// removeInert drops scripts, styles, links, templates, remaining noscript
// wrappers and comments.
func removeInert(doc *html.Node) {
	for _, n := range descendants(doc) {
		switch {
		case n.Type == html.CommentNode:
			detach(n)
		case isElement(n) && inertTags[n.Data]:
			detach(n)
		}
	}
}

// removeHidden drops elements that would not be rendered.
func removeHidden(doc *html.Node) {
	root := documentElement(doc)
	if root == nil {
		return
	}
	n := nextNode(root, false)
	for n != nil {
		if n.DataAtom != atom.Body && n.DataAtom != atom.Head && (!isProbablyVisible(n) || isModalDialog(n)) {
			n = removeAndGetNext(n)
			continue
		}
		n = nextNode(n, false)
	}
}

func isProbablyVisible(n *html.Node) bool {
	style := getAttr(n, "style")
	if rxDisplayNone.MatchString(style) || rxVisibilityHidden.MatchString(style) {
		return false
	}
	if hasAttr(n, "hidden") {
		return false
	}
	if getAttr(n, "aria-hidden") == "true" && !strings.Contains(className(n), "fallback-image") {
		return false
	}
	return true
}

func isModalDialog(n *html.Node) bool {
	return getAttr(n, "aria-modal") == "true" && getAttr(n, "role") == "dialog"
}

// replaceBrs turns chains of two or more <br> into paragraphs holding the
// phrasing content that follows the chain.
func replaceBrs(root *html.Node) {
	for _, br := range elementsByTag(root, "br") {
		if br.Parent == nil {
			continue
		}
		replaced := false
		next := skipBlank(br.NextSibling)
		for next != nil && isTag(next, atom.Br) {
			replaced = true
			sibling := next.NextSibling
			detach(next)
			next = skipBlank(sibling)
		}
		if !replaced {
			continue
		}

		p := createElement("p")
		replaceNode(br, p)
		for next = p.NextSibling; next != nil; {
			if isTag(next, atom.Br) {
				if after := skipBlank(next.NextSibling); after != nil && isTag(after, atom.Br) {
					break
				}
			}
			if !isPhrasingContent(next) {
				break
			}
			sibling := next.NextSibling
			appendChild(p, next)
			next = sibling
		}
		for p.LastChild != nil && isWhitespace(p.LastChild) {
			p.RemoveChild(p.LastChild)
		}
		if isTag(p.Parent, atom.P) {
			setTag(p.Parent, "div")
		}
	}
}

// skipBlank returns n or the first following sibling that is an element or
// non-blank text.
func skipBlank(n *html.Node) *html.Node {
	for n != nil && !isElement(n) && strings.TrimSpace(n.Data) == "" {
		n = n.NextSibling
	}
	return n
}

// replacePresentational renames deprecated presentational elements to
// neutral containers, keeping their children.
func replacePresentational(doc *html.Node) {
	for _, n := range elementsByTag(doc) {
		if tag, ok := presentationalTags[n.Data]; ok {
			setTag(n, tag)
			removeAttr(n, "face")
			removeAttr(n, "size")
			removeAttr(n, "color")
		}
	}
}

// mergeTextNodes joins adjacent text siblings.
func mergeTextNodes(doc *html.Node) {
	for _, n := range append([]*html.Node{doc}, descendants(doc)...) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode {
				continue
			}
			for c.NextSibling != nil && c.NextSibling.Type == html.TextNode {
				next := c.NextSibling
				c.Data += next.Data
				n.RemoveChild(next)
			}
		}
	}
}
