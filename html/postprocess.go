package html

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// postProcess finishes the article content: absolute URLs, flattened
// wrappers, the attribute allow-list and class stripping.
func (p *Parser) postProcess(content *html.Node, base *url.URL) {
	fixRelativeURIs(content, base, p.url)
	simplifyNestedElements(content)
	stripAttributes(content)
	if !p.opts.KeepClasses {
		cleanClasses(content, p.preserve)
	}
}

// uriResolver makes URIs absolute against base. A nil base leaves every
// URI untouched.
type uriResolver struct {
	base *url.URL
	doc  *url.URL
}

func (r uriResolver) resolve(uri string) string {
	if r.base == nil {
		return uri
	}
	// Fragment links stay local when the page has no distinct base.
	if r.doc != nil && r.base.String() == r.doc.String() && strings.HasPrefix(uri, "#") {
		return uri
	}
	u, err := r.base.Parse(strings.TrimSpace(uri))
	if err != nil {
		return uri
	}
	return u.String()
}

func (r uriResolver) resolveSrcset(srcset string) string {
	var b strings.Builder
	last := 0
	for _, m := range rxSrcsetURL.FindAllStringSubmatchIndex(srcset, -1) {
		b.WriteString(srcset[last:m[0]])
		b.WriteString(r.resolve(srcset[m[2]:m[3]]))
		if m[4] >= 0 {
			b.WriteString(srcset[m[4]:m[5]])
		}
		b.WriteString(srcset[m[6]:m[7]])
		last = m[1]
	}
	b.WriteString(srcset[last:])
	return b.String()
}

// fixRelativeURIs rewrites links and media sources below content to
// absolute URLs and unwraps javascript: links.
func fixRelativeURIs(content *html.Node, base, doc *url.URL) {
	if base == nil {
		return
	}
	r := uriResolver{base: base, doc: doc}

	for _, a := range elementsByTag(content, "a") {
		href := getAttr(a, "href")
		if href == "" {
			continue
		}
		if !strings.HasPrefix(href, "javascript:") {
			setAttr(a, "href", r.resolve(href))
			continue
		}
		if a.FirstChild != nil && a.FirstChild == a.LastChild && a.FirstChild.Type == html.TextNode {
			replaceNode(a, createText(textContent(a)))
			continue
		}
		span := createElement("span")
		moveChildren(span, a)
		replaceNode(a, span)
	}

	for _, media := range elementsByTag(content, "img", "picture", "figure", "video", "audio", "source") {
		if src := getAttr(media, "src"); src != "" {
			setAttr(media, "src", r.resolve(src))
		}
		if poster := getAttr(media, "poster"); poster != "" {
			setAttr(media, "poster", r.resolve(poster))
		}
		if srcset := getAttr(media, "srcset"); srcset != "" {
			setAttr(media, "srcset", r.resolveSrcset(srcset))
		}
	}
}

// simplifyNestedElements removes empty div and section wrappers and
// collapses wrappers around a single div or section, keeping the outer
// attributes on the inner element.
func simplifyNestedElements(content *html.Node) {
	n := content
	for n != nil {
		if n.Parent != nil && (n.DataAtom == atom.Div || n.DataAtom == atom.Section) &&
			!strings.HasPrefix(id(n), "readability") {
			if isElementWithoutContent(n) {
				n = removeAndGetNext(n)
				continue
			}
			if hasSingleTagInside(n, "div") || hasSingleTagInside(n, "section") {
				child := children(n)[0]
				for _, a := range n.Attr {
					setAttr(child, a.Key, a.Val)
				}
				replaceNode(n, child)
				n = child
				continue
			}
		}
		n = nextNode(n, false)
	}
}

// sizedTags lose width and height since the layout they describe is gone.
var sizedTags = set("table", "th", "td", "hr", "pre")

// stripAttributes keeps only allow-listed attributes on content and its
// descendants.
func stripAttributes(content *html.Node) {
	for _, n := range append([]*html.Node{content}, elementsByTag(content)...) {
		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			if a.Namespace != "" || !safeAttributes[a.Key] {
				continue
			}
			if (a.Key == "width" || a.Key == "height") && sizedTags[n.Data] {
				continue
			}
			attrs = append(attrs, a)
		}
		n.Attr = attrs
	}
}

// cleanClasses drops every class not in preserve, removing empty class
// attributes.
func cleanClasses(content *html.Node, preserve map[string]bool) {
	for _, n := range append([]*html.Node{content}, elementsByTag(content)...) {
		if !hasAttr(n, "class") {
			continue
		}
		var kept []string
		for _, c := range strings.Fields(className(n)) {
			if preserve[c] {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			removeAttr(n, "class")
			continue
		}
		setAttr(n, "class", strings.Join(kept, " "))
	}
}
