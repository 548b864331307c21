package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	rxTitleSeparator     = regexp.MustCompile(` [|\-–—\\/>»] `)
	rxHierarchySeparator = regexp.MustCompile(` [\\/>»] `)
	rxLeadingSegment     = regexp.MustCompile(`^[^|\-–—\\/>»]*[|\-–—\\/>»]`)
	rxSeparators         = regexp.MustCompile(`[|\-–—\\/>»]+`)
	rxWords              = regexp.MustCompile(`\s+`)
	rxSpaces             = regexp.MustCompile(`\s{2,}`)
)

// ArticleTitle returns the document <title> with site name decorations
// removed. A title made of separated segments loses its trailing segment,
// a colon-prefixed title keeps the part after the colon, and a title of
// implausible length is replaced by the page's only <h1>. Results of four
// words or fewer fall back to the original title.
func ArticleTitle(d *goquery.Document) string {
	orig := strings.TrimSpace(d.Find("title").First().Text())
	cur := orig
	hierarchical := false

	switch {
	case rxTitleSeparator.MatchString(cur):
		hierarchical = rxHierarchySeparator.MatchString(cur)
		seps := rxTitleSeparator.FindAllStringIndex(orig, -1)
		cur = orig[:seps[len(seps)-1][0]]
		if wordCount(cur) < 3 {
			cur = rxLeadingSegment.ReplaceAllString(orig, "")
		}
	case strings.Contains(cur, ": "):
		if !headingEquals(d, cur) {
			cur = orig[strings.LastIndex(orig, ":")+1:]
			if wordCount(cur) < 3 {
				cur = orig[strings.Index(orig, ":")+1:]
			} else if wordCount(orig[:strings.Index(orig, ":")]) > 5 {
				cur = orig
			}
		}
	case runeCount(cur) > 150 || runeCount(cur) < 15:
		if h1 := d.Find("h1"); h1.Length() == 1 {
			cur = h1.Text()
		}
	}

	cur = rxSpaces.ReplaceAllString(strings.TrimSpace(cur), " ")
	words := wordCount(cur)
	if words <= 4 && (!hierarchical || words != wordCount(rxSeparators.ReplaceAllString(orig, ""))-1) {
		cur = orig
	}
	return clean(cur)
}

// headingEquals reports whether an h1 or h2 has exactly the given text.
func headingEquals(d *goquery.Document, title string) bool {
	title = strings.TrimSpace(title)
	found := false
	d.Find("h1, h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = strings.TrimSpace(s.Text()) == title
		return !found
	})
	return found
}

func wordCount(s string) int {
	return len(rxWords.Split(s, -1))
}

func runeCount(s string) int {
	return len([]rune(s))
}
