package html

import "regexp"

// Pattern and tag tables shared by every parse. They are built once at
// package initialization and only read afterwards.

var (
	rxUnlikelyCandidates   = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)
	rxOkMaybeItsACandidate = regexp.MustCompile(`(?i)and|article|body|column|content|main|mathjax|shadow`)
	rxPositive             = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)
	rxNegative             = regexp.MustCompile(`(?i)-ad-|hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|footer|gdpr|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|widget`)
	rxByline               = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)
	rxShareElements        = regexp.MustCompile(`(?i)(\b|_)(share|sharedaddy|social)(\b|_)`)
	rxNavigationElements   = regexp.MustCompile(`(?i)(\b|_)(nav|navbar|menu|breadcrumbs)(\b|_)`)
	rxHasContent           = regexp.MustCompile(`\S$`)
	rxHashURL              = regexp.MustCompile(`^#.+`)
	rxSrcsetURL            = regexp.MustCompile(`(\S+)(\s+[\d.]+[xw])?(\s*(?:,|$))`)
	rxB64DataURL           = regexp.MustCompile(`(?i)^data:\s*([^\s;,]+)\s*;\s*base64\s*,`)
	rxBase64Marker         = regexp.MustCompile(`(?i)base64\s*`)
	rxCommas               = regexp.MustCompile(`[\x{002C}\x{060C}\x{FE50}\x{FE10}\x{FE11}\x{2E41}\x{2E34}\x{2E32}\x{FF0C}]`)
	rxAdWords              = regexp.MustCompile(`(?i)^(ad(vertising|vertisement)?|pub(licité)?|werb(ung)?|广告|Реклама|Anuncio)$`)
	rxLoadingWords         = regexp.MustCompile(`(?i)^((loading|正在加载|Загрузка|chargement|cargando)(…|\.\.\.)?)$`)
	rxImageExtension       = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)`)
	rxSrcsetCandidate      = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)\s+\d`)
	rxSrcCandidate         = regexp.MustCompile(`(?i)^\s*\S+\.(jpg|jpeg|png|webp)\S*\s*$`)
	rxSentenceEnd          = regexp.MustCompile(`\.( |$)`)

	rxDisplayNone      = regexp.MustCompile(`(?i)display\s*:\s*none`)
	rxVisibilityHidden = regexp.MustCompile(`(?i)visibility\s*:\s*hidden`)
)

var unlikelyRoles = set("menu", "menubar", "complementary", "navigation", "alert", "alertdialog", "dialog")

// divToPElems are block elements that keep a div from becoming a paragraph.
var divToPElems = set("blockquote", "dl", "div", "img", "ol", "p", "pre", "table", "ul")

// alterToDivExceptions are sibling tags merged into the article as-is.
var alterToDivExceptions = set("div", "article", "section", "p", "ol", "ul")

var phrasingElems = set(
	"abbr", "audio", "b", "bdo", "br", "button", "cite", "code", "data",
	"datalist", "dfn", "em", "embed", "i", "img", "input", "kbd", "label",
	"mark", "math", "meter", "noscript", "object", "output", "progress", "q",
	"ruby", "samp", "script", "select", "small", "span", "strong", "sub",
	"sup", "textarea", "time", "var", "wbr",
)

// tagsToScore are elements whose text is scored directly.
var tagsToScore = set("section", "h2", "h3", "h4", "h5", "h6", "p", "td", "pre")

// tagWeights is the initial score of a candidate by tag.
var tagWeights = map[string]float64{
	"div":        5,
	"pre":        3,
	"td":         3,
	"blockquote": 3,
	"address":    -3,
	"ol":         -3,
	"ul":         -3,
	"dl":         -3,
	"dd":         -3,
	"dt":         -3,
	"li":         -3,
	"form":       -3,
	"h1":         -5,
	"h2":         -5,
	"h3":         -5,
	"h4":         -5,
	"h5":         -5,
	"h6":         -5,
	"th":         -5,
}

// presentationalTags are deprecated elements rewritten to neutral containers.
var presentationalTags = map[string]string{
	"font":     "span",
	"basefont": "span",
	"big":      "span",
	"tt":       "span",
	"strike":   "span",
	"blink":    "span",
	"center":   "div",
}

// inertTags never carry article content.
var inertTags = set("script", "noscript", "style", "link", "template")

// safeAttributes survive the final attribute strip.
var safeAttributes = set(
	"href", "src", "srcset", "alt", "title", "id", "class", "colspan",
	"rowspan", "headers", "scope", "lang", "dir", "datetime", "cite",
	"width", "height", "poster", "controls", "type", "start", "reversed",
	"name", "sizes",
)

// Thresholds tuned against the Readability reference corpus.
const (
	minScoredTextLength    = 25
	maxScoredAncestors     = 5
	minimumTopCandidates   = 3
	alternativeScoreRatio  = 0.75
	siblingScoreRatio      = 0.2
	minSiblingScore        = 10
	hashLinkCoefficient    = 0.3
	singleParagraphDensity = 0.25
	classWeight            = 25
	minExcerptLength       = 25
)

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}
