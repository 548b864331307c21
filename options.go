package readerview

import "regexp"

// Default option values.
const (
	DefaultCharThreshold   = 500
	DefaultNbTopCandidates = 5
)

// DefaultAllowedVideoRegex matches embeds from common video platforms that
// survive cleaning.
const DefaultAllowedVideoRegex = `\/\/(www\.)?((dailymotion|youtube|youtube-nocookie|player\.vimeo|v\.qq|bilibili|live\.bilibili)\.com|(archive|upload\.wikimedia)\.org|player\.twitch\.tv)`

// DefaultClassesToPreserve lists classes kept on content even when classes
// are stripped. They are always preserved in addition to
// Options.ClassesToPreserve.
var DefaultClassesToPreserve = []string{"page"}

// Options configures a single extraction. A value is built once before
// parsing and is never modified by the extraction pipeline.
type Options struct {
	// Debug emits internal diagnostics through the configured logger.
	// It never changes the extracted output.
	Debug bool

	// MaxElemsToParse aborts extraction with ETOOLARGE when the document has
	// more elements. Zero means no limit.
	MaxElemsToParse int

	// NbTopCandidates is the number of top candidates considered when
	// looking for a better common ancestor.
	NbTopCandidates int

	// CharThreshold is the minimum article length before the extraction is
	// retried with relaxed heuristics.
	CharThreshold int

	// ClassesToPreserve are class names kept when KeepClasses is false.
	ClassesToPreserve []string

	// KeepClasses retains all class attributes verbatim.
	KeepClasses bool

	// DisableJSONLD skips JSON-LD structured data during metadata resolution.
	DisableJSONLD bool

	// AllowedVideoRegex matches embed URLs that must not be removed.
	// Empty means DefaultAllowedVideoRegex.
	AllowedVideoRegex string

	// LinkDensityModifier is added to the link density thresholds
	// used when removing link-heavy elements.
	LinkDensityModifier float64
}

// DefaultOptions returns the options used when the caller has no preference.
func DefaultOptions() Options {
	return Options{
		NbTopCandidates:   DefaultNbTopCandidates,
		CharThreshold:     DefaultCharThreshold,
		AllowedVideoRegex: DefaultAllowedVideoRegex,
	}
}

// Validate returns an error if the options contain invalid fields.
func (o Options) Validate() error {
	if o.NbTopCandidates < 1 {
		return Errorf(EINVALID, "top candidate count must be positive, got %d", o.NbTopCandidates)
	}
	if o.CharThreshold < 0 {
		return Errorf(EINVALID, "character threshold must not be negative, got %d", o.CharThreshold)
	}
	if o.MaxElemsToParse < 0 {
		return Errorf(EINVALID, "element limit must not be negative, got %d", o.MaxElemsToParse)
	}
	if _, err := o.VideoRegexp(); err != nil {
		return Errorf(EINVALID, "invalid allowed video regex: %v", err)
	}
	return nil
}

// VideoRegexp compiles AllowedVideoRegex, falling back to the default pattern.
func (o Options) VideoRegexp() (*regexp.Regexp, error) {
	pattern := o.AllowedVideoRegex
	if pattern == "" {
		pattern = DefaultAllowedVideoRegex
	}
	return regexp.Compile(pattern)
}

// PreservedClasses returns the default preserved classes followed by the
// caller's, without duplicates.
func (o Options) PreservedClasses() []string {
	seen := make(map[string]bool)
	classes := make([]string, 0, len(DefaultClassesToPreserve)+len(o.ClassesToPreserve))
	for _, list := range [][]string{DefaultClassesToPreserve, o.ClassesToPreserve} {
		for _, c := range list {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			classes = append(classes, c)
		}
	}
	return classes
}
