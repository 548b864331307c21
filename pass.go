package readerview

// Pass is a state of the extraction retry loop. Each pass enables a subset
// of the heuristics; when an attempt yields too little text the loop moves
// to the next pass. Transitions only go forward, so an extraction makes at
// most four attempts before reaching PassExhausted.
type Pass int

// Extraction passes in transition order.
const (
	// PassStrict enables every heuristic.
	PassStrict Pass = iota

	// PassKeepUnlikely stops removing unlikely candidates.
	PassKeepUnlikely

	// PassUnweighted also stops weighting class and id names.
	PassUnweighted

	// PassUnconditional also stops removing elements conditionally.
	PassUnconditional

	// PassExhausted means no further relaxation is possible.
	PassExhausted
)

// Next returns the following pass. PassExhausted is terminal.
func (p Pass) Next() Pass {
	if p >= PassExhausted {
		return PassExhausted
	}
	return p + 1
}

// Exhausted reports whether no attempt is left to run.
func (p Pass) Exhausted() bool {
	return p >= PassExhausted
}

// StripUnlikely reports whether unlikely candidates are removed.
func (p Pass) StripUnlikely() bool {
	return p < PassKeepUnlikely
}

// WeightClasses reports whether class and id names affect scores.
func (p Pass) WeightClasses() bool {
	return p < PassUnweighted
}

// CleanConditionally reports whether suspicious elements are removed
// from the selected content.
func (p Pass) CleanConditionally() bool {
	return p < PassUnconditional
}

// String returns the pass name used in diagnostics.
func (p Pass) String() string {
	switch p {
	case PassStrict:
		return "strict"
	case PassKeepUnlikely:
		return "keep-unlikely"
	case PassUnweighted:
		return "unweighted"
	case PassUnconditional:
		return "unconditional"
	default:
		return "exhausted"
	}
}
