package readerview

import (
	"regexp"
	"strings"
)

var rxTokenize = regexp.MustCompile(`\W+`)

// TextSimilarity compares two strings by their lower-cased word tokens and
// returns a value in [0, 1]: the share of b's text made of tokens that also
// appear in a. Empty input yields 0.
func TextSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}
	inA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		inA[t] = true
	}
	var uniqB []string
	for _, t := range tokensB {
		if !inA[t] {
			uniqB = append(uniqB, t)
		}
	}
	distance := float64(len(strings.Join(uniqB, " "))) / float64(len(strings.Join(tokensB, " ")))
	return 1 - distance
}

func tokenize(s string) []string {
	var tokens []string
	for _, t := range rxTokenize.Split(strings.ToLower(s), -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
