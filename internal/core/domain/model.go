package domain

import (
	"fmt"
	"strings"
)

// Algorithm selects the exact-match engine used to count word occurrences.
type Algorithm string

const (
	// KMP is the Knuth-Morris-Pratt matcher.
	KMP Algorithm = "KMP"
	// BoyerMoore is the Boyer-Moore matcher using the bad-character rule.
	BoyerMoore Algorithm = "BM"
)

// ParseAlgorithm resolves a user supplied algorithm name, ignoring case and surrounding blanks.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "KMP", "KNUTH-MORRIS-PRATT":
		return KMP, nil
	case "BM", "BOYER-MOORE", "BOYERMOORE":
		return BoyerMoore, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// CountingMode controls how word occurrences are tallied.
type CountingMode string

const (
	// SubstringCounting counts every occurrence of a word inside the whole text,
	// including occurrences embedded in longer words.
	SubstringCounting CountingMode = "substring"
	// TokenCounting counts whole tokens only.
	TokenCounting CountingMode = "token"
)

// ParseCountingMode resolves a counting mode name. The empty string selects SubstringCounting.
func ParseCountingMode(name string) (CountingMode, error) {
	switch CountingMode(strings.ToLower(strings.TrimSpace(name))) {
	case "", SubstringCounting:
		return SubstringCounting, nil
	case TokenCounting:
		return TokenCounting, nil
	}
	return "", fmt.Errorf("unknown counting mode %q", name)
}

// MatchSet holds the ascending byte offsets at which a pattern occurs in a text.
type MatchSet []int

// FrequencyMap maps each unique word of a document to its occurrence count.
type FrequencyMap map[string]int

// Total returns the sum of all counts.
func (f FrequencyMap) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

// Result holds the outcome of a similarity computation.
type Result struct {
	Name           string
	Score          float64
	Passed         bool
	Threshold      float64
	Algorithm      Algorithm
	OriginalTerms  int
	AugmentedTerms int
	Details        map[string]interface{}
}
