// Package matcher implements the exact string matchers used to count word occurrences.
//
// Knuth-Morris-Pratt pre-analyzes the pattern into a failure table and never re-reads text it
// has already matched, which makes it linear in the size of the text. Boyer-Moore compares
// right-to-left and uses the last occurrence of the mismatching byte in the pattern to skip
// ahead, which is sub-linear on average but O(n*m) in the worst case.
//
// Both report every start offset, overlapping occurrences included.
package matcher

import (
	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// New returns the matcher implementing the given algorithm. Names are resolved with
// domain.ParseAlgorithm, so "kmp" and "Boyer-Moore" are accepted too.
func New(algorithm domain.Algorithm) (ports.PatternMatcher, error) {
	resolved, err := domain.ParseAlgorithm(string(algorithm))
	if err != nil {
		return nil, err
	}
	if resolved == domain.BoyerMoore {
		return NewBoyerMoore(), nil
	}
	return NewKnuthMorrisPratt(), nil
}
