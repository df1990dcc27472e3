package matcher

import "github.com/baditaflorin/go_document_similarity/internal/core/domain"

// KnuthMorrisPratt searches in O(n+m) time using a failure table built from the pattern.
type KnuthMorrisPratt struct{}

// NewKnuthMorrisPratt creates a KMP matcher.
func NewKnuthMorrisPratt() *KnuthMorrisPratt {
	return new(KnuthMorrisPratt)
}

// Name reports the algorithm.
func (kmp *KnuthMorrisPratt) Name() domain.Algorithm {
	return domain.KMP
}

// Search returns the offsets of all occurrences of pattern in text.
func (kmp *KnuthMorrisPratt) Search(text, pattern string) (domain.MatchSet, error) {
	m := len(pattern)
	if m == 0 {
		return nil, domain.ErrEmptyPattern
	}
	matches := domain.MatchSet{}
	if len(text) < m {
		return matches, nil
	}

	table := failureTable(pattern)
	j := 0
	for i := 0; i < len(text); i++ {
		for j > 0 && text[i] != pattern[j] {
			j = table[j-1]
		}
		if text[i] == pattern[j] {
			j++
		}
		if j == m {
			matches = append(matches, i-m+1)
			// fall back instead of resetting so overlapping matches are found
			j = table[j-1]
		}
	}
	return matches, nil
}

// failureTable holds, for every prefix of pattern, the length of its longest proper prefix
// that is also a suffix.
func failureTable(pattern string) []int {
	table := make([]int, len(pattern))
	for i, j := 1, 0; i < len(pattern); i++ {
		for j > 0 && pattern[i] != pattern[j] {
			j = table[j-1]
		}
		if pattern[i] == pattern[j] {
			j++
		}
		table[i] = j
	}
	return table
}
