package matcher

import "github.com/baditaflorin/go_document_similarity/internal/core/domain"

// ByteAlphabet is the size of the bad-character table for byte strings.
const ByteAlphabet = 256

// notPresent marks bytes that never occur in the pattern.
const notPresent = -1

// BoyerMoore searches right-to-left and skips ahead with the bad-character rule.
type BoyerMoore struct {
	alphabet int
}

// NewBoyerMoore creates a Boyer-Moore matcher whose table covers every byte value.
func NewBoyerMoore() *BoyerMoore {
	return &BoyerMoore{alphabet: ByteAlphabet}
}

// NewBoyerMooreWithAlphabet creates a Boyer-Moore matcher whose table only covers byte values
// below size. Text bytes outside that range are handled by shifting the window by one.
func NewBoyerMooreWithAlphabet(size int) *BoyerMoore {
	if size < 1 || size > ByteAlphabet {
		size = ByteAlphabet
	}
	return &BoyerMoore{alphabet: size}
}

// Name reports the algorithm.
func (bm *BoyerMoore) Name() domain.Algorithm {
	return domain.BoyerMoore
}

// Search returns the offsets of all occurrences of pattern in text.
func (bm *BoyerMoore) Search(text, pattern string) (domain.MatchSet, error) {
	m, n := len(pattern), len(text)
	if m == 0 {
		return nil, domain.ErrEmptyPattern
	}
	matches := domain.MatchSet{}
	last := bm.lastOccurrence(pattern)

	s := 0
	for s <= n-m {
		j := m - 1
		for j >= 0 && pattern[j] == text[s+j] {
			j--
		}

		if j < 0 {
			matches = append(matches, s)
			// align the byte after the window with its last occurrence in the pattern
			if s+m < n && int(text[s+m]) < len(last) {
				s += m - last[text[s+m]]
			} else {
				s++
			}
			continue
		}

		c := text[s+j]
		if int(c) >= len(last) {
			// out of the table's domain, the pattern may still contain it
			s++
			continue
		}
		s += max(1, j-last[c])
	}
	return matches, nil
}

// lastOccurrence maps every byte in the table's domain to its rightmost index in pattern.
func (bm *BoyerMoore) lastOccurrence(pattern string) []int {
	size := bm.alphabet
	if size == 0 {
		size = ByteAlphabet
	}
	last := make([]int, size)
	for i := range last {
		last[i] = notPresent
	}
	for i := 0; i < len(pattern); i++ {
		if int(pattern[i]) < size {
			last[pattern[i]] = i
		}
	}
	return last
}
