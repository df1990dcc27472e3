package overlap

import "github.com/baditaflorin/go_document_similarity/internal/core/domain"

// Similarity returns the overlap percentage of two frequency maps: the sum of per-word minima
// divided by the sum of per-word maxima, over the union of words. Two maps with no counts at
// all score 100.
func Similarity(freq1, freq2 domain.FrequencyMap) float64 {
	matched, total := 0, 0
	for word, c1 := range freq1 {
		c2 := freq2[word]
		matched += min(c1, c2)
		total += max(c1, c2)
	}
	for word, c2 := range freq2 {
		if _, ok := freq1[word]; !ok {
			total += c2
		}
	}

	if total == 0 {
		return 100.0
	}
	return float64(matched) / float64(total) * 100
}
