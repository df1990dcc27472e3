// Package docsimilarity compares documents by the overlap of their word frequencies.
//
// Words are counted by searching the normalized text for every unique word with a
// pattern matcher (Knuth-Morris-Pratt or Boyer-Moore), so a word also counts where it
// occurs inside a longer word. Two frequency maps are scored as
//
//	sum(min(f1[w], f2[w])) / sum(max(f1[w], f2[w])) * 100
//
// over the union of their words. A second metric, the Jaccard similarity of the
// character k-gram sets, is available through Jaccard.
//
// For configurable calculators with logging and warm-up, see pkg/overlap and pkg/kgram.
package docsimilarity

import (
	"github.com/baditaflorin/go_document_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/reader"
	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/core/frequency"
	"github.com/baditaflorin/go_document_similarity/internal/core/kgram"
	"github.com/baditaflorin/go_document_similarity/internal/core/matcher"
	"github.com/baditaflorin/go_document_similarity/internal/core/overlap"
)

// Algorithm names a pattern-matching algorithm.
type Algorithm = domain.Algorithm

// FrequencyMap maps each word to its occurrence count.
type FrequencyMap = domain.FrequencyMap

// Supported algorithms.
const (
	KMP        = domain.KMP
	BoyerMoore = domain.BoyerMoore
)

// DefaultKGramSize is the k used when none is given.
const DefaultKGramSize = kgram.DefaultSize

// Errors returned by this package. Test with errors.Is.
var (
	ErrUnsupportedFormat    = domain.ErrUnsupportedFormat
	ErrMismatchedFormats    = domain.ErrMismatchedFormats
	ErrUnsupportedAlgorithm = domain.ErrUnsupportedAlgorithm
	ErrFileNotFound         = domain.ErrFileNotFound
	ErrEmptyPattern         = domain.ErrEmptyPattern
	ErrInvalidKGramSize     = domain.ErrInvalidKGramSize
)

var defaultNormalizer = normalizer.NewDefaultNormalizer()

// ParseAlgorithm resolves an algorithm name such as "kmp" or "BM".
func ParseAlgorithm(name string) (Algorithm, error) {
	return domain.ParseAlgorithm(name)
}

// Normalize lowercases text and replaces every run of non-word characters with one space.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Search returns the start offsets of every, possibly overlapping, occurrence of pattern in text.
func Search(text, pattern string, algorithm Algorithm) ([]int, error) {
	m, err := matcher.New(algorithm)
	if err != nil {
		return nil, err
	}
	return m.Search(text, pattern)
}

// WordFrequencies counts each unique word of an already normalized text by substring search.
func WordFrequencies(text string, algorithm Algorithm) (FrequencyMap, error) {
	return frequency.WordFrequencies(text, algorithm)
}

// Similarity scores two frequency maps in percent. Two empty maps score 100.
func Similarity(freq1, freq2 FrequencyMap) float64 {
	return overlap.Similarity(freq1, freq2)
}

// Jaccard scores the k-gram sets of two texts in percent. It returns 0 when neither text
// has k runes.
func Jaccard(text1, text2 string, k int) float64 {
	return kgram.Jaccard(text1, text2, k)
}

// CompareDocuments normalizes two texts, counts their words and scores them.
func CompareDocuments(text1, text2 string, algorithm Algorithm) (float64, error) {
	freq1, err := WordFrequencies(Normalize(text1), algorithm)
	if err != nil {
		return 0, err
	}
	freq2, err := WordFrequencies(Normalize(text2), algorithm)
	if err != nil {
		return 0, err
	}
	return Similarity(freq1, freq2), nil
}

// ReadDocument extracts the text of a .txt, .docx or .pdf file.
func ReadDocument(path string) (string, error) {
	return reader.ReadDocument(path)
}

// CompareFiles checks that both files exist and share a supported format, then compares
// their text.
func CompareFiles(path1, path2 string, algorithm Algorithm) (float64, error) {
	if err := reader.ValidatePair(path1, path2); err != nil {
		return 0, err
	}
	if _, err := ParseAlgorithm(string(algorithm)); err != nil {
		return 0, err
	}
	text1, err := ReadDocument(path1)
	if err != nil {
		return 0, err
	}
	text2, err := ReadDocument(path2)
	if err != nil {
		return 0, err
	}
	return CompareDocuments(text1, text2, algorithm)
}
