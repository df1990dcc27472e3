package docsimilarity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "the cat sat ", Normalize("The  cat, sat!"))
	assert.Equal(t, "", Normalize(""))
}

func TestSearch(t *testing.T) {
	for _, alg := range []Algorithm{KMP, BoyerMoore} {
		got, err := Search("banana", "ana", alg)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, []int(got), alg)

		_, err = Search("banana", "", alg)
		assert.ErrorIs(t, err, ErrEmptyPattern)
	}

	_, err := Search("banana", "ana", "RK")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestCompareDocuments(t *testing.T) {
	tests := []struct {
		name  string
		text1 string
		text2 string
		want  float64
	}{
		// "mat" and "hat" each contribute a max of 1 and a min of 0: 5 / 7.
		{"one word changed", "The cat sat on the mat.", "The cat sat on the hat.", 500.0 / 7.0},
		{"identical", "Hello world", "hello, WORLD", 100},
		{"both empty", "", "", 100},
		{"one empty", "", "words", 0},
		{"disjoint", "cat", "dog", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, alg := range []Algorithm{KMP, BoyerMoore} {
				got, err := CompareDocuments(tc.text1, tc.text2, alg)
				require.NoError(t, err)
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestWordFrequenciesCountsSubstrings(t *testing.T) {
	freq, err := WordFrequencies("a cat and a banana", KMP)
	require.NoError(t, err)
	assert.Equal(t, 7, freq["a"])
	assert.Equal(t, 1, freq["and"])
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 100.0, Jaccard("hello world", "hello world", DefaultKGramSize))
	assert.Zero(t, Jaccard("", "", DefaultKGramSize))
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.TXT")
	c := filepath.Join(dir, "c.pdf")
	for _, p := range []string{a, b, c} {
		require.NoError(t, os.WriteFile(p, []byte("same words here"), 0o644))
	}

	got, err := CompareFiles(a, b, BoyerMoore)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)

	_, err = CompareFiles(a, c, KMP)
	assert.ErrorIs(t, err, ErrMismatchedFormats)

	_, err = CompareFiles(a, filepath.Join(dir, "nope.txt"), KMP)
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = CompareFiles(a, b, "RK")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}
