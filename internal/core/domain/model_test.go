package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"KMP", KMP},
		{" kmp\n", KMP},
		{"knuth-morris-pratt", KMP},
		{"BM", BoyerMoore},
		{"bm", BoyerMoore},
		{"Boyer-Moore", BoyerMoore},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseAlgorithm("rabin-karp")
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	_, err = ParseAlgorithm("")
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestParseCountingMode(t *testing.T) {
	mode, err := ParseCountingMode("")
	require.NoError(t, err)
	assert.Equal(t, SubstringCounting, mode)

	mode, err = ParseCountingMode("TOKEN")
	require.NoError(t, err)
	assert.Equal(t, TokenCounting, mode)

	_, err = ParseCountingMode("stemmed")
	require.Error(t, err)
}

func TestFrequencyMapTotal(t *testing.T) {
	assert.Equal(t, 0, FrequencyMap{}.Total())
	assert.Equal(t, 6, FrequencyMap{"the": 2, "cat": 1, "sat": 3}.Total())
}
