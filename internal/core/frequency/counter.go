// Package frequency builds per-document word frequency maps.
//
// In the default substring mode each unique word is counted with an exact matcher against
// the entire normalized text, so a word embedded in a longer word ("at" in "cat") is counted
// as well. Token mode is an explicit opt-in that tallies whole tokens instead.
package frequency

import (
	"context"
	"fmt"
	"strings"

	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/core/matcher"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// Counter computes word frequencies with a fixed matcher and counting mode.
type Counter struct {
	matcher ports.PatternMatcher
	mode    domain.CountingMode
}

// NewCounter creates a substring counter backed by the matcher for algorithm.
func NewCounter(algorithm domain.Algorithm) (*Counter, error) {
	return NewCounterWithMode(algorithm, domain.SubstringCounting)
}

// NewCounterWithMode creates a counter with an explicit counting mode.
func NewCounterWithMode(algorithm domain.Algorithm, mode domain.CountingMode) (*Counter, error) {
	m, err := matcher.New(algorithm)
	if err != nil {
		return nil, err
	}
	return NewCounterWithMatcher(m, mode)
}

// NewCounterWithMatcher creates a counter around an existing matcher.
func NewCounterWithMatcher(m ports.PatternMatcher, mode domain.CountingMode) (*Counter, error) {
	if mode == "" {
		mode = domain.SubstringCounting
	}
	if mode != domain.SubstringCounting && mode != domain.TokenCounting {
		return nil, fmt.Errorf("unknown counting mode %q", string(mode))
	}
	return &Counter{matcher: m, mode: mode}, nil
}

// Algorithm reports the matcher in use.
func (c *Counter) Algorithm() domain.Algorithm {
	return c.matcher.Name()
}

// Mode reports the counting mode.
func (c *Counter) Mode() domain.CountingMode {
	return c.mode
}

// Count returns the frequency of every unique word of the normalized text.
func (c *Counter) Count(text string) (domain.FrequencyMap, error) {
	return c.CountContext(context.Background(), text)
}

// CountContext is Count with cancellation. In substring mode ctx is checked before each
// unique word is searched for.
func (c *Counter) CountContext(ctx context.Context, text string) (domain.FrequencyMap, error) {
	tokens := strings.Fields(text)
	freq := make(domain.FrequencyMap, len(tokens))

	if c.mode == domain.TokenCounting {
		for _, tok := range tokens {
			freq[tok]++
		}
		return freq, nil
	}

	for _, tok := range tokens {
		if _, seen := freq[tok]; seen {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("counting words: %w", err)
		}
		matches, err := c.matcher.Search(text, tok)
		if err != nil {
			return nil, fmt.Errorf("counting %q: %w", tok, err)
		}
		freq[tok] = len(matches)
	}
	return freq, nil
}

// WordFrequencies counts the words of a normalized text with substring semantics.
func WordFrequencies(text string, algorithm domain.Algorithm) (domain.FrequencyMap, error) {
	c, err := NewCounter(algorithm)
	if err != nil {
		return nil, err
	}
	return c.Count(text)
}
