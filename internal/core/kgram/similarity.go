// Package kgram scores two texts by the Jaccard similarity of their character k-grams.
package kgram

import (
	"context"
	"fmt"

	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// DefaultSize is the default k-gram length.
const DefaultSize = 5

// Shingles returns the set of contiguous k-character windows of text. Texts shorter than k
// yield an empty set.
func Shingles(text string, k int) map[string]struct{} {
	runes := []rune(text)
	if k < 1 || len(runes) < k {
		return map[string]struct{}{}
	}
	set := make(map[string]struct{}, len(runes)-k+1)
	for i := 0; i+k <= len(runes); i++ {
		set[string(runes[i:i+k])] = struct{}{}
	}
	return set
}

// Jaccard returns |A ∩ B| / |A ∪ B| * 100 over the k-gram sets of both texts. When neither
// text produces a k-gram the result is 0.
func Jaccard(text1, text2 string, k int) float64 {
	return jaccard(Shingles(text1, k), Shingles(text2, k))
}

func jaccard(set1, set2 map[string]struct{}) float64 {
	intersection := 0
	for g := range set1 {
		if _, ok := set2[g]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union) * 100
}

// SimilarityConfig holds configuration for the k-gram calculator.
type SimilarityConfig struct {
	Size int
	// Normalize runs both texts through the normalizer before shingling.
	Normalize bool
	// Threshold is the minimum score, in percent, for a comparison to pass.
	Threshold float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() SimilarityConfig {
	return SimilarityConfig{
		Size:      DefaultSize,
		Threshold: 70,
	}
}

// Validate checks if the configuration is valid.
func (c SimilarityConfig) Validate() error {
	if c.Size < 1 {
		return domain.ErrInvalidKGramSize
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return domain.ErrInvalidThreshold
	}
	return nil
}

// Calculator implements the k-gram Jaccard similarity calculation.
type Calculator struct {
	config     SimilarityConfig
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewCalculator creates a new k-gram similarity calculator.
func NewCalculator(config SimilarityConfig, logger ports.Logger, normalizer ports.Normalizer) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Compute calculates the k-gram similarity between two texts.
func (c *Calculator) Compute(ctx context.Context, original, augmented string) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		c.logger.Error("Computation cancelled", "error", err)
		return domain.Result{}, fmt.Errorf("k-gram similarity: %w", err)
	}

	if c.config.Normalize {
		original = c.normalizer.Normalize(original)
		augmented = c.normalizer.Normalize(augmented)
	}

	origSet := Shingles(original, c.config.Size)
	augSet := Shingles(augmented, c.config.Size)
	score := jaccard(origSet, augSet)
	passed := score >= c.config.Threshold

	details := map[string]interface{}{
		"k":          c.config.Size,
		"normalized": c.config.Normalize,
	}

	c.logger.Debug("Computed k-gram similarity",
		"score", score,
		"passed", passed,
		"original_kgrams", len(origSet),
		"augmented_kgrams", len(augSet),
	)

	return domain.Result{
		Name:           "kgram_similarity",
		Score:          score,
		Passed:         passed,
		Threshold:      c.config.Threshold,
		OriginalTerms:  len(origSet),
		AugmentedTerms: len(augSet),
		Details:        details,
	}, nil
}
