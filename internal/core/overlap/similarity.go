// Package overlap scores two documents by the overlap of their word frequency maps.
package overlap

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/core/frequency"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// SimilarityConfig holds configuration for the overlap similarity calculator.
type SimilarityConfig struct {
	Algorithm domain.Algorithm
	Mode      domain.CountingMode
	// Threshold is the minimum score, in percent, for a comparison to pass.
	Threshold float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() SimilarityConfig {
	return SimilarityConfig{
		Algorithm: domain.KMP,
		Mode:      domain.SubstringCounting,
		Threshold: 70,
	}
}

// Validate checks if the configuration is valid.
func (c SimilarityConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return domain.ErrInvalidThreshold
	}
	if _, err := domain.ParseAlgorithm(string(c.Algorithm)); err != nil {
		return err
	}
	if _, err := domain.ParseCountingMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}

// Calculator implements the word overlap similarity calculation.
type Calculator struct {
	config     SimilarityConfig
	counter    *frequency.Counter
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewCalculator creates a new overlap similarity calculator.
func NewCalculator(config SimilarityConfig, logger ports.Logger, normalizer ports.Normalizer) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	algorithm, _ := domain.ParseAlgorithm(string(config.Algorithm))
	mode, _ := domain.ParseCountingMode(string(config.Mode))
	config.Algorithm, config.Mode = algorithm, mode

	counter, err := frequency.NewCounterWithMode(algorithm, mode)
	if err != nil {
		return nil, err
	}

	return &Calculator{
		config:     config,
		counter:    counter,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Config returns the effective configuration.
func (c *Calculator) Config() SimilarityConfig {
	return c.config
}

// Frequencies normalizes text and returns its word frequency map.
func (c *Calculator) Frequencies(text string) (domain.FrequencyMap, error) {
	return c.FrequenciesContext(context.Background(), text)
}

// FrequenciesContext is Frequencies with cancellation.
func (c *Calculator) FrequenciesContext(ctx context.Context, text string) (domain.FrequencyMap, error) {
	return c.counter.CountContext(ctx, c.normalizer.Normalize(text))
}

// Compute calculates the overlap similarity between two texts. Both documents are counted
// concurrently; neither shares state with the other. Counting stops once ctx is done.
func (c *Calculator) Compute(ctx context.Context, original, augmented string) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		c.logger.Error("Computation cancelled", "error", err)
		return domain.Result{}, fmt.Errorf("overlap similarity: %w", err)
	}

	c.logger.Debug("Starting overlap similarity computation",
		"algorithm", c.config.Algorithm,
		"mode", c.config.Mode,
		"original_bytes", len(original),
		"augmented_bytes", len(augmented),
	)

	var origFreq, augFreq domain.FrequencyMap
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		origFreq, err = c.FrequenciesContext(gctx, original)
		return err
	})
	g.Go(func() error {
		var err error
		augFreq, err = c.FrequenciesContext(gctx, augmented)
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("Word counting failed", "error", err)
		return domain.Result{}, fmt.Errorf("overlap similarity: %w", err)
	}

	score := Similarity(origFreq, augFreq)
	passed := score >= c.config.Threshold

	details := map[string]interface{}{
		"original_unique_words":  len(origFreq),
		"augmented_unique_words": len(augFreq),
		"original_occurrences":   origFreq.Total(),
		"augmented_occurrences":  augFreq.Total(),
		"counting_mode":          string(c.config.Mode),
	}

	c.logger.Debug("Computed overlap similarity",
		"score", score,
		"passed", passed,
		"details", details,
	)

	return domain.Result{
		Name:           "overlap_similarity",
		Score:          score,
		Passed:         passed,
		Threshold:      c.config.Threshold,
		Algorithm:      c.config.Algorithm,
		OriginalTerms:  len(origFreq),
		AugmentedTerms: len(augFreq),
		Details:        details,
	}, nil
}
