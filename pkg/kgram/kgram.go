// Package kgram exposes the k-gram Jaccard similarity metric.
package kgram

import (
	"context"

	"github.com/baditaflorin/go_document_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	core "github.com/baditaflorin/go_document_similarity/internal/core/kgram"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
	"github.com/baditaflorin/l"
)

// KGramSimilarity computes the Jaccard similarity of two texts' k-gram sets.
type KGramSimilarity struct {
	calculator *core.Calculator
}

// Option defines a functional option for configuring KGramSimilarity.
type Option func(*config)

type config struct {
	Size       int
	Normalize  bool
	Threshold  float64
	Logger     ports.Logger
	Normalizer ports.Normalizer
}

// WithSize sets k.
func WithSize(k int) Option {
	return func(cfg *config) {
		cfg.Size = k
	}
}

// WithNormalization normalizes both texts before shingling.
func WithNormalization(enable bool) Option {
	return func(cfg *config) {
		cfg.Normalize = enable
	}
}

// WithThreshold sets the pass threshold in percent.
func WithThreshold(th float64) Option {
	return func(cfg *config) {
		cfg.Threshold = th
	}
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithNormalizer sets a custom normalizer and enables normalization.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *config) {
		cfg.Normalizer = n
		cfg.Normalize = true
	}
}

// New creates a new KGramSimilarity instance.
func New(opts ...Option) (*KGramSimilarity, error) {
	defaults := core.DefaultConfig()
	cfg := &config{
		Size:      defaults.Size,
		Normalize: defaults.Normalize,
		Threshold: defaults.Threshold,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}

	calculator, err := core.NewCalculator(core.SimilarityConfig{
		Size:      cfg.Size,
		Normalize: cfg.Normalize,
		Threshold: cfg.Threshold,
	}, cfg.Logger, cfg.Normalizer)
	if err != nil {
		return nil, err
	}
	return &KGramSimilarity{calculator: calculator}, nil
}

// Compute scores two texts in percent.
func (ks *KGramSimilarity) Compute(ctx context.Context, original, augmented string) (domain.Result, error) {
	return ks.calculator.Compute(ctx, original, augmented)
}
