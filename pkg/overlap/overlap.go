// Package overlap exposes the word-overlap document similarity metric.
package overlap

import (
	"context"
	"sync/atomic"

	"github.com/baditaflorin/go_document_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/reader"
	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/core/matcher"
	core "github.com/baditaflorin/go_document_similarity/internal/core/overlap"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
	"github.com/baditaflorin/go_document_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// DocumentSimilarity computes the overlap similarity of two documents.
type DocumentSimilarity struct {
	calculator *core.Calculator
	logger     ports.Logger
	normalizer ports.Normalizer
	registry   *reader.Registry
	warmed     atomic.Bool
}

// Option defines a functional option for configuring DocumentSimilarity.
type Option func(*config)

type config struct {
	Algorithm    domain.Algorithm
	Mode         domain.CountingMode
	Threshold    float64
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithAlgorithm selects the pattern matcher used to count words.
func WithAlgorithm(algorithm domain.Algorithm) Option {
	return func(cfg *config) {
		cfg.Algorithm = algorithm
	}
}

// WithCountingMode switches between substring and whole-token counting.
func WithCountingMode(mode domain.CountingMode) Option {
	return func(cfg *config) {
		cfg.Mode = mode
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

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *config) {
		cfg.Normalizer = n
	}
}

// WithASCIINormalizer uses the table-driven ASCII normalizer.
func WithASCIINormalizer() Option {
	return func(cfg *config) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.ASCIINormalizerType)
	}
}

// WithWarmUp enables warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration and enables warm-up.
func WithWarmUpConfig(wc warmup.Config) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// New creates a new DocumentSimilarity instance.
func New(opts ...Option) (*DocumentSimilarity, error) {
	defaults := core.DefaultConfig()
	cfg := &config{
		Algorithm:    defaults.Algorithm,
		Mode:         defaults.Mode,
		Threshold:    defaults.Threshold,
		WarmUpConfig: warmup.DefaultConfig(),
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
		Algorithm: cfg.Algorithm,
		Mode:      cfg.Mode,
		Threshold: cfg.Threshold,
	}, cfg.Logger, cfg.Normalizer)
	if err != nil {
		return nil, err
	}

	ds := &DocumentSimilarity{
		calculator: calculator,
		logger:     cfg.Logger,
		normalizer: cfg.Normalizer,
		registry:   reader.NewRegistry(),
	}
	if cfg.WarmUp {
		ds.WarmUp(context.Background(), cfg.WarmUpConfig)
	}
	return ds, nil
}

// Algorithm returns the configured matching algorithm.
func (ds *DocumentSimilarity) Algorithm() domain.Algorithm {
	return ds.calculator.Config().Algorithm
}

// Compute scores two texts in percent.
func (ds *DocumentSimilarity) Compute(ctx context.Context, original, augmented string) (domain.Result, error) {
	return ds.calculator.Compute(ctx, original, augmented)
}

// Frequencies returns the word frequency map of a text.
func (ds *DocumentSimilarity) Frequencies(text string) (domain.FrequencyMap, error) {
	return ds.calculator.Frequencies(text)
}

// CompareFiles reads two documents of the same supported format and scores them.
func (ds *DocumentSimilarity) CompareFiles(ctx context.Context, path1, path2 string) (domain.Result, error) {
	if err := ds.registry.ValidatePair(path1, path2); err != nil {
		return domain.Result{}, err
	}
	text1, err := ds.registry.Read(path1)
	if err != nil {
		return domain.Result{}, err
	}
	text2, err := ds.registry.Read(path2)
	if err != nil {
		return domain.Result{}, err
	}
	return ds.Compute(ctx, text1, text2)
}

// WarmUp exercises the normalizer, matcher and calculator once. Later and concurrent calls
// are no-ops.
func (ds *DocumentSimilarity) WarmUp(ctx context.Context, wc warmup.Config) warmup.Stats {
	if !ds.warmed.CompareAndSwap(false, true) {
		ds.logger.Debug("System already warmed up, skipping")
		return warmup.Stats{}
	}

	mgr := warmup.NewManager(ds.logger, wc)
	mgr.RegisterCalculator(ds.calculator)
	mgr.RegisterNormalizer(ds.normalizer)
	if m, err := matcher.New(ds.Algorithm()); err == nil {
		mgr.RegisterMatcher(m)
	}

	return mgr.WarmUp(ctx)
}
