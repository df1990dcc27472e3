// Package warmup exercises matchers, normalizers and calculators before a server starts
// taking traffic, so the first requests do not pay for cold caches and lazy allocations.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// Config defines how much warm-up work is done.
type Config struct {
	// Concurrency is the number of goroutines per component kind.
	Concurrency int
	// Iterations per goroutine.
	Iterations int
	// SampleTextSize is the approximate sample document size in bytes.
	SampleTextSize int
	// Duration caps the whole warm-up; 0 means no limit.
	Duration time.Duration
	// ForceGC runs a collection afterwards.
	ForceGC bool
}

// DefaultConfig returns the default warm-up configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 2000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Stats summarizes a warm-up run.
type Stats struct {
	Runs     int64
	Failures int64
	Duration time.Duration
}

// Manager handles warm-up of registered components.
type Manager struct {
	logger      ports.Logger
	config      Config
	normalizers []ports.Normalizer
	matchers    []ports.PatternMatcher
	calculators []ports.SimilarityCalculator
}

// NewManager creates a new warm-up manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Manager{logger: logger, config: config}
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (m *Manager) RegisterNormalizer(n ports.Normalizer) {
	m.normalizers = append(m.normalizers, n)
}

// RegisterMatcher adds a pattern matcher to be warmed up.
func (m *Manager) RegisterMatcher(pm ports.PatternMatcher) {
	m.matchers = append(m.matchers, pm)
}

// RegisterCalculator adds a calculator to be warmed up.
func (m *Manager) RegisterCalculator(c ports.SimilarityCalculator) {
	m.calculators = append(m.calculators, c)
}

// WarmUp runs every registered component until the iterations are spent or the
// deadline passes.
func (m *Manager) WarmUp(ctx context.Context) Stats {
	start := time.Now()
	m.logger.Info("Starting warm-up",
		"normalizers", len(m.normalizers),
		"matchers", len(m.matchers),
		"calculators", len(m.calculators),
		"concurrency", m.config.Concurrency,
		"iterations", m.config.Iterations,
	)

	if m.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Duration)
		defer cancel()
	}

	original := sampleText(m.config.SampleTextSize)
	edited := editText(original, 0.2)
	words := strings.Fields(original)

	var runs, failures atomic.Int64
	m.run(ctx, func(i int) {
		for _, n := range m.normalizers {
			_ = n.Normalize(original)
			runs.Add(1)
		}
		for _, pm := range m.matchers {
			if len(words) == 0 {
				break
			}
			if _, err := pm.Search(original, words[i%len(words)]); err != nil {
				failures.Add(1)
			}
			runs.Add(1)
		}
		for _, c := range m.calculators {
			other := original
			if i%2 == 1 {
				other = edited
			}
			if _, err := c.Compute(ctx, original, other); err != nil {
				failures.Add(1)
			}
			runs.Add(1)
		}
	})

	if m.config.ForceGC {
		runtime.GC()
	}

	stats := Stats{Runs: runs.Load(), Failures: failures.Load(), Duration: time.Since(start)}
	m.logger.Info("Warm-up completed",
		"runs", stats.Runs,
		"failures", stats.Failures,
		"duration", stats.Duration,
	)
	return stats
}

func (m *Manager) run(ctx context.Context, step func(i int)) {
	var wg sync.WaitGroup
	for g := 0; g < m.config.Concurrency; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < m.config.Iterations; i++ {
				if ctx.Err() != nil {
					return
				}
				step(i)
			}
		}()
	}
	wg.Wait()
}

var sampleWords = []string{
	"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
	"document", "similarity", "pattern", "matching", "banana", "ana",
	"lorem", "ipsum", "dolor", "sit", "amet", "tempor", "magna", "aliqua",
}

// sampleText builds a deterministic text of roughly size bytes.
func sampleText(size int) string {
	var sb strings.Builder
	for i := 0; sb.Len() < size; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(sampleWords[i%len(sampleWords)])
	}
	return sb.String()
}

// editText replaces a share of the words so calculators see a non-identical pair.
func editText(text string, ratio float64) string {
	words := strings.Fields(text)
	step := 1
	if ratio > 0 {
		step = max(1, int(1/ratio))
	}
	for i := 0; i < len(words); i += step {
		words[i] = "edited"
	}
	return strings.Join(words, " ")
}
