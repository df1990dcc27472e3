package warmup

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/baditaflorin/go_document_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_document_similarity/internal/core/matcher"
	"github.com/baditaflorin/go_document_similarity/internal/core/overlap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarmUpRunsEveryComponent(t *testing.T) {
	calc, err := overlap.NewCalculator(overlap.DefaultConfig(), logger.NewNop(), normalizer.NewDefaultNormalizer())
	require.NoError(t, err)

	m := NewManager(logger.NewNop(), Config{
		Concurrency:    2,
		Iterations:     5,
		SampleTextSize: 200,
	})
	m.RegisterNormalizer(normalizer.NewASCIINormalizer())
	m.RegisterMatcher(matcher.NewKnuthMorrisPratt())
	m.RegisterMatcher(matcher.NewBoyerMoore())
	m.RegisterCalculator(calc)

	stats := m.WarmUp(context.Background())
	// 2 goroutines * 5 iterations * 4 components
	assert.Equal(t, int64(40), stats.Runs)
	assert.Zero(t, stats.Failures)
}

func TestWarmUpStopsOnCancelledContext(t *testing.T) {
	m := NewManager(logger.NewNop(), Config{Concurrency: 1, Iterations: 1000, SampleTextSize: 100})
	m.RegisterNormalizer(normalizer.NewDefaultNormalizer())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := m.WarmUp(ctx)
	assert.Zero(t, stats.Runs)
}

func TestWarmUpHonoursDuration(t *testing.T) {
	m := NewManager(logger.NewNop(), Config{Concurrency: 1, Iterations: 1 << 30, SampleTextSize: 100, Duration: 20 * time.Millisecond})
	m.RegisterNormalizer(normalizer.NewDefaultNormalizer())

	stats := m.WarmUp(context.Background())
	assert.Less(t, stats.Duration, 5*time.Second)
}

func TestSampleText(t *testing.T) {
	text := sampleText(100)
	assert.GreaterOrEqual(t, len(text), 100)
	assert.Equal(t, text, sampleText(100))

	edited := editText(text, 0.5)
	assert.NotEqual(t, text, edited)
	assert.Equal(t, len(strings.Fields(text)), len(strings.Fields(edited)))
}
