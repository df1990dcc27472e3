package overlap

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/warmup"
)

func quietLogger(t *testing.T) l.Logger {
	t.Helper()
	lg, err := l.NewStandardFactory().CreateLogger(l.Config{Output: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = lg.Close() })
	return lg
}

func TestComputeDefaults(t *testing.T) {
	ds, err := New(WithLogger(quietLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, domain.KMP, ds.Algorithm())

	res, err := ds.Compute(context.Background(), "The cat sat on the mat.", "The cat sat on the hat.")
	require.NoError(t, err)
	assert.InDelta(t, 500.0/7.0, res.Score, 1e-9)
	assert.True(t, res.Passed)
}

func TestAlgorithmsAgree(t *testing.T) {
	a := "It is a truth universally acknowledged, that a single man in possession of a good fortune"
	b := "a single man in want of a wife must be in possession of a good fortune"

	kmp, err := New(WithLogger(quietLogger(t)), WithAlgorithm(domain.KMP))
	require.NoError(t, err)
	bm, err := New(WithLogger(quietLogger(t)), WithAlgorithm(domain.BoyerMoore), WithASCIINormalizer())
	require.NoError(t, err)

	r1, err := kmp.Compute(context.Background(), a, b)
	require.NoError(t, err)
	r2, err := bm.Compute(context.Background(), a, b)
	require.NoError(t, err)
	assert.InDelta(t, r1.Score, r2.Score, 1e-9)
}

func TestInvalidOptions(t *testing.T) {
	_, err := New(WithLogger(quietLogger(t)), WithAlgorithm("RK"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)

	_, err = New(WithLogger(quietLogger(t)), WithThreshold(101))
	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
}

func TestTokenCounting(t *testing.T) {
	ds, err := New(WithLogger(quietLogger(t)), WithCountingMode(domain.TokenCounting))
	require.NoError(t, err)

	freq, err := ds.Frequencies("a cat and a banana")
	require.NoError(t, err)
	assert.Equal(t, 2, freq["a"])
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.txt")
	p2 := filepath.Join(dir, "two.txt")
	require.NoError(t, os.WriteFile(p1, []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(p2, []byte("Hello, world!"), 0o644))

	ds, err := New(WithLogger(quietLogger(t)))
	require.NoError(t, err)

	res, err := ds.CompareFiles(context.Background(), p1, p2)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Score)

	_, err = ds.CompareFiles(context.Background(), p1, filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestWarmUpRunsOnce(t *testing.T) {
	ds, err := New(WithLogger(quietLogger(t)))
	require.NoError(t, err)

	cfg := warmup.Config{Concurrency: 1, Iterations: 2, SampleTextSize: 64, Duration: time.Second}
	first := ds.WarmUp(context.Background(), cfg)
	assert.Positive(t, first.Runs)
	assert.Zero(t, first.Failures)

	second := ds.WarmUp(context.Background(), cfg)
	assert.Zero(t, second.Runs)
}

func TestWarmUpConcurrentCallsRunOnce(t *testing.T) {
	ds, err := New(WithLogger(quietLogger(t)))
	require.NoError(t, err)

	cfg := warmup.Config{Concurrency: 1, Iterations: 2, SampleTextSize: 64}
	var wg sync.WaitGroup
	var runs atomic.Int64
	var withWork atomic.Int64
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats := ds.WarmUp(context.Background(), cfg)
			runs.Add(stats.Runs)
			if stats.Runs > 0 {
				withWork.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), withWork.Load())
	assert.Positive(t, runs.Load())
}
