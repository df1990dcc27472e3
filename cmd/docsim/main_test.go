package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDocs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("The cat sat on the mat."), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("The cat sat on the hat."), 0o644))
	return a, b
}

func TestCompareText(t *testing.T) {
	a, b := writeDocs(t)
	out, err := execute(t, "compare", a, b, "--algorithm", "bm")
	require.NoError(t, err)
	assert.Contains(t, out, "Similarity: 71.43% (BM, pass)")
	assert.Contains(t, out, "Execution time: ")
}

func TestCompareJSON(t *testing.T) {
	a, b := writeDocs(t)
	out, err := execute(t, "compare", a, b, "--json", "--kgram", "--k", "3")
	require.NoError(t, err)

	var got compareOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "KMP", got.Algorithm)
	assert.InDelta(t, 500.0/7.0, got.Similarity, 1e-9)
	assert.Equal(t, 3, got.KGramSize)
	require.NotNil(t, got.KGramSimilarity)
	assert.Greater(t, *got.KGramSimilarity, 0.0)
}

func TestCompareErrors(t *testing.T) {
	a, _ := writeDocs(t)

	_, err := execute(t, "compare", a, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	_, err = execute(t, "compare", a, a, "--algorithm", "RK")
	assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)

	_, err = execute(t, "compare", a)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "docsim dev\n", out)
}
