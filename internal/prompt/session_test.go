package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
)

type scriptedReader struct {
	lines   []string
	prompts []string
}

func (r *scriptedReader) SetPrompt(p string) { r.prompts = append(r.prompts, p) }

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func setupDocs(t *testing.T) string {
	t.Helper()
	color.NoColor = true
	dir := t.TempDir()
	files := map[string]string{
		"a.txt":  "The cat sat on the mat.",
		"b.txt":  "The cat sat on the hat.",
		"c.pdf":  "not read",
		"d.rtf":  "x",
		"e.rtf":  "y",
		"f.docx": "not a zip",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func run(t *testing.T, dir string, lines ...string) (string, *scriptedReader) {
	t.Helper()
	in := &scriptedReader{lines: lines}
	var out bytes.Buffer
	err := NewSession(in, &out, Options{DocumentsDir: dir}).Run(context.Background())
	require.NoError(t, err)
	return out.String(), in
}

func TestSessionSuccess(t *testing.T) {
	dir := setupDocs(t)
	out, in := run(t, dir, "a.txt", "b.txt", "kmp")

	assert.Equal(t, []string{FirstFilePrompt, SecondFilePrompt, AlgorithmPrompt}, in.prompts)
	assert.Contains(t, out, "Similarity: 71.43%")
	assert.Contains(t, out, "Execution time: ")
}

func TestSessionBoyerMooreSameScore(t *testing.T) {
	dir := setupDocs(t)
	out, _ := run(t, dir, "a.txt", "b.txt", "BM")
	assert.Contains(t, out, "Similarity: 71.43%")
}

func TestSessionDiagnostics(t *testing.T) {
	dir := setupDocs(t)
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"missing file", []string{"a.txt", "zzz.txt", "KMP"}, MsgMissingFile},
		{"mismatched formats", []string{"a.txt", "c.pdf", "KMP"}, MsgMismatchedFormats},
		{"unsupported format", []string{"d.rtf", "e.rtf", "KMP"}, MsgUnsupportedFormat},
		{"unsupported algorithm", []string{"a.txt", "b.txt", "RK"}, MsgUnsupportedAlgorithm},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, _ := run(t, dir, tc.lines...)
			assert.Contains(t, out, tc.want)
			assert.NotContains(t, out, "Similarity:")
		})
	}
}

func TestSessionUnreadableDocument(t *testing.T) {
	dir := setupDocs(t)
	out, _ := run(t, dir, "f.docx", "f.docx", "KMP")
	assert.Contains(t, out, "Error: ")
}

func TestSessionEndsOnEOF(t *testing.T) {
	dir := setupDocs(t)
	out, in := run(t, dir, "a.txt")
	assert.Empty(t, out)
	assert.Len(t, in.prompts, 2)
}

func TestSessionKGram(t *testing.T) {
	dir := setupDocs(t)
	in := &scriptedReader{lines: []string{"a.txt", "a.txt", "KMP"}}
	var out bytes.Buffer
	err := NewSession(in, &out, Options{DocumentsDir: dir, KGramSize: 5}).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Similarity: 100.00%")
	assert.Contains(t, out.String(), "K-gram similarity (k=5): 100.00%")
}

func TestDiagnostic(t *testing.T) {
	assert.Equal(t, MsgMissingFile, Diagnostic(domain.ErrFileNotFound))
	assert.Equal(t, "Error: boom", Diagnostic(errors.New("boom")))
}
