// Package reader extracts plain text from txt, docx and pdf documents.
package reader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// Registry dispatches documents to a reader by file extension.
type Registry struct {
	readers map[string]ports.DocumentReader
}

// NewRegistry creates a registry with the txt, docx and pdf readers.
func NewRegistry() *Registry {
	return &Registry{
		readers: map[string]ports.DocumentReader{
			"txt":  NewTextReader(),
			"docx": NewDocxReader(),
			"pdf":  NewPDFReader(),
		},
	}
}

// Register adds or replaces the reader for an extension (without the dot).
func (r *Registry) Register(ext string, reader ports.DocumentReader) {
	r.readers[normalizeExt(ext)] = reader
}

// Supported reports whether ext has a reader.
func (r *Registry) Supported(ext string) bool {
	_, ok := r.readers[normalizeExt(ext)]
	return ok
}

// Extensions lists the supported extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.readers))
	for ext := range r.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Read returns the text of the document at path.
func (r *Registry) Read(path string) (string, error) {
	ext := Extension(path)
	reader, ok := r.readers[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, path)
	}
	if err := checkExists(path); err != nil {
		return "", err
	}
	text, err := reader.Read(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}

// ValidatePair checks that both paths exist, share an extension and that the extension is
// supported, in that order.
func (r *Registry) ValidatePair(path1, path2 string) error {
	for _, p := range []string{path1, path2} {
		if err := checkExists(p); err != nil {
			return err
		}
	}
	ext1, ext2 := Extension(path1), Extension(path2)
	if ext1 != ext2 {
		return fmt.Errorf("%w: %q and %q", domain.ErrMismatchedFormats, ext1, ext2)
	}
	if !r.Supported(ext1) {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext1)
	}
	return nil
}

var defaultRegistry = NewRegistry()

// ReadDocument reads path with the default registry.
func ReadDocument(path string) (string, error) {
	return defaultRegistry.Read(path)
}

// ValidatePair validates a pair of paths with the default registry.
func ValidatePair(path1, path2 string) error {
	return defaultRegistry.ValidatePair(path1, path2)
}

// Extension returns the lower-cased extension of path without the dot.
func Extension(path string) string {
	return normalizeExt(filepath.Ext(path))
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func checkExists(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrFileNotFound, path)
	}
	return nil
}
