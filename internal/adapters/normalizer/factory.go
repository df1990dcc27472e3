package normalizer

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType handles any Unicode input rune by rune.
	DefaultNormalizerType NormalizerType = iota
	// ASCIINormalizerType uses a byte table for ASCII input.
	ASCIINormalizerType
)

// ParseNormalizerType resolves "default" or "ascii".
func ParseNormalizerType(name string) (NormalizerType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultNormalizerType, nil
	case "ascii", "fast":
		return ASCIINormalizerType, nil
	}
	return DefaultNormalizerType, fmt.Errorf("unknown normalizer %q", name)
}

// NormalizerFactory creates normalizers by type.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// CreateNormalizer creates a normalizer of the specified type.
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case ASCIINormalizerType:
		return NewASCIINormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
