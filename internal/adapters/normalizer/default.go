package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// DefaultNormalizer collapses every run of non-word characters into one space and lowercases
// the result. Word characters are letters, numbers and the underscore.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize implements ports.Normalizer.
func (n *DefaultNormalizer) Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	inSeparator := false
	for _, r := range text {
		if IsWordRune(r) {
			sb.WriteRune(unicode.ToLower(r))
			inSeparator = false
			continue
		}
		if !inSeparator {
			sb.WriteByte(' ')
			inSeparator = true
		}
	}
	return sb.String()
}

// IsWordRune reports whether r is a letter, a number or an underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
