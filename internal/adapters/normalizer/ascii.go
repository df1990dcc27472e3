package normalizer

import (
	"github.com/baditaflorin/go_document_similarity/internal/pool"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

const (
	keepByte byte = iota
	separatorByte
	lowerByte
)

// ASCIINormalizer produces the same output as DefaultNormalizer but classifies ASCII input
// with a precomputed table and pooled buffers. Input containing non-ASCII bytes is handed to
// the default implementation.
type ASCIINormalizer struct {
	table    [128]byte
	fallback ports.Normalizer
	bytePool *pool.BufferPool
}

// NewASCIINormalizer creates a table driven normalizer.
func NewASCIINormalizer() ports.Normalizer {
	n := &ASCIINormalizer{
		fallback: NewDefaultNormalizer(),
		bytePool: pool.NewBufferPool(8192),
	}
	for i := 0; i < len(n.table); i++ {
		b := byte(i)
		switch {
		case b >= 'A' && b <= 'Z':
			n.table[i] = lowerByte
		case IsWordRune(rune(b)):
			n.table[i] = keepByte
		default:
			n.table[i] = separatorByte
		}
	}
	return n
}

// Normalize implements ports.Normalizer.
func (n *ASCIINormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			return n.fallback.Normalize(text)
		}
	}

	buffer := n.bytePool.Get(len(text))
	defer n.bytePool.Put(buffer)

	inSeparator := false
	for i := 0; i < len(text); i++ {
		b := text[i]
		switch n.table[b] {
		case keepByte:
			*buffer = append(*buffer, b)
			inSeparator = false
		case lowerByte:
			*buffer = append(*buffer, b+('a'-'A'))
			inSeparator = false
		case separatorByte:
			if !inSeparator {
				*buffer = append(*buffer, ' ')
				inSeparator = true
			}
		}
	}
	return string(*buffer)
}
