package ports

import "github.com/baditaflorin/go_document_similarity/internal/core/domain"

// PatternMatcher finds every, possibly overlapping, occurrence of pattern in text.
type PatternMatcher interface {
	Search(text, pattern string) (domain.MatchSet, error)
	Name() domain.Algorithm
}
