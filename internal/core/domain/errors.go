package domain

import "errors"

var (
	// ErrUnsupportedFormat is returned for document extensions other than txt, docx and pdf.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrMismatchedFormats is returned when two compared documents have different extensions.
	ErrMismatchedFormats = errors.New("both files must be of the same format")
	// ErrUnsupportedAlgorithm is returned for algorithm names other than KMP and BM.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm, choose 'KMP' or 'BM'")
	// ErrFileNotFound is returned when an input document does not exist.
	ErrFileNotFound = errors.New("file does not exist")
	// ErrEmptyPattern is returned when a matcher is asked to search for a zero-length pattern.
	ErrEmptyPattern = errors.New("pattern must not be empty")
	// ErrInvalidKGramSize is returned for k-gram sizes below one.
	ErrInvalidKGramSize = errors.New("k-gram size must be at least 1")
	// ErrInvalidThreshold is returned for thresholds outside [0, 100].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")
)
