package ports

// DocumentReader extracts plain text from one document format.
type DocumentReader interface {
	Read(path string) (string, error)
}
