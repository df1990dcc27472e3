package reader

import "os"

// TextReader reads plain-text files as-is.
type TextReader struct{}

// NewTextReader creates a plain-text reader.
func NewTextReader() *TextReader {
	return &TextReader{}
}

// Read implements ports.DocumentReader.
func (r *TextReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
