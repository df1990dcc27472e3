package reader

import (
	"fmt"
	"math"
	"os"
	"strings"

	"rsc.io/pdf"
)

// PDFReader extracts the text of every page, pages joined with newlines.
type PDFReader struct{}

// NewPDFReader creates a pdf reader.
func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// Read implements ports.DocumentReader.
func (r *PDFReader) Read(path string) (text string, err error) {
	// rsc.io/pdf panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	doc, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, doc.NumPage())
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, pageText(page.Content().Text))
	}
	return strings.Join(pages, "\n"), nil
}

// pageText stitches positioned glyph runs back into lines. A vertical jump starts a new line
// and a horizontal gap wider than a fifth of the font size becomes a space.
func pageText(runs []pdf.Text) string {
	var sb strings.Builder
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			switch {
			case math.Abs(t.Y-prev.Y) > prev.FontSize/2:
				sb.WriteByte('\n')
			case t.X > prev.X+prev.W+prev.FontSize/5:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
	return sb.String()
}
