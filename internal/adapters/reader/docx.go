package reader

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	docxBody      = "word/document.xml"
	wordprocessML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// DocxReader extracts paragraph text from Office Open XML word documents.
// Paragraphs are joined with newlines; tabs and breaks inside a paragraph are kept.
type DocxReader struct{}

// NewDocxReader creates a docx reader.
func NewDocxReader() *DocxReader {
	return &DocxReader{}
}

// Read implements ports.DocumentReader.
func (r *DocxReader) Read(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return paragraphs(rc)
	}
	return "", fmt.Errorf("open docx: %s not found", docxBody)
}

// paragraphs collects the text of every w:p element. Paragraphs nested inside another one,
// such as text box content, are emitted as their own paragraph before the enclosing one.
func paragraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		paras  []string
		open   []*strings.Builder
		inText bool
	)
	current := func() *strings.Builder {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1]
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", docxBody, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordprocessML {
				continue
			}
			switch t.Name.Local {
			case "p":
				open = append(open, new(strings.Builder))
			case "t":
				inText = true
			case "tab":
				if cur := current(); cur != nil {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if cur := current(); cur != nil {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordprocessML {
				continue
			}
			switch t.Name.Local {
			case "p":
				if cur := current(); cur != nil {
					paras = append(paras, cur.String())
					open = open[:len(open)-1]
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if cur := current(); inText && cur != nil {
				cur.Write(t)
			}
		}
	}
	return strings.Join(paras, "\n"), nil
}
