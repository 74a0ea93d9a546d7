// Package fileparser extracts page-level text from uploaded files, grounded
// on the retrieval pack's ledongthuc/pdf-based PDF parser.
package fileparser

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PageText struct {
	Text     string
	Metadata map[string]any
}

// Parser returns a sequence of page-level text records for a file on disk.
// Unsupported extensions return an empty slice; the caller surfaces
// FILE_TYPE_NOT_SUPPORTED. I/O or parse errors are logged and also produce
// an empty slice, never a panic.
type Parser interface {
	Parse(path string) []PageText
}

// New dispatches on file extension: .txt -> TextParser, .pdf -> PDFParser.
func New(path string) Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDFParser{}
	case ".txt":
		return TextParser{}
	default:
		return UnsupportedParser{}
	}
}

type UnsupportedParser struct{}

func (UnsupportedParser) Parse(path string) []PageText { return nil }

type TextParser struct{}

func (TextParser) Parse(path string) []PageText {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("fileparser: failed to read text file %s: %v", path, err)
		return nil
	}
	return []PageText{{
		Text:     string(content),
		Metadata: map[string]any{"source": path},
	}}
}

type PDFParser struct{}

func (PDFParser) Parse(path string) []PageText {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("fileparser: failed to open pdf %s: %v", path, err)
		return nil
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		log.Printf("fileparser: failed to stat pdf %s: %v", path, err)
		return nil
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		log.Printf("fileparser: failed to open pdf reader for %s: %v", path, err)
		return nil
	}

	var pages []PageText
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("fileparser: failed to extract text from %s page %d: %v", path, i, err)
			continue
		}
		pages = append(pages, PageText{
			Text:     content,
			Metadata: map[string]any{"page": i, "source": path},
		})
	}
	return pages
}
