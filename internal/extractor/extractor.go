// Package extractor turns statement files into the plain-text documents the
// parsing engine consumes. The Extractor interface exists for dependency
// injection: production code uses the PDF or text implementation, tests use
// the mock.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/statement-parser/internal/models"
)

// Extractor extracts a parseable document from a statement file.
type Extractor interface {
	Extract(path string) (models.Document, error)
}

// ForFile returns the extractor matching the file extension. Anything that
// is not a PDF is treated as plain text.
func ForFile(path string) Extractor {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPDFExtractor()
	}
	return NewTextExtractor()
}

// MockExtractor returns predefined data instead of reading a file.
type MockExtractor struct {
	Doc models.Document
	Err error
}

// Extract returns the predefined document or error. The source path is
// filled in so orchestrator code behaves as it would in production.
func (m *MockExtractor) Extract(path string) (models.Document, error) {
	if m.Err != nil {
		return models.Document{}, m.Err
	}
	doc := m.Doc
	doc.SourcePath = path
	return doc, nil
}

func wrapExtractError(path string, err error) error {
	return fmt.Errorf("extracting %s: %w", path, err)
}
