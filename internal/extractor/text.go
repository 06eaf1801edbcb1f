package extractor

import (
	"fjacquet/statement-parser/internal/fileutils"
	"fjacquet/statement-parser/internal/models"
)

// TextExtractor reads an already-extracted plain-text statement. Useful for
// pipelines where an upstream service has done the PDF conversion.
type TextExtractor struct{}

// NewTextExtractor creates a plain-text extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract reads the whole file as the document text.
func (e *TextExtractor) Extract(path string) (models.Document, error) {
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return models.Document{}, wrapExtractError(path, err)
	}
	return models.Document{Text: string(data), SourcePath: path}, nil
}
