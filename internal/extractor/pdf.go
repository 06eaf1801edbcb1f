package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/parsererror"
)

// PDFExtractor extracts text from PDF statements. Row-based extraction is
// tried first because it preserves the tabular layout the dialect parsers
// rely on; plain-text extraction is the fallback for documents whose
// content streams do not decode row by row.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract reads every page of the PDF and returns its text. The pdf library
// panics on some malformed documents; the panic is converted to an error.
func (e *PDFExtractor) Extract(path string) (doc models.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapExtractError(path, fmt.Errorf("pdf library panicked: %v", r))
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return models.Document{}, wrapExtractError(path, err)
	}
	defer f.Close()

	text := extractByRow(reader)
	if strings.TrimSpace(text) == "" {
		text, err = extractPlain(reader)
		if err != nil {
			return models.Document{}, wrapExtractError(path, err)
		}
	}
	if strings.TrimSpace(text) == "" {
		return models.Document{}, &parsererror.DataExtractionError{
			FilePath:  path,
			FieldName: "text",
			Reason:    "document contains no extractable text",
		}
	}

	return models.Document{Text: text, SourcePath: path}, nil
}

func extractByRow(reader *pdf.Reader) string {
	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(pages, "\n")
}

func extractPlain(reader *pdf.Reader) (string, error) {
	r, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
