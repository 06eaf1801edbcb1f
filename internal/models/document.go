package models

// Row is a single table row as delivered by the text extraction service.
// Cells may be empty strings when the extractor found nothing in a column.
type Row []string

// Table is a sequence of rows extracted from one table on a statement page.
type Table []Row

// Document is the input to the parsing engine: the plain text of a statement
// plus any tables the extraction service recovered from it. SourcePath is the
// original file location when known; the external parser strategy needs it,
// the built-in parsers do not.
type Document struct {
	Text       string
	Tables     []Table
	SourcePath string
}
