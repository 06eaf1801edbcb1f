// Package parsererror defines the typed errors returned by the parsing engine.
package parsererror

import "fmt"

// ParseError represents a failure to parse a specific field or token window.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DataExtractionError represents a failure to extract required data from a
// document, even when the document itself is readable.
type DataExtractionError struct {
	FilePath  string
	FieldName string
	Reason    string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("data extraction failed in '%s' for field '%s': %s",
		e.FilePath, e.FieldName, e.Reason)
}

// InvalidFormatError represents input that does not conform to the format a
// parser expects.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// RegistryError represents a failure to load the pattern registry from disk.
type RegistryError struct {
	Path string
	Err  error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("pattern registry load failed for '%s': %v", e.Path, e.Err)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}
