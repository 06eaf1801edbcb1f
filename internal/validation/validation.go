// Package validation checks CLI inputs before any parsing work starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/statement-parser/internal/parsererror"
)

// supportedInputExtensions lists the statement file types the extractors
// understand.
var supportedInputExtensions = []string{".pdf", ".txt"}

// ValidateInputFile checks that path names an existing, regular statement
// file with a supported extension.
func ValidateInputFile(path string) error {
	if path == "" {
		return fmt.Errorf("input file path is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path is a directory, expected a file: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range supportedInputExtensions {
		if ext == candidate {
			return nil
		}
	}
	return &parsererror.InvalidFormatError{
		FilePath:       path,
		ExpectedFormat: strings.Join(supportedInputExtensions, ", "),
		Msg:            "unsupported input format " + ext,
	}
}

// ValidateInputDirectory checks that path names an existing directory.
func ValidateInputDirectory(path string) error {
	if path == "" {
		return fmt.Errorf("input directory path is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path is a file, expected a directory: %s", path)
	}
	return nil
}

// ValidateOutputFile checks that path is usable as a CSV output target. The
// file itself need not exist yet; an existing directory at that path is
// rejected.
func ValidateOutputFile(path string) error {
	if path == "" {
		return fmt.Errorf("output file path is required")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory, expected a file: %s", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		return fmt.Errorf("output file must end in .csv, got: %s", path)
	}
	return nil
}
