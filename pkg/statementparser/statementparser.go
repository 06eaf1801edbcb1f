// Package statementparser is the public entry point for embedding the
// statement parsing engine in other programs. It wires configuration, the
// pattern registry and the orchestrator together so callers only deal with
// file paths and transactions.
package statementparser

import (
	"fmt"

	"fjacquet/statement-parser/internal/common"
	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/extractor"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/validation"
)

// ParseFile extracts and parses one statement file. The institution may be
// empty, in which case it is detected from the statement text. patternsDir
// overrides the configured registry directory when non-empty.
func ParseFile(inputFile, institution, accountType, patternsDir string) ([]models.Transaction, error) {
	if err := validation.ValidateInputFile(inputFile); err != nil {
		return nil, err
	}

	c, err := newContainer(patternsDir)
	if err != nil {
		return nil, err
	}

	doc, err := extractor.ForFile(inputFile).Extract(inputFile)
	if err != nil {
		return nil, fmt.Errorf("extracting statement text: %w", err)
	}
	return c.GetStatementParser().Parse(doc, institution, accountType)
}

// ConvertToCSV parses one statement file and writes the transactions to a
// CSV file.
func ConvertToCSV(inputFile, outputFile, institution, accountType, patternsDir string) error {
	if err := validation.ValidateOutputFile(outputFile); err != nil {
		return err
	}
	transactions, err := ParseFile(inputFile, institution, accountType, patternsDir)
	if err != nil {
		return err
	}
	return common.WriteTransactionsToCSV(transactions, outputFile)
}

func newContainer(patternsDir string) (*container.Container, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if patternsDir != "" {
		cfg.Registry.Directory = patternsDir
	}
	return container.NewContainer(cfg)
}
