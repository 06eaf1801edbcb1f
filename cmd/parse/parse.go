// Package parse contains the command to convert a single statement to CSV
package parse

import (
	"github.com/spf13/cobra"

	"fjacquet/statement-parser/cmd/root"
	"fjacquet/statement-parser/internal/validation"
	"fjacquet/statement-parser/pkg/statementparser"
)

// Cmd is the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a bank or credit-card statement into CSV.",
	Long: `Extracts transactions from a PDF or plain-text statement and writes
them to a CSV file. The institution is detected from the statement text
unless given with --institution.`,
	Run: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Statement parse command called")
	root.Log.WithFields(map[string]interface{}{
		"input":       root.SharedFlags.Input,
		"output":      root.SharedFlags.Output,
		"institution": root.SharedFlags.Institution,
		"accountType": root.SharedFlags.AccountType,
	}).Debug("Command flags")

	if err := validation.ValidateInputFile(root.SharedFlags.Input); err != nil {
		root.Log.Fatalf("Invalid input: %v", err)
	}
	if err := validation.ValidateOutputFile(root.SharedFlags.Output); err != nil {
		root.Log.Fatalf("Invalid output: %v", err)
	}

	if err := statementparser.ConvertToCSV(root.SharedFlags.Input, root.SharedFlags.Output,
		root.SharedFlags.Institution, root.SharedFlags.AccountType, root.SharedFlags.Patterns); err != nil {
		root.Log.Fatalf("Error parsing statement: %v", err)
	}
	root.Log.Info("Statement parsed successfully!")
}
