// Package batch contains the command to convert a directory of statements
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/statement-parser/cmd/root"
	"fjacquet/statement-parser/internal/batch"
	"fjacquet/statement-parser/internal/common"
	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/extractor"
	"fjacquet/statement-parser/internal/fileutils"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/validation"
)

// combine aggregates every statement into a single chronological CSV instead
// of one CSV per input file.
var combine bool

// Cmd is the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every statement in a directory into CSV files.",
	Long: `Walks the input directory for PDF and text statements and writes one
CSV file per statement into the output directory. A statement that fails to
parse is logged and skipped, so one bad file never aborts the run. With
--combine the transactions of all statements are merged chronologically into
a single CSV named after the covered date range.`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().BoolVar(&combine, "combine", false, "Merge all statements into one chronological CSV")
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch parse command called")

	if err := validation.ValidateInputDirectory(root.SharedFlags.Input); err != nil {
		root.Log.Fatalf("Invalid input: %v", err)
	}
	if root.SharedFlags.Output == "" {
		root.Log.Fatal("Output directory is required")
	}

	processed, failed, err := Run(root.SharedFlags.Input, root.SharedFlags.Output,
		root.SharedFlags.Institution, root.SharedFlags.AccountType, root.SharedFlags.Patterns, combine)
	if err != nil {
		root.Log.Fatalf("Error processing directory: %v", err)
	}
	root.Log.WithFields(map[string]interface{}{
		"processed": processed,
		"failed":    failed,
	}).Info("Batch processing complete")
	if failed > 0 {
		os.Exit(1)
	}
}

// Run converts every parseable statement in inputDir. In per-file mode one
// CSV per statement lands in outputDir; in combine mode a single merged CSV
// does. It returns the processed and failed counts; the error return is
// reserved for setup failures such as an unreadable input directory.
func Run(inputDir, outputDir, institution, accountType, patternsDir string, combine bool) (processed, failed int, err error) {
	files, err := fileutils.ListFilesWithExtensions(inputDir, ".pdf", ".txt")
	if err != nil {
		return 0, 0, fmt.Errorf("reading input directory: %w", err)
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return 0, 0, fmt.Errorf("creating output directory: %w", err)
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		return 0, 0, fmt.Errorf("loading configuration: %w", err)
	}
	if patternsDir != "" {
		cfg.Registry.Directory = patternsDir
	}
	c, err := container.NewContainer(cfg)
	if err != nil {
		return 0, 0, err
	}
	logger := c.GetLogger()

	parseOne := func(inputFile string) ([]models.Transaction, error) {
		doc, err := extractor.ForFile(inputFile).Extract(inputFile)
		if err != nil {
			return nil, fmt.Errorf("extracting statement text: %w", err)
		}
		return c.GetStatementParser().Parse(doc, institution, accountType)
	}

	if combine {
		return runCombined(files, outputDir, parseOne, logger)
	}

	for _, inputFile := range files {
		outputFile := filepath.Join(outputDir, csvName(inputFile))

		transactions, err := parseOne(inputFile)
		if err == nil {
			err = common.WriteTransactionsToCSV(transactions, outputFile)
		}
		if err != nil {
			logger.WithError(err).Error("Failed to convert statement",
				logging.Field{Key: logging.FieldFile, Value: inputFile})
			failed++
			continue
		}
		logger.Info("Converted statement",
			logging.Field{Key: logging.FieldFile, Value: inputFile},
			logging.Field{Key: logging.FieldOutput, Value: outputFile})
		processed++
	}
	return processed, failed, nil
}

// runCombined merges every statement into one chronological CSV. Parse
// failures are counted but do not abort the aggregation.
func runCombined(files []string, outputDir string, parseOne func(string) ([]models.Transaction, error), logger logging.Logger) (processed, failed int, err error) {
	agg := batch.NewAggregator(logger)
	all := agg.Aggregate(files, func(inputFile string) ([]models.Transaction, error) {
		transactions, err := parseOne(inputFile)
		if err != nil {
			failed++
			return nil, err
		}
		processed++
		return transactions, nil
	})

	if len(all) == 0 {
		logger.Warn("No transactions parsed, skipping combined CSV")
		return processed, failed, nil
	}

	outputFile := filepath.Join(outputDir, batch.CombinedFileName(all))
	if err := common.WriteTransactionsToCSV(all, outputFile); err != nil {
		return processed, failed, fmt.Errorf("writing combined CSV: %w", err)
	}
	logger.Info("Wrote combined statement CSV",
		logging.Field{Key: logging.FieldOutput, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: len(all)})
	return processed, failed, nil
}

func csvName(inputFile string) string {
	name := filepath.Base(inputFile)
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".csv"
}
