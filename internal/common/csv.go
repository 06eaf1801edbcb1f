// Package common provides the CSV input/output shared by the CLI and batch
// code paths.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/statement-parser/internal/fileutils"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

// Delimiter is the global CSV output delimiter.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// dateLayout is the output date format.
const dateLayout = "2006-01-02"

// transactionRow is the CSV column mapping for an exported transaction.
type transactionRow struct {
	ID          string `csv:"ID"`
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Direction   string `csv:"Direction"`
	Amount      string `csv:"Amount"`
	Balance     string `csv:"Balance"`
	AccountKey  string `csv:"AccountKey"`
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv. TCSVRow
// is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log := logging.GetLogger()
	log.Info("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Info("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// WriteTransactionsToCSV writes transactions to a CSV file in the
// standardized export format. Amounts are fixed to two decimal places; an
// absent balance becomes an empty cell.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log := logging.GetLogger()
	log.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(csvFile)); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]transactionRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = transactionRow{
			ID:          tx.ID.String(),
			Date:        tx.Date.Format(dateLayout),
			Description: tx.Description,
			Direction:   string(tx.Direction),
			Amount:      tx.Amount.StringFixed(2),
			AccountKey:  tx.AccountKey,
		}
		if tx.Balance.Valid {
			rows[i].Balance = tx.Balance.Decimal.StringFixed(2)
		}
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Successfully wrote transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}

// GeneralizedConvertToCSV combines parsing and CSV writing for callers that
// work file to file.
func GeneralizedConvertToCSV(
	inputFile string,
	outputFile string,
	parseFunc func(string) ([]models.Transaction, error),
) error {
	log := logging.GetLogger()
	log.Info("Converting file to CSV",
		logging.Field{Key: "input", Value: inputFile},
		logging.Field{Key: "output", Value: outputFile})

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	transactions, err := parseFunc(inputFile)
	if err != nil {
		return fmt.Errorf("error parsing file: %w", err)
	}

	if err := WriteTransactionsToCSV(transactions, outputFile); err != nil {
		return fmt.Errorf("error writing transactions to CSV: %w", err)
	}

	log.Info("Successfully converted file to CSV",
		logging.Field{Key: "output", Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}
