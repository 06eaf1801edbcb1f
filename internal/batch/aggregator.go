// Package batch provides aggregation of transactions parsed from multiple
// statement files into a single chronological list.
package batch

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// RangeOf returns the date range spanned by a set of transactions.
func RangeOf(transactions []models.Transaction) DateRange {
	var dr DateRange
	for _, tx := range transactions {
		if tx.Date.IsZero() {
			continue
		}
		dr = dr.Merge(DateRange{Start: tx.Date, End: tx.Date})
	}
	return dr
}

// Aggregator merges the transactions of several statement files belonging to
// the same account into one chronological list.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Aggregator{logger: logger}
}

// Aggregate parses every file with parseFunc and returns all transactions
// sorted chronologically. A file that fails to parse is logged and skipped,
// so one unreadable statement never loses the rest of the batch.
func (a *Aggregator) Aggregate(files []string, parseFunc func(string) ([]models.Transaction, error)) []models.Transaction {
	var all []models.Transaction

	for _, file := range files {
		transactions, err := parseFunc(file)
		if err != nil {
			a.logger.WithError(err).Error("Failed to parse statement, skipping",
				logging.Field{Key: logging.FieldFile, Value: file})
			continue
		}
		a.logger.Debug("Loaded transactions from statement",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)},
			logging.Field{Key: logging.FieldCount, Value: len(transactions)})
		all = append(all, transactions...)
	}

	sortChronologically(all)
	a.logDuplicates(all)

	a.logger.Info("Aggregated statement files",
		logging.Field{Key: "files", Value: len(files)},
		logging.Field{Key: logging.FieldCount, Value: len(all)})
	return all
}

// CombinedFileName builds the output name for an aggregated CSV, embedding
// the covered date range when one is known.
func CombinedFileName(transactions []models.Transaction) string {
	dr := RangeOf(transactions)
	if dr.String() == "" {
		return "combined.csv"
	}
	return fmt.Sprintf("combined_%s.csv", dr)
}

// sortChronologically orders transactions by date, then description, then
// amount, so repeated runs over the same statements produce identical CSVs.
func sortChronologically(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Date.Before(transactions[j].Date)
		}
		if transactions[i].Description != transactions[j].Description {
			return transactions[i].Description < transactions[j].Description
		}
		return transactions[i].Amount.LessThan(transactions[j].Amount)
	})
}

// logDuplicates flags same-day records with identical description and
// amount. Statements legitimately repeat transactions, so duplicates are
// kept and only reported.
func (a *Aggregator) logDuplicates(transactions []models.Transaction) {
	seen := make(map[string]int, len(transactions))
	for _, tx := range transactions {
		key := fmt.Sprintf("%s|%s|%s", tx.Date.Format("2006-01-02"), tx.Description, tx.Amount.StringFixed(2))
		seen[key]++
		if seen[key] == 2 {
			a.logger.Warn("Possible duplicate transaction across statements",
				logging.Field{Key: "date", Value: tx.Date.Format("2006-01-02")},
				logging.Field{Key: "description", Value: tx.Description})
		}
	}
}
