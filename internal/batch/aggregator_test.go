package batch

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

func day(d int) time.Time {
	return time.Date(2023, time.November, d, 0, 0, 0, 0, time.UTC)
}

func tx(d int, description, amount string) models.Transaction {
	return models.Transaction{
		Date:        day(d),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Direction:   models.PaidOut,
	}
}

func TestDateRangeMerge(t *testing.T) {
	a := DateRange{Start: day(10), End: day(15)}
	b := DateRange{Start: day(5), End: day(12)}

	merged := a.Merge(b)
	assert.Equal(t, day(5), merged.Start)
	assert.Equal(t, day(15), merged.End)

	// Zero ranges take the other side wholesale.
	assert.Equal(t, a, DateRange{}.Merge(a))
	assert.Equal(t, "", DateRange{}.String())
	assert.Equal(t, "2023-11-05_2023-11-15", merged.String())
}

func TestRangeOf(t *testing.T) {
	dr := RangeOf([]models.Transaction{tx(17, "A", "1.00"), tx(12, "B", "2.00"), {}})
	assert.Equal(t, day(12), dr.Start)
	assert.Equal(t, day(17), dr.End)

	assert.Equal(t, DateRange{}, RangeOf(nil))
}

func TestAggregateSortsAndSkipsFailures(t *testing.T) {
	byFile := map[string][]models.Transaction{
		"nov.txt": {tx(17, "NHS REFUND", "119.17"), tx(12, "SHOP", "6.00")},
		"dec.txt": {tx(20, "COFFEE", "3.50")},
	}

	agg := NewAggregator(&logging.MockLogger{})
	all := agg.Aggregate([]string{"nov.txt", "bad.txt", "dec.txt"}, func(path string) ([]models.Transaction, error) {
		txs, ok := byFile[path]
		if !ok {
			return nil, errors.New("unreadable")
		}
		return txs, nil
	})

	require.Len(t, all, 3)
	assert.Equal(t, "SHOP", all[0].Description)
	assert.Equal(t, "NHS REFUND", all[1].Description)
	assert.Equal(t, "COFFEE", all[2].Description)
}

func TestAggregateKeepsDuplicates(t *testing.T) {
	agg := NewAggregator(&logging.MockLogger{})
	all := agg.Aggregate([]string{"a", "b"}, func(string) ([]models.Transaction, error) {
		return []models.Transaction{tx(12, "SHOP", "6.00")}, nil
	})
	assert.Len(t, all, 2)
}

func TestCombinedFileName(t *testing.T) {
	assert.Equal(t, "combined_2023-11-12_2023-11-17.csv",
		CombinedFileName([]models.Transaction{tx(12, "A", "1.00"), tx(17, "B", "2.00")}))
	assert.Equal(t, "combined.csv", CombinedFileName(nil))
}
