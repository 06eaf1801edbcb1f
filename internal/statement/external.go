package statement

import (
	"strings"
	"time"

	"fjacquet/statement-parser/internal/currencyutils"
	"fjacquet/statement-parser/internal/dateutils"
	"fjacquet/statement-parser/internal/models"
)

// Strategy is the contract for an optional external parser integration.
// The orchestrator calls it before the built-in parsers when configured;
// its absence never affects the dialect and generic fallback chain.
type Strategy interface {
	Parse(path, institution, accountType, accountKey string) ([]models.Transaction, error)
}

// flatRecordSize is the stride of the flat list some external parsers
// return: date, direction, description, amount, repeated.
const flatRecordSize = 4

// ConvertFlatList converts a flat [date, direction, description, amount,
// ...] sequence into transactions. A group whose date does not parse is
// skipped one element at a time until the next plausible date, so one
// malformed record does not shift every following one.
func ConvertFlatList(items []string, statementYear int) []models.Transaction {
	var transactions []models.Transaction
	for i := 0; i+flatRecordSize <= len(items); {
		date, err := dateutils.ParseLoose(items[i], statementYear)
		if err != nil {
			i++
			continue
		}

		amount, err := currencyutils.ParseAmount(items[i+3])
		if err != nil {
			i++
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Amount:      amount.Abs(),
			Description: strings.TrimSpace(items[i+2]),
			Direction:   normalizeDirection(items[i+1]),
		})
		i += flatRecordSize
	}
	return transactions
}

func normalizeDirection(value string) models.Direction {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, string(models.PaidIn)) || strings.EqualFold(value, "PaidIn") {
		return models.PaidIn
	}
	return models.PaidOut
}

// ExternalParams is the parameter set handed to an external parser process:
// the account key, the statement year and the resolved parsing pattern.
type ExternalParams struct {
	AccountKey string
	Year       int
	Pattern    models.ParsingPattern
	File       string
	Folder     string
}

// ExternalParamsFor builds the parameter set for one invocation. The year
// comes from the file name when present, otherwise the current year; the
// pattern comes from the registry with seed defaults merged in. External
// integrations call this to translate engine configuration into whatever
// their tool expects.
func (p *Parser) ExternalParamsFor(path, accountKey string) ExternalParams {
	year, ok := YearFromFilename(path)
	if !ok {
		year = time.Now().Year()
	}
	pattern, _ := p.registry.Resolve(accountKey)

	folder := ""
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		folder = path[:idx]
	}
	return ExternalParams{
		AccountKey: accountKey,
		Year:       year,
		Pattern:    pattern,
		File:       path,
		Folder:     folder,
	}
}
