// Package genericparser implements the fallback extraction strategies used
// when no dialect state machine matches a document. The table strategy reads
// extracted tables by resolving column indices from header keywords; the
// text strategy scans line by line for a date and a two-decimal amount.
package genericparser

import (
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/statement-parser/internal/currencyutils"
	"fjacquet/statement-parser/internal/dateutils"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

// Column keyword vocabularies. Header cells are matched by lowercase
// substring, so "Transaction Date" resolves the date column.
var (
	headerVocabulary = []string{"date", "description", "amount", "balance", "debit", "credit"}

	dateColumns    = []string{"date", "transaction date", "value date"}
	descColumns    = []string{"description", "details", "particulars", "narration", "transaction"}
	debitColumns   = []string{"debit", "withdrawal", "paid out"}
	creditColumns  = []string{"credit", "deposit", "paid in"}
	amountColumns  = []string{"amount"}
	balanceColumns = []string{"balance", "running balance"}

	// summaryVocabulary marks non-transaction lines in the text strategy.
	summaryVocabulary = []string{
		"total", "summary", "statement period", "credit limit", "balance brought forward",
	}

	// paidInVocabulary is the last-resort direction hint when no pattern
	// keyword matches the description.
	paidInVocabulary = []string{"PAYMENT", "REFUND", "CREDIT", "DEPOSIT", "RECEIVED"}
)

// minLineLength filters out page furniture before the text strategy even
// looks for a date.
const minLineLength = 10

// maxPlausibleAmount rejects false positives such as a year parsed as an
// amount ("2024.00").
var maxPlausibleAmount = decimal.NewFromInt(10000)

// Parser is the generic fallback. The pattern keyword sets are optional;
// when empty, direction falls back to a fixed paid-in vocabulary.
type Parser struct {
	pattern models.ParsingPattern
	year    int
	logger  logging.Logger
}

// New creates a generic parser bound to a statement year.
func New(pattern models.ParsingPattern, statementYear int, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{
		pattern: pattern,
		year:    statementYear,
		logger:  logger.WithField(logging.FieldParser, "generic"),
	}
}

// Parse tries the table strategy first and falls back to the text strategy
// only when tables yield nothing. An empty result is not an error.
func (p *Parser) Parse(doc models.Document) ([]models.Transaction, error) {
	if txs := p.ParseTables(doc.Tables); len(txs) > 0 {
		p.logger.Info("Generic table strategy produced transactions",
			logging.Field{Key: logging.FieldCount, Value: len(txs)})
		return txs, nil
	}
	txs := p.ParseText(doc.Text)
	p.logger.Info("Generic text strategy complete",
		logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return txs, nil
}

// ParseTables runs the table strategy over every extracted table.
func (p *Parser) ParseTables(tables []models.Table) []models.Transaction {
	var transactions []models.Transaction
	for _, table := range tables {
		transactions = append(transactions, p.parseTable(table)...)
	}
	return transactions
}

func (p *Parser) parseTable(table models.Table) []models.Transaction {
	headerIdx := findHeaderRow(table)
	if headerIdx < 0 {
		return nil
	}

	headers := make([]string, len(table[headerIdx]))
	for i, cell := range table[headerIdx] {
		headers[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	dateIdx := findColumn(headers, dateColumns)
	descIdx := findColumn(headers, descColumns)
	debitIdx := findColumn(headers, debitColumns)
	creditIdx := findColumn(headers, creditColumns)
	amountIdx := findColumn(headers, amountColumns)
	balanceIdx := findColumn(headers, balanceColumns)

	// With both a debit and a credit column, each populated cell yields its
	// own record; a lone debit or credit column doubles as the amount column.
	dual := debitIdx >= 0 && creditIdx >= 0
	if !dual {
		if debitIdx >= 0 {
			amountIdx = debitIdx
		} else if creditIdx >= 0 {
			amountIdx = creditIdx
		}
	}

	var transactions []models.Transaction
	for _, row := range table[headerIdx+1:] {
		if len(row) == 0 {
			continue
		}
		if dual {
			if cellPopulated(row, debitIdx) {
				if tx, ok := p.parseRow(row, dateIdx, descIdx, debitIdx, balanceIdx, models.PaidOut); ok {
					transactions = append(transactions, tx)
				}
			}
			if cellPopulated(row, creditIdx) {
				if tx, ok := p.parseRow(row, dateIdx, descIdx, creditIdx, balanceIdx, models.PaidIn); ok {
					transactions = append(transactions, tx)
				}
			}
			continue
		}
		if tx, ok := p.parseRow(row, dateIdx, descIdx, amountIdx, balanceIdx, ""); ok {
			transactions = append(transactions, tx)
		}
	}
	return transactions
}

// parseRow converts one data row. A row that fails date or amount parsing
// is skipped, never fatal. An empty direction means "resolve from the
// description".
func (p *Parser) parseRow(row models.Row, dateIdx, descIdx, amountIdx, balanceIdx int, direction models.Direction) (models.Transaction, bool) {
	if dateIdx < 0 || amountIdx < 0 {
		return models.Transaction{}, false
	}

	dateStr := cellAt(row, dateIdx)
	if dateStr == "" {
		return models.Transaction{}, false
	}
	date, err := dateutils.ParseLoose(dateStr, p.year)
	if err != nil {
		p.logger.WithError(err).Debug("Skipping row with unparseable date",
			logging.Field{Key: logging.FieldRow, Value: dateStr})
		return models.Transaction{}, false
	}

	amountStr := cellAt(row, amountIdx)
	if amountStr == "" {
		return models.Transaction{}, false
	}
	amount, err := currencyutils.ParseAmount(amountStr)
	if err != nil {
		p.logger.WithError(err).Debug("Skipping row with unparseable amount",
			logging.Field{Key: logging.FieldRow, Value: amountStr})
		return models.Transaction{}, false
	}

	description := cellAt(row, descIdx)
	if direction == "" {
		direction = p.direction(description, amount)
	}

	var balance decimal.NullDecimal
	if balanceIdx >= 0 {
		if balanceStr := cellAt(row, balanceIdx); balanceStr != "" {
			if value, err := currencyutils.ParseAmount(balanceStr); err == nil {
				balance = decimal.NullDecimal{Decimal: value, Valid: true}
			}
		}
	}

	return models.Transaction{
		Date:        date,
		Amount:      amount.Abs(),
		Description: description,
		Direction:   direction,
		Balance:     balance,
	}, true
}

// ParseText runs the line-by-line text strategy. Documents that belong to a
// dialect parser (AMEX prints its name on every page) are left alone so the
// dialect is not shadowed by a noisier generic result.
func (p *Parser) ParseText(text string) []models.Transaction {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "american express") || strings.Contains(lower, "amex") {
		p.logger.Debug("Text belongs to a dialect parser, skipping text strategy")
		return nil
	}

	var transactions []models.Transaction
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minLineLength || isSummaryLine(line) {
			continue
		}

		dateStr, dateEnd, ok := dateutils.FindDateInLine(line)
		if !ok {
			continue
		}
		amounts := currencyutils.FindLineAmounts(line)
		if len(amounts) == 0 {
			continue
		}

		date, err := dateutils.ParseLoose(dateStr, p.year)
		if err != nil {
			continue
		}

		// The rightmost amount is the transaction amount; anything bigger
		// than the sanity ceiling is a false positive such as a year.
		amountStr := amounts[len(amounts)-1]
		amount, err := currencyutils.ParseAmount(amountStr)
		if err != nil || amount.Abs().GreaterThan(maxPlausibleAmount) {
			continue
		}

		description := descriptionBetween(line, dateEnd, amountStr)
		if len(description) < 3 {
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Amount:      amount.Abs(),
			Description: description,
			Direction:   p.direction(description, amount),
		})
	}
	return transactions
}

// direction resolves transaction direction from the description: pattern
// paid-in keywords first, then paid-out, then a fixed paid-in vocabulary,
// defaulting to paid out.
func (p *Parser) direction(description string, amount decimal.Decimal) models.Direction {
	descUpper := strings.ToUpper(description)
	for _, kw := range p.pattern.PaidIn {
		if kw != "" && strings.Contains(descUpper, strings.ToUpper(kw)) {
			return models.PaidIn
		}
	}
	for _, kw := range p.pattern.PaidOut {
		if kw != "" && strings.Contains(descUpper, strings.ToUpper(kw)) {
			return models.PaidOut
		}
	}
	for _, kw := range paidInVocabulary {
		if strings.Contains(descUpper, kw) {
			return models.PaidIn
		}
	}
	return models.PaidOut
}

// findHeaderRow returns the index of the first row containing any header
// vocabulary word, or -1.
func findHeaderRow(table models.Table) int {
	for idx, row := range table {
		for _, cell := range row {
			cellLower := strings.ToLower(cell)
			for _, kw := range headerVocabulary {
				if strings.Contains(cellLower, kw) {
					return idx
				}
			}
		}
	}
	return -1
}

// findColumn returns the index of the first header cell containing any of
// the keywords, or -1.
func findColumn(headers []string, keywords []string) int {
	for idx, header := range headers {
		for _, kw := range keywords {
			if strings.Contains(header, kw) {
				return idx
			}
		}
	}
	return -1
}

func cellAt(row models.Row, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellPopulated(row models.Row, idx int) bool {
	return cellAt(row, idx) != ""
}

func isSummaryLine(line string) bool {
	lineLower := strings.ToLower(line)
	for _, kw := range summaryVocabulary {
		if strings.Contains(lineLower, kw) {
			return true
		}
	}
	return false
}

// descriptionBetween extracts the text between the end of the date match
// and the last occurrence of the amount string.
func descriptionBetween(line string, dateEnd int, amountStr string) string {
	descEnd := strings.LastIndex(line, amountStr)
	if descEnd > dateEnd {
		return strings.Join(strings.Fields(line[dateEnd:descEnd]), " ")
	}
	return strings.Join(strings.Fields(line[dateEnd:]), " ")
}
