// Package wordparser implements the institution-specific statement dialects.
// Each dialect isolates the lines that make up the transaction table,
// rearranges merged date tokens where the layout requires it, and then
// reconstructs transactions token by token from a single front-consumed
// stream. The loop is deliberately forgiving: unrecognized tokens are
// dropped and the parser resynchronizes on the next parseable date, and a
// date-format failure ends the parse with whatever was accumulated so far.
package wordparser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/statement-parser/internal/currencyutils"
	"fjacquet/statement-parser/internal/dateutils"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/parsererror"
	"fjacquet/statement-parser/internal/textutils"
	"fjacquet/statement-parser/internal/tokenstream"
)

// fallback layout used when the registry row carries no date pattern.
const (
	defaultDateComponents = 3
	defaultDateLayout     = "2 Jan 06"
)

// minTransactionTokens is the smallest stream that can still hold a
// transaction: a date, a direction or description token and an amount.
const minTransactionTokens = 4

// Parser is the dialect state machine for one account key. A Parser is
// cheap to construct and is used for exactly one document.
type Parser struct {
	accountKey string
	family     family
	pattern    models.ParsingPattern
	year       int
	logger     logging.Logger
}

// New creates the dialect parser for an account key. It fails when no
// dialect exists for the key; callers check Supported first or fall back to
// the generic parser.
func New(accountKey string, pattern models.ParsingPattern, statementYear int, logger logging.Logger) (*Parser, error) {
	fam, ok := familyByAccount[accountKey]
	if !ok {
		return nil, fmt.Errorf("no dialect for account %q", accountKey)
	}
	if !pattern.HasDateLayout() {
		pattern.DateComponents = defaultDateComponents
		pattern.DateLayout = defaultDateLayout
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{
		accountKey: accountKey,
		family:     fam,
		pattern:    pattern,
		year:       statementYear,
		logger: logger.WithFields(
			logging.Field{Key: logging.FieldParser, Value: "word"},
			logging.Field{Key: logging.FieldAccountKey, Value: accountKey},
		),
	}, nil
}

// Parse reconstructs transactions from the extracted statement text.
// An empty result is not an error; the orchestrator treats it as a signal
// to try the next strategy.
func (p *Parser) Parse(text string) ([]models.Transaction, error) {
	trigger, region := p.extractRegion(text)
	region = dropTriggerLines(region, trigger)
	if len(region) == 0 {
		p.logger.Debug("No transaction region found")
		return nil, nil
	}

	stream := tokenstream.FromLines(region)
	if p.family == familyTwoDate {
		stream.Replace(arrangeDates(stream.Tokens()))
	}

	transactions := p.reconstruct(stream)
	p.logger.Info("Word-based parse complete",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}

// reconstruct runs the main token loop. Every iteration consumes at least
// one token, so the loop terminates for any finite stream.
func (p *Parser) reconstruct(s *tokenstream.Stream) []models.Transaction {
	var transactions []models.Transaction
	var currentDate time.Time
	haveDate := false

	for s.Len() >= minTransactionTokens {
		first := s.Front()
		second, _ := s.Peek(1)

		switch {
		case p.headIsDate(first, second):
			p.dropSecondDate(s)
			date, err := p.parseHeadDate(s)
			if err != nil {
				p.logger.WithError(err).Warn("Unparseable date window, resynchronizing")
				if !p.resync(s) {
					return transactions
				}
				if date, err = p.parseHeadDate(s); err != nil {
					p.logger.WithError(err).Warn("Date parse failed, keeping partial result")
					return transactions
				}
			}
			currentDate, haveDate = date, true

		case p.isKeyword(first):
			// Direction keyword without a fresh date: the previous date is
			// still active, move straight to detail extraction.

		case p.isKeyword(second):
			// Stray token in front of a keyword (NatWest prints a column
			// marker here). Discard it and reuse the previous date.
			s.Drop(1)

		default:
			// Noise. Drop it and resynchronize on the next date window.
			s.Drop(1)
			if !p.resync(s) {
				return transactions
			}
			date, err := p.parseHeadDate(s)
			if err != nil {
				p.logger.WithError(err).Warn("Date parse failed after resync, keeping partial result")
				return transactions
			}
			currentDate, haveDate = date, true
		}

		// Consuming the date may have left too little for another
		// transaction.
		if s.Len() < minTransactionTokens {
			break
		}

		tx, ok := p.payment(s, currentDate, haveDate)
		if ok {
			transactions = append(transactions, tx)
		}
	}
	return transactions
}

// headIsDate reports whether the first two tokens open a date: day then
// month for date-led statements and HSBC credit cards, month then day for
// AMEX.
func (p *Parser) headIsDate(first, second string) bool {
	if p.accountKey == AccountAMEXCredit {
		return dateutils.IsMonth(first) && dateutils.IsInteger(second)
	}
	return dateutils.IsInteger(first) && dateutils.IsMonth(second)
}

func (p *Parser) isKeyword(word string) bool {
	return p.pattern.MatchPaidIn(word) || p.pattern.MatchPaidOut(word)
}

// dropSecondDate discards the redundant date occurrence two-date dialects
// print: HSBC credit statements lead with the processed date (three tokens),
// AMEX repeats the date at offsets two and three. Date-led dialects are
// unaffected.
func (p *Parser) dropSecondDate(s *tokenstream.Stream) {
	switch p.accountKey {
	case AccountHSBCCredit:
		s.Drop(3)
	case AccountAMEXCredit:
		s.RemoveAt(3)
		s.RemoveAt(2)
	}
}

// parseHeadDate consumes a date window from the front of the stream.
func (p *Parser) parseHeadDate(s *tokenstream.Stream) (time.Time, error) {
	if p.accountKey == AccountNatwestDebit {
		s.Transform(dateutils.CapitalizeMonth)
	}

	window := s.Window(p.pattern.DateComponents)
	if len(window) < p.pattern.DateComponents {
		return time.Time{}, fmt.Errorf("stream too short for %d date components", p.pattern.DateComponents)
	}
	dateStr := strings.Join(window, " ")

	date, err := dateutils.ParseWithLayout(dateStr, p.pattern.DateLayout, p.pattern.DateComponents, p.year)
	if err != nil {
		return time.Time{}, &parsererror.ParseError{
			Parser: p.accountKey,
			Field:  "date",
			Value:  dateStr,
			Err:    err,
		}
	}
	if p.rebindsYear() {
		date = dateutils.BindYear(date, p.year)
	}

	s.Drop(p.pattern.DateComponents)
	return date, nil
}

// rebindsYear reports whether the dialect overrides the parsed year with
// the statement year even when the layout carries one. Barclays, NatWest
// and AMEX statements print dates whose year column is unreliable.
func (p *Parser) rebindsYear() bool {
	switch p.accountKey {
	case AccountBarclaysDebit, AccountNatwestDebit, AccountAMEXCredit:
		return true
	}
	return false
}

// resync discards tokens until the head of the stream parses as a date.
// Every iteration shrinks the stream, bounding the loop by the remaining
// stream length. Returns false when the stream ran out first.
func (p *Parser) resync(s *tokenstream.Stream) bool {
	for !s.Empty() {
		// A month at offset three means the head is two stray tokens in
		// front of a date window; skip them both at once.
		if tok, ok := s.Peek(3); ok && dateutils.IsMonth(tok) {
			s.Drop(2)
		}
		window := s.Window(p.pattern.DateComponents)
		if len(window) == p.pattern.DateComponents {
			if _, err := time.Parse(p.pattern.DateLayout, strings.Join(window, " ")); err == nil {
				return true
			}
		}
		s.Drop(1)
	}
	return false
}

// payment extracts the direction, description, amount and optional running
// balance for one transaction. Tokens up to the first money value become the
// description; the money value itself is the amount, and a second money
// value directly behind it is the running balance.
func (p *Parser) payment(s *tokenstream.Stream, date time.Time, haveDate bool) (models.Transaction, bool) {
	var details []string
	amount := decimal.Zero
	amountFound := false

	for !s.Empty() {
		tok := s.Front()
		if currencyutils.IsMoneyToken(tok) {
			s.Drop(1)
			if value, err := currencyutils.ParseAmount(tok); err == nil {
				amount = value
			}
			amountFound = true
			break
		}
		details = append(details, tok)
		s.Drop(1)
	}

	var balance decimal.NullDecimal
	if amountFound {
		if next, ok := s.Peek(0); ok && currencyutils.IsMoneyToken(next) {
			if value, err := currencyutils.ParseAmount(next); err == nil {
				balance = decimal.NullDecimal{Decimal: value, Valid: true}
				s.Drop(1)
			}
		}
	}

	if !haveDate {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Date:        date,
		Amount:      amount.Abs(),
		Description: p.describe(details),
		Direction:   p.direction(details),
		Balance:     balance,
		AccountKey:  p.accountKey,
	}, true
}

// direction resolves the transaction direction from the first detail token:
// paid-in keywords are checked before paid-out, and anything else defaults
// to paid out.
func (p *Parser) direction(details []string) models.Direction {
	if len(details) == 0 {
		return models.PaidOut
	}
	if p.pattern.MatchPaidIn(details[0]) {
		return models.PaidIn
	}
	if p.pattern.MatchPaidOut(details[0]) {
		return models.PaidOut
	}
	return models.PaidOut
}

// describe joins the detail tokens into the transaction description.
// Date-led statements lead with the direction keyword, which is not part of
// the description; two-date statements keep every token but shed the
// artifact the extractor leaves behind on wrapped lines.
func (p *Parser) describe(details []string) string {
	var description string
	switch p.family {
	case familyDateLed:
		if len(details) > 1 {
			description = strings.Join(details[1:], " ")
		}
	default:
		description = textutils.StripContinuationMarkers(strings.Join(details, " "))
	}
	return strings.TrimSpace(description)
}
