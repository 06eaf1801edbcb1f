package statement

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/registry"
)

const hsbcStatementText = `HSBC Bank plc
Statement Period: 01 - 30 Nov 2023
BALANCEBROUGHTFORWARD 2,455.09
12 Nov 23 CR SHOP PURCHASE 6.00 2,449.09
17 Nov 23 CR NHS REFUND 119.17
BALANCECARRIEDFORWARD 2,568.26`

type stubStrategy struct {
	txs      []models.Transaction
	err      error
	panicMsg string
	calls    int
}

func (s *stubStrategy) Parse(path, institution, accountType, accountKey string) ([]models.Transaction, error) {
	s.calls++
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.txs, s.err
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	dir := t.TempDir()
	csv := `BANK,DATE_PATTERN,PAID_IN,PAID_OUT
HSBC_Debit_card,"[3, ""2 Jan 06""]","['CR', 'PAYMENT']","['DD', 'VIS']"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patterns.csv"), []byte(csv), 0o600))
	return registry.New(dir, &logging.MockLogger{})
}

func newTestParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()
	opts = append(opts, WithLogger(&logging.MockLogger{}))
	return New(newTestRegistry(t), opts...)
}

func TestParseDetectsInstitutionAndRunsDialect(t *testing.T) {
	p := newTestParser(t)

	txs, err := p.Parse(models.Document{Text: hsbcStatementText}, "", "debit_card")
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, time.Date(2023, time.November, 12, 0, 0, 0, 0, time.UTC), txs[0].Date)
	assert.Equal(t, models.PaidIn, txs[0].Direction)
	for _, tx := range txs {
		assert.Equal(t, "HSBC_Debit_card", tx.AccountKey)
		assert.NotEqual(t, uuid.Nil, tx.ID)
	}
}

func TestParseFallsBackToGenericWhenDialectFindsNothing(t *testing.T) {
	p := newTestParser(t)
	doc := models.Document{Text: "HSBC current account\n12/11/2023 COFFEE SHOP 4.50"}

	txs, err := p.Parse(doc, "HSBC", "debit_card")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "COFFEE SHOP", txs[0].Description)
	assert.Equal(t, "HSBC_Debit_card", txs[0].AccountKey)
}

func TestParseUnknownInstitutionUsesGeneric(t *testing.T) {
	p := newTestParser(t)
	doc := models.Document{
		Tables: []models.Table{{
			{"Date", "Description", "Amount"},
			{"12/11/2023", "SOMETHING", "9.99"},
		}},
	}

	txs, err := p.Parse(doc, "Monzo", "debit_card")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Monzo_Debit_card", txs[0].AccountKey)
}

func TestExternalStrategyWins(t *testing.T) {
	external := &stubStrategy{txs: []models.Transaction{{
		Date:        time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("42.00"),
		Description: "FROM EXTERNAL",
		Direction:   models.PaidOut,
	}}}
	p := newTestParser(t, WithExternal(external, true))

	doc := models.Document{Text: hsbcStatementText, SourcePath: "/tmp/statement_2023.pdf"}
	txs, err := p.Parse(doc, "", "debit_card")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "FROM EXTERNAL", txs[0].Description)
	assert.Equal(t, 1, external.calls)
}

func TestExternalFailureFallsBackWhenEnabled(t *testing.T) {
	external := &stubStrategy{err: errors.New("boom")}
	p := newTestParser(t, WithExternal(external, true))

	doc := models.Document{Text: hsbcStatementText, SourcePath: "/tmp/statement_2023.pdf"}
	txs, err := p.Parse(doc, "", "debit_card")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestExternalFailurePropagatesWhenFallbackDisabled(t *testing.T) {
	external := &stubStrategy{err: errors.New("boom")}
	p := newTestParser(t, WithExternal(external, false))

	doc := models.Document{Text: hsbcStatementText, SourcePath: "/tmp/statement_2023.pdf"}
	_, err := p.Parse(doc, "", "debit_card")
	assert.Error(t, err)
}

func TestExternalPanicIsRecovered(t *testing.T) {
	external := &stubStrategy{panicMsg: "integration exploded"}
	p := newTestParser(t, WithExternal(external, true))

	doc := models.Document{Text: hsbcStatementText, SourcePath: "/tmp/statement_2023.pdf"}
	txs, err := p.Parse(doc, "", "debit_card")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestParseIsIdempotent(t *testing.T) {
	p := newTestParser(t)
	doc := models.Document{Text: hsbcStatementText}

	first, err := p.Parse(doc, "", "debit_card")
	require.NoError(t, err)
	second, err := p.Parse(doc, "", "debit_card")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		// IDs are freshly assigned per parse; everything else must match.
		first[i].ID = uuid.Nil
		second[i].ID = uuid.Nil
		assert.Equal(t, first[i], second[i])
	}
}

func TestDetectInstitution(t *testing.T) {
	cases := map[string]string{
		"Welcome to HSBC Bank":        InstitutionHSBC,
		"american express statement":  InstitutionAMEX,
		"Your AMEX account":           InstitutionAMEX,
		"NatWest current account":     InstitutionNatWest,
		"BARCLAYS BANK UK PLC":        InstitutionBarclays,
		"Some credit union statement": "",
	}
	for text, want := range cases {
		assert.Equal(t, want, DetectInstitution(text), text)
	}
}

func TestInferStatementYear(t *testing.T) {
	assert.Equal(t, 2023, InferStatementYear("Statement Period: 01 - 30 Nov 2023"))
	assert.Equal(t, 2024, InferStatementYear("From: 01/11/2024 To: 30/11/2024"))
	assert.Equal(t, 2022, InferStatementYear("Issued 2022 by the bank"))
	assert.Equal(t, time.Now().Year(), InferStatementYear("no year anywhere"))
}

func TestYearFromFilename(t *testing.T) {
	year, ok := YearFromFilename("/statements/hsbc_2023_november.pdf")
	require.True(t, ok)
	assert.Equal(t, 2023, year)

	_, ok = YearFromFilename("/statements/hsbc_november.pdf")
	assert.False(t, ok)

	// Digits glued to the year do not count as a year.
	_, ok = YearFromFilename("account_120234.pdf")
	assert.False(t, ok)
}

func TestConvertFlatList(t *testing.T) {
	items := []string{
		"12/11/2023", "Paid In", "SALARY", "1,000.00",
		"garbage",
		"13/11/2023", "Paid Out", "COFFEE", "4.50",
	}
	txs := ConvertFlatList(items, 2023)
	require.Len(t, txs, 2)

	assert.Equal(t, "SALARY", txs[0].Description)
	assert.Equal(t, models.PaidIn, txs[0].Direction)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("1000.00")))

	assert.Equal(t, "COFFEE", txs[1].Description)
	assert.Equal(t, models.PaidOut, txs[1].Direction)
}

func TestExternalParamsFor(t *testing.T) {
	p := newTestParser(t)

	params := p.ExternalParamsFor("/statements/hsbc_2023_nov.pdf", "HSBC_Debit_card")
	assert.Equal(t, "HSBC_Debit_card", params.AccountKey)
	assert.Equal(t, 2023, params.Year)
	assert.Equal(t, "/statements", params.Folder)
	assert.Equal(t, "2 Jan 06", params.Pattern.DateLayout)
	assert.Equal(t, []string{"CR", "PAYMENT"}, params.Pattern.PaidIn)
}

func TestCanonicalize(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	txs := Canonicalize([]models.Transaction{{
		Date:        time.Date(2023, time.November, 12, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("-6.005"),
		Description: "  " + string(long),
		Direction:   "sideways",
	}}, "HSBC_Debit_card")

	require.Len(t, txs, 1)
	assert.Len(t, txs[0].Description, models.MaxDescriptionLength)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("6.01")))
	assert.Equal(t, models.PaidOut, txs[0].Direction)
	assert.Equal(t, "HSBC_Debit_card", txs[0].AccountKey)
	assert.NotEqual(t, uuid.Nil, txs[0].ID)
}
