package registry

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-parser/internal/logging"
)

const registryCSV = `BANK,DATE_PATTERN,PAID_IN,PAID_OUT
HSBC_Debit_card,"[3, ""2 Jan 06""]","['CR', 'PAYMENT']","['DD', 'VIS', 'ATM']"
AMEX_Credit_card,"[2, ""Jan 2""]","['CR']","['DR']"
`

func writeRegistryFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadParsesPatterns(t *testing.T) {
	dir := t.TempDir()
	writeRegistryFile(t, dir, "patterns.csv", registryCSV)

	r := New(dir, &logging.MockLogger{})

	pattern, ok := r.Get("HSBC_Debit_card")
	require.True(t, ok)
	assert.Equal(t, 3, pattern.DateComponents)
	assert.Equal(t, "2 Jan 06", pattern.DateLayout)
	assert.Equal(t, []string{"CR", "PAYMENT"}, pattern.PaidIn)
	assert.Equal(t, []string{"DD", "VIS", "ATM"}, pattern.PaidOut)

	pattern, ok = r.Get("AMEX_Credit_card")
	require.True(t, ok)
	assert.Equal(t, 2, pattern.DateComponents)
	assert.Equal(t, "Jan 2", pattern.DateLayout)
}

func TestGetMissReturnsFalse(t *testing.T) {
	r := New(t.TempDir(), &logging.MockLogger{})
	_, ok := r.Get("Unknown_Debit_card")
	assert.False(t, ok)
}

func TestMissingDirectoryYieldsEmptyRegistry(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "does-not-exist"), &logging.MockLogger{})
	assert.Empty(t, r.Keys())
}

func TestMalformedRowDoesNotAbortLoad(t *testing.T) {
	dir := t.TempDir()
	writeRegistryFile(t, dir, "patterns.csv", `BANK,DATE_PATTERN,PAID_IN,PAID_OUT
HSBC_Debit_card,"[3, ""2 Jan 06""]","['CR']","['DD']"
Broken_Bank,not-a-literal,also-broken,
Natwest_Debit_card,"[2, ""2 Jan""]","['CREDIT']","['DEBIT']"
`)

	r := New(dir, &logging.MockLogger{})

	_, ok := r.Get("HSBC_Debit_card")
	assert.True(t, ok)
	_, ok = r.Get("Natwest_Debit_card")
	assert.True(t, ok)

	// The malformed row still loads, with empty fields.
	pattern, ok := r.Get("Broken_Bank")
	require.True(t, ok)
	assert.False(t, pattern.HasDateLayout())
	assert.Empty(t, pattern.PaidIn)
	assert.Empty(t, pattern.PaidOut)
}

func TestLatestFileWins(t *testing.T) {
	dir := t.TempDir()
	old := writeRegistryFile(t, dir, "old.csv", `BANK,DATE_PATTERN,PAID_IN,PAID_OUT
Old_Bank,"[2, ""2 Jan""]","['CR']","['DD']"
`)
	newer := writeRegistryFile(t, dir, "new.csv", `BANK,DATE_PATTERN,PAID_IN,PAID_OUT
New_Bank,"[2, ""2 Jan""]","['CR']","['DD']"
`)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	now := time.Now()
	require.NoError(t, os.Chtimes(newer, now, now))

	r := New(dir, &logging.MockLogger{})

	_, ok := r.Get("New_Bank")
	assert.True(t, ok)
	_, ok = r.Get("Old_Bank")
	assert.False(t, ok)
}

func TestReloadSwapsAtomically(t *testing.T) {
	dir := t.TempDir()
	writeRegistryFile(t, dir, "patterns.csv", registryCSV)
	r := New(dir, &logging.MockLogger{})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			// Readers must always see a complete snapshot: either both rows
			// of the current file or both rows of its replacement.
			_, hsbc := r.Get("HSBC_Debit_card")
			_, amex := r.Get("AMEX_Credit_card")
			assert.Equal(t, hsbc, amex)
		}
	}()

	for i := 0; i < 50; i++ {
		require.NoError(t, r.Reload())
	}
	close(stop)
	wg.Wait()
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	r := New(t.TempDir(), &logging.MockLogger{})

	pattern, ok := r.Resolve("Barclays_Debit_card")
	require.True(t, ok)
	assert.Equal(t, 2, pattern.DateComponents)
	assert.Equal(t, "2 Jan", pattern.DateLayout)
	assert.Equal(t, []string{"CREDIT"}, pattern.PaidIn)
	assert.Equal(t, []string{"DEBIT"}, pattern.PaidOut)

	_, ok = r.Resolve("Unknown_Debit_card")
	assert.False(t, ok)
}

func TestResolveMergesMissingFields(t *testing.T) {
	dir := t.TempDir()
	// Registered row carries keywords but no date pattern.
	writeRegistryFile(t, dir, "patterns.csv", `BANK,DATE_PATTERN,PAID_IN,PAID_OUT
HSBC_Debit_card,,"['CR', 'OBP']","['DD']"
`)
	r := New(dir, &logging.MockLogger{})

	pattern, ok := r.Resolve("HSBC_Debit_card")
	require.True(t, ok)
	assert.Equal(t, "2 Jan", pattern.DateLayout)
	assert.Equal(t, []string{"CR", "OBP"}, pattern.PaidIn)
	assert.Equal(t, []string{"DD"}, pattern.PaidOut)
}

func TestDefaultPatternLookup(t *testing.T) {
	pattern, ok := DefaultPattern("HSBC", "credit_card")
	require.True(t, ok)
	assert.Equal(t, []string{"PAID", "IN"}, pattern.PaidIn)
	assert.Equal(t, []string{"PAID", "OUT"}, pattern.PaidOut)

	pattern, ok = DefaultPattern("natwest", "debit_card")
	require.True(t, ok)
	assert.Equal(t, []string{"CREDIT"}, pattern.PaidIn)

	_, ok = DefaultPattern("Monzo", "debit_card")
	assert.False(t, ok)
	_, ok = DefaultPattern("HSBC", "savings")
	assert.False(t, ok)
}
