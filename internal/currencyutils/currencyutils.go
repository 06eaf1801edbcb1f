// Package currencyutils provides money token recognition and amount
// normalization shared by the dialect and generic parsers.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// moneyTokenPattern matches a currency-formatted number with optional
// thousands separators and exactly two decimal places at the start of a
// token, e.g. "6.00", "119.17", "2,449.09". Plain "1234.56" without a
// thousands separator deliberately does not match: statement layouts that
// produce such tokens go through the generic parser instead.
var moneyTokenPattern = regexp.MustCompile(`^\d{1,3}(?:,\d{3})*\.\d{2}\b`)

// lineAmountPattern matches any two-decimal amount inside a line of text.
var lineAmountPattern = regexp.MustCompile(`[\d,]+\.\d{2}`)

// IsMoneyToken reports whether word starts with a currency-formatted value.
func IsMoneyToken(word string) bool {
	return moneyTokenPattern.MatchString(word)
}

// FindLineAmounts returns every two-decimal amount found in a line, in order.
func FindLineAmounts(line string) []string {
	return lineAmountPattern.FindAllString(line, -1)
}

// ParseAmount normalizes a money string (commas and currency symbols
// removed) and parses it into a decimal value. The sign is preserved;
// callers that need a magnitude take Abs themselves.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount string %q", amountStr)
	}
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips currency symbols, whitespace and thousands
// separators so the result can be handed to decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	amountStr = strings.TrimSpace(amountStr)
	replacer := strings.NewReplacer("£", "", "$", "", "€", "", ",", "", " ", "", "'", "")
	return replacer.Replace(amountStr)
}
