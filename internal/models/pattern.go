package models

import "strings"

// ParsingPattern is the per-institution parsing configuration looked up from
// the pattern registry. It is immutable; a parse invocation reads it once and
// never writes to it.
type ParsingPattern struct {
	// DateComponents is the number of whitespace-separated tokens that make
	// up a textual date: 2 when the statement omits the year, 3 otherwise.
	DateComponents int
	// DateLayout is a Go reference-time layout consumed with DateComponents
	// tokens, e.g. "2 Jan 06" or "2 Jan".
	DateLayout string
	// PaidIn and PaidOut are keyword sets that disambiguate transaction
	// direction. Matching is case-insensitive; paid-in is checked first.
	PaidIn  []string
	PaidOut []string
}

// HasDateLayout reports whether the pattern carries a usable date layout.
func (p ParsingPattern) HasDateLayout() bool {
	return p.DateComponents > 0 && p.DateLayout != ""
}

// HasYear reports whether the date layout resolves the year by itself.
func (p ParsingPattern) HasYear() bool {
	return p.DateComponents == 3
}

// MatchPaidIn reports whether word matches one of the paid-in keywords.
func (p ParsingPattern) MatchPaidIn(word string) bool {
	return matchKeyword(p.PaidIn, word)
}

// MatchPaidOut reports whether word matches one of the paid-out keywords.
func (p ParsingPattern) MatchPaidOut(word string) bool {
	return matchKeyword(p.PaidOut, word)
}

func matchKeyword(keywords []string, word string) bool {
	for _, kw := range keywords {
		if strings.EqualFold(kw, word) {
			return true
		}
	}
	return false
}

// AccountKey builds the registry key for an institution and account type,
// e.g. ("HSBC", "debit_card") -> "HSBC_Debit_card". The NatWest spelling is
// normalized to the form used by the registry files.
func AccountKey(institution, accountType string) string {
	if institution == "" || accountType == "" {
		return ""
	}
	if strings.EqualFold(institution, "natwest") {
		institution = "Natwest"
	}
	parts := strings.SplitN(accountType, "_", 2)
	if len(parts) == 2 && parts[0] != "" {
		accountType = strings.ToUpper(parts[0][:1]) + strings.ToLower(parts[0][1:]) + "_" + parts[1]
	}
	return institution + "_" + accountType
}

// SplitAccountKey is the inverse of AccountKey: "HSBC_Debit_card" ->
// ("HSBC", "debit_card"). The second value is empty when the key has no
// account type suffix.
func SplitAccountKey(key string) (institution, accountType string) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return key, ""
	}
	return parts[0], strings.ToLower(parts[1][:1]) + parts[1][1:]
}
