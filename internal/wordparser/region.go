package wordparser

import (
	"regexp"
	"strings"

	"fjacquet/statement-parser/internal/dateutils"
)

// family selects the region-extraction and date-recognition behavior of a
// dialect.
type family int

const (
	// familyDateLed statements carry one date-led transaction table bounded
	// by start and end trigger phrases.
	familyDateLed family = iota
	// familyTwoDate statements repeat the date twice per transaction line
	// (transaction date and processed date).
	familyTwoDate
)

// Account keys with a dedicated dialect.
const (
	AccountHSBCDebit     = "HSBC_Debit_card"
	AccountBarclaysDebit = "Barclays_Debit_card"
	AccountNatwestDebit  = "Natwest_Debit_card"
	AccountHSBCCredit    = "HSBC_Credit_card"
	AccountAMEXCredit    = "AMEX_Credit_card"
)

var familyByAccount = map[string]family{
	AccountHSBCDebit:     familyDateLed,
	AccountBarclaysDebit: familyDateLed,
	AccountNatwestDebit:  familyDateLed,
	AccountHSBCCredit:    familyTwoDate,
	AccountAMEXCredit:    familyTwoDate,
}

// Supported reports whether a dialect state machine exists for the account key.
func Supported(accountKey string) bool {
	_, ok := familyByAccount[accountKey]
	return ok
}

// SupportedAccounts returns the account keys that have a dialect.
func SupportedAccounts() []string {
	return []string{
		AccountHSBCDebit,
		AccountBarclaysDebit,
		AccountNatwestDebit,
		AccountHSBCCredit,
		AccountAMEXCredit,
	}
}

var statementPeriodPattern = regexp.MustCompile(`(?i)Statement Period`)

// triggerWords returns the start and end trigger phrases that bound the
// transaction table of a date-led statement.
func triggerWords(accountKey string) (start, end []string) {
	switch accountKey {
	case AccountBarclaysDebit:
		for _, month := range dateutils.Months {
			start = append(start, month+" Start balance")
			end = append(end, month+" End balance")
		}
	case AccountHSBCDebit:
		start = []string{"BALANCEBROUGHTFORWARD"}
		end = []string{"BALANCECARRIEDFORWARD"}
	case AccountNatwestDebit:
		start = []string{"BROUGHT FORWARD"}
		end = []string{"Interest (variable)"}
	default:
		start = []string{"Start balance"}
		end = []string{"End Balance"}
	}
	return start, end
}

// extractRegion returns the lines of text that belong to the transaction
// table, along with the start trigger that opened the region (empty for
// two-date statements, which have no trigger).
func (p *Parser) extractRegion(text string) (trigger string, region []string) {
	lines := strings.Split(text, "\n")

	switch p.family {
	case familyDateLed:
		start, end := triggerWords(p.accountKey)
		extracting := false
		for _, line := range lines {
			lineUpper := strings.ToUpper(line)
			for _, e := range end {
				if strings.Contains(lineUpper, strings.ToUpper(e)) {
					extracting = false
					break
				}
			}
			matchedStart := false
			for _, s := range start {
				if strings.Contains(lineUpper, strings.ToUpper(s)) {
					matchedStart = true
					extracting = true
					trigger = s
					break
				}
			}
			stripped := strings.TrimSpace(line)
			if extracting && stripped != "" && !matchedStart {
				region = append(region, stripped)
			}
		}

	case familyTwoDate:
		for _, line := range lines {
			if !hasTwoMonthOccurrences(line) {
				continue
			}
			if p.accountKey == AccountAMEXCredit && statementPeriodPattern.MatchString(line) {
				continue
			}
			region = append(region, strings.TrimSpace(line))
		}
	}
	return trigger, region
}

// hasTwoMonthOccurrences reports whether a line contains at least two month
// abbreviations, ignoring case. Two-date statements repeat the month on
// every transaction line, which is what distinguishes table rows from
// headers and summaries.
func hasTwoMonthOccurrences(line string) bool {
	lineUpper := strings.ToUpper(line)
	count := 0
	for _, month := range dateutils.Months {
		count += strings.Count(lineUpper, strings.ToUpper(month))
		if count >= 2 {
			return true
		}
	}
	return false
}

// dropTriggerLines removes any region line that still contains the trigger
// phrase, so the trigger itself never appears in the token stream.
func dropTriggerLines(region []string, trigger string) []string {
	if trigger == "" {
		return region
	}
	triggerUpper := strings.ToUpper(trigger)
	kept := region[:0]
	for _, line := range region {
		if !strings.Contains(strings.ToUpper(line), triggerUpper) {
			kept = append(kept, line)
		}
	}
	return kept
}
