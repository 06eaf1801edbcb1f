// Package dateutils provides the date recognition helpers shared by the
// statement parsers: month-abbreviation checks, layout-driven parsing with
// statement-year binding, and the loose date matching used by the generic
// text strategy.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Months holds the English three-letter month abbreviations in calendar order.
var Months = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// CommonLayouts is the ordered list of layouts the generic parser tries when
// no institution-specific date layout applies.
var CommonLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02/01/06",
	"02-01-06",
	"2 Jan 2006",
	"2 January 2006",
	"2006-01-02",
	"2 Jan 06",
	"2 Jan",
	"Jan 2",
}

var (
	slashedDatePattern = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	wordedDatePattern  = regexp.MustCompile(`\d{1,2}\s+[A-Za-z]{3}\s+\d{4}`)
	numericDateParts   = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
)

// IsMonth reports whether word is a month abbreviation, ignoring case.
func IsMonth(word string) bool {
	for _, m := range Months {
		if strings.EqualFold(m, word) {
			return true
		}
	}
	return false
}

// CapitalizeMonth normalizes a month abbreviation to its canonical casing
// ("NOV" -> "Nov"). Non-month words are returned unchanged.
func CapitalizeMonth(word string) string {
	for _, m := range Months {
		if strings.EqualFold(m, word) {
			return m
		}
	}
	return word
}

// IsInteger reports whether word parses as a base-10 integer.
func IsInteger(word string) bool {
	_, err := strconv.Atoi(word)
	return err == nil
}

// FindDateInLine locates the first date-like substring in a line
// (DD/MM/YYYY, DD-MM-YYYY or "DD Mon YYYY") and returns it with the index
// just past the match. ok is false when the line carries no date.
func FindDateInLine(line string) (match string, end int, ok bool) {
	if loc := slashedDatePattern.FindStringIndex(line); loc != nil {
		return line[loc[0]:loc[1]], loc[1], true
	}
	if loc := wordedDatePattern.FindStringIndex(line); loc != nil {
		return line[loc[0]:loc[1]], loc[1], true
	}
	return "", 0, false
}

// ParseWithLayout parses dateStr against a single institution layout. When
// the layout has no year component the result is bound to statementYear.
func ParseWithLayout(dateStr, layout string, components, statementYear int) (time.Time, error) {
	parsed, err := time.Parse(layout, dateStr)
	if err != nil {
		if components != 2 {
			return time.Time{}, err
		}
		// Retry with the statement year appended; some extractors emit a
		// stray year after a two-component date.
		parsed, err = time.Parse(layout+" 2006", fmt.Sprintf("%s %d", dateStr, statementYear))
		if err != nil {
			return time.Time{}, err
		}
	}
	if parsed.Year() == 0 {
		parsed = BindYear(parsed, statementYear)
	}
	return parsed, nil
}

// ParseLoose tries every common layout in order, binding yearless results to
// statementYear. It falls back to a numeric DD/MM/YY(YY) split before giving up.
func ParseLoose(dateStr string, statementYear int) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range CommonLayouts {
		parsed, err := time.Parse(layout, dateStr)
		if err != nil {
			continue
		}
		if parsed.Year() == 0 {
			parsed = BindYear(parsed, statementYear)
		}
		return parsed, nil
	}
	if m := numericDateParts.FindStringSubmatch(dateStr); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		if month >= 1 && month <= 12 {
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if d.Day() == day {
				return d, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// BindYear rebinds a date to the given year, moving Feb 29 to Feb 28 when the
// target year is not a leap year.
func BindYear(date time.Time, year int) time.Time {
	day := date.Day()
	if date.Month() == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, date.Month(), day, 0, 0, 0, 0, date.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
