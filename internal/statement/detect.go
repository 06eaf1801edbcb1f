package statement

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Institution names the detector can resolve from statement text.
const (
	InstitutionHSBC     = "HSBC"
	InstitutionAMEX     = "AMEX"
	InstitutionNatWest  = "NatWest"
	InstitutionBarclays = "Barclays"
)

var (
	// statementPeriodPatterns match the period phrasing institutions print,
	// e.g. "Statement Period: 01 - 30 Nov 2024" or
	// "From: 01/11/2024 To: 30/11/2024".
	statementPeriodPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)statement\s+period[:\s]+(\d{1,2})[-\s]+(\d{1,2})\s+(\w{3})\s+(\d{4})`),
		regexp.MustCompile(`(?i)from[:\s]+(\d{1,2})[/-](\d{1,2})[/-](\d{4})[^\d]+to[:\s]+(\d{1,2})[/-](\d{1,2})[/-](\d{4})`),
		regexp.MustCompile(`(\d{1,2})\s+(\w{3})\s+(\d{4})[^\d]+(\d{1,2})\s+(\w{3})\s+(\d{4})`),
	}

	looseYearPattern    = regexp.MustCompile(`20\d{2}`)
	filenameYearPattern = regexp.MustCompile(`(?:^|[^\d])(20\d{2}|19\d{2})(?:[^\d]|$)`)
)

// headerLineLimit bounds the loose year search to the top of the document,
// where the statement header lives.
const headerLineLimit = 50

// DetectInstitution resolves the issuing institution by substring search
// over the statement text. Returns "" when no known institution matches.
func DetectInstitution(text string) string {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "HSBC"):
		return InstitutionHSBC
	case strings.Contains(upper, "AMERICAN EXPRESS"), strings.Contains(upper, "AMEX"):
		return InstitutionAMEX
	case strings.Contains(upper, "NATWEST"):
		return InstitutionNatWest
	case strings.Contains(upper, "BARCLAYS"):
		return InstitutionBarclays
	}
	return ""
}

// InferStatementYear resolves the reference year for dates printed without
// one. It tries the statement-period phrasing first, then any plausible
// year in the header lines, and finally falls back to the current year.
func InferStatementYear(text string) int {
	for _, pattern := range statementPeriodPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		for _, group := range match[1:] {
			if len(group) == 4 {
				if year, err := strconv.Atoi(group); err == nil {
					return year
				}
			}
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > headerLineLimit {
		lines = lines[:headerLineLimit]
	}
	for _, line := range lines {
		if match := looseYearPattern.FindString(line); match != "" {
			year, _ := strconv.Atoi(match)
			return year
		}
	}

	return time.Now().Year()
}

// YearFromFilename extracts a four-digit year from a file name, e.g.
// "statement_2023_november.pdf". ok is false when none is present.
func YearFromFilename(path string) (int, bool) {
	match := filenameYearPattern.FindStringSubmatch(filepath.Base(path))
	if match == nil {
		return 0, false
	}
	year, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return year, true
}
