package wordparser

import (
	"regexp"
	"strings"
)

var (
	// creditSuffixPattern matches money-like tokens carrying the trailing
	// credit indicator credit-card statements print, e.g. "860.34CR".
	creditSuffixPattern = regexp.MustCompile(`^\d+(?:,\d+)*(?:\.\d+)?CR`)
	// mergedDatePattern matches a month abbreviation fused to a day number,
	// e.g. "Nov29" or "Nov29Nov29".
	mergedDatePattern = regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)(\d+)`)
)

// arrangeDates rewrites a two-date token sequence so the main loop sees
// dates as separate tokens: the CR suffix is stripped from money values and
// every merged month+day token is split in two. "Nov29Nov29" becomes
// "Nov", "29", "Nov", "29".
func arrangeDates(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if creditSuffixPattern.MatchString(tok) {
			tok = strings.TrimSuffix(tok, "CR")
		}

		matches := mergedDatePattern.FindAllStringSubmatchIndex(tok, -1)
		if len(matches) == 0 {
			out = append(out, tok)
			continue
		}

		lastEnd := 0
		for _, m := range matches {
			if m[0] > lastEnd {
				out = append(out, tok[lastEnd:m[0]])
			}
			out = append(out, tok[m[2]:m[3]], tok[m[4]:m[5]])
			lastEnd = m[1]
		}
		if lastEnd < len(tok) {
			out = append(out, tok[lastEnd:])
		}
	}
	return out
}
