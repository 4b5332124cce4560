package ocr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var centsRE = regexp.MustCompile(`[.,]\d{2}$`)

// ParseAmountFromMatch normalizes a matched substring into whole rupiah.
// A trailing two-digit decimal part is dropped (150.000,00 -> 150000).
func ParseAmountFromMatch(found string) (int64, error) {
	found = strings.TrimSpace(found)
	if found == "" {
		return 0, fmt.Errorf("empty match")
	}
	digitsPart := found
	if centsRE.MatchString(found) {
		lastDot := strings.LastIndex(found, ".")
		lastComma := strings.LastIndex(found, ",")
		cut := lastDot
		if lastComma > lastDot {
			cut = lastComma
		}
		digitsPart = found[:cut]
	}
	digits := onlyDigits(digitsPart)
	if digits == "" {
		return 0, fmt.Errorf("no digits in %q", found)
	}
	amt, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", digits, err)
	}
	if amt < 0 {
		amt = -amt
	}
	return amt, nil
}
