package ocr

import "strings"

// Monthly dues receipts land well inside this range; anything outside is far
// more likely a phone number, RRN or transaction id fragment.
const (
	minPlausible = 1_000
	maxPlausible = 50_000_000
)

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isPlausibleAmount filters candidates before scoring. Currency hints or
// grouping separators relax the length rules; bare digit runs must look like
// money on their own.
func isPlausibleAmount(s string) bool {
	low := strings.ToLower(s)
	hasHint := strings.Contains(low, "rp") || strings.Contains(low, "idr") ||
		strings.Contains(s, ".") || strings.Contains(s, ",")
	digits := onlyDigits(s)
	if digits == "" {
		return false
	}
	if strings.HasPrefix(digits, "0") {
		return false
	}
	if len(digits) > 9 {
		return false // transaction ids and card numbers
	}
	if !hasHint && len(digits) < 5 {
		return false
	}
	n := int64(0)
	for _, r := range digits {
		n = n*10 + int64(r-'0')
	}
	return n >= minPlausible && n <= maxPlausible
}
