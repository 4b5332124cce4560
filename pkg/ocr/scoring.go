package ocr

import "strings"

// BestAmountFromMatches picks the most amount-like candidate. Labelled totals
// beat bare currency markers, which beat grouped digits, which beat raw runs;
// ties break toward the larger amount, then the longer raw string.
func BestAmountFromMatches(matches []string) (int64, string, bool) {
	type cand struct {
		amt   int64
		raw   string
		score int
	}
	scoreFor := func(raw string) int {
		s := 0
		low := strings.ToLower(raw)
		if strings.Contains(low, "rp") || strings.Contains(low, "idr") {
			s += 10
		}
		for _, kw := range []string{"total", "jumlah", "transfer", "nominal"} {
			if strings.Contains(low, kw) {
				s += 8
				break
			}
		}
		if strings.Contains(raw, ".") || strings.Contains(raw, ",") {
			s += 5
		}
		if strings.HasSuffix(raw, ",00") || strings.HasSuffix(raw, ".00") {
			s += 3
		}
		if len(onlyDigits(raw)) >= 4 {
			s += 1
		}
		return s
	}
	var cands []cand
	for _, m := range matches {
		amt, err := ParseAmountFromMatch(m)
		if err != nil || amt <= 0 {
			continue
		}
		cands = append(cands, cand{amt: amt, raw: m, score: scoreFor(m)})
	}
	if len(cands) == 0 {
		return 0, "", false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		switch {
		case c.score > best.score:
			best = c
		case c.score == best.score && c.amt > best.amt:
			best = c
		case c.score == best.score && c.amt == best.amt && len(c.raw) > len(best.raw):
			best = c
		}
	}
	return best.amt, best.raw, true
}
