// Package ocr extracts the transfer amount from a payment receipt image.
// Residents photograph their bank transfer confirmation; the pipeline runs a
// couple of Tesseract passes over preprocessed variants, collects everything
// that looks like a rupiah amount and scores the candidates.
package ocr

import (
	"fmt"
	"log"
	"regexp"
	"strings"
)

var amountPatterns = []*regexp.Regexp{
	// labelled amounts win: "Jumlah Transfer: Rp150.000", "Total Bayar 150000"
	regexp.MustCompile(`(?i)(?:jumlah(?:\s+transfer)?|total(?:\s+(?:bayar|pembayaran))?|transfer|nominal)[:\s]*(?:Rp|IDR)?[\s]*([0-9\.,]+)`),
	regexp.MustCompile(`(?i)Rp[\s.]*([0-9][0-9\.,]*)`),
	regexp.MustCompile(`(?i)IDR[\s]*([0-9][0-9\.,]*)`),
	// grouped digits without a currency marker: 150.000 / 1,500,000
	regexp.MustCompile(`([0-9]{1,3}(?:[.,][0-9]{3})+)`),
	// plain digit runs long enough to be money
	regexp.MustCompile(`([0-9]{5,9})`),
}

// ExtractAmountFromImage OCRs a receipt and returns the extracted amount in
// whole rupiah, a rough confidence in [0,1] and the raw matched substring.
// Returns ErrNoAmount when nothing plausible is found.
func ExtractAmountFromImage(path string) (int64, float64, string, error) {
	texts, err := runOCRPasses(path)
	if err != nil {
		return 0, 0, "", fmt.Errorf("ocr passes: %w", err)
	}
	combined := strings.Join(texts, " ")
	matches := collectMatches(combined)
	if len(matches) == 0 {
		log.Printf("ocr: no amount candidates in %s, snippet=%q", path, snippet(combined, 140))
		return 0, 0, "", ErrNoAmount
	}
	amt, raw, ok := BestAmountFromMatches(matches)
	if !ok {
		return 0, 0, "", ErrNoAmount
	}
	conf := confidenceFor(raw, combined)
	log.Printf("ocr: %s candidates=%v chosen=%q amount=%d conf=%.2f", path, matches, raw, amt, conf)
	return amt, conf, raw, nil
}

// collectMatches runs every amount pattern over the text, re-attaching a
// currency marker the capture group stripped, and drops implausible hits
// (phone numbers, transaction ids).
func collectMatches(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, re := range amountPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 {
				continue
			}
			s := strings.TrimSpace(m[1])
			if s == "" {
				continue
			}
			full := strings.ToLower(m[0])
			low := strings.ToLower(s)
			if (strings.Contains(full, "rp") || strings.Contains(full, "idr")) &&
				!strings.Contains(low, "rp") && !strings.Contains(low, "idr") {
				s = "Rp" + s
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			if !isPlausibleAmount(s) {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}

// confidenceFor is a proxy, not a calibrated probability: currency markers
// and decimal tails raise it, a match lost in a wall of text lowers it.
func confidenceFor(raw, text string) float64 {
	conf := float64(len(raw)) / float64(len(text)+1)
	if conf > 1 {
		conf = 1
	}
	low := strings.ToLower(raw)
	if strings.Contains(low, "rp") || strings.Contains(low, "idr") ||
		strings.HasSuffix(low, ",00") || strings.HasSuffix(low, ".00") {
		if conf < 0.85 {
			conf = 0.85
		}
	}
	return conf
}
