package ocr

import "testing"

func TestPlausibilityRejectsPhoneNumbers(t *testing.T) {
	if isPlausibleAmount("081234567890") {
		t.Fatal("phone number accepted as amount")
	}
}

func TestPlausibilityAcceptsCurrencyMarked(t *testing.T) {
	if !isPlausibleAmount("Rp150.000") {
		t.Fatal("currency-marked amount rejected")
	}
}

func TestPlausibilityRejectsShortBareDigits(t *testing.T) {
	if isPlausibleAmount("1234") {
		t.Fatal("short bare digit run accepted")
	}
}

func TestCollectMatchesReattachesCurrencyMarker(t *testing.T) {
	matches := collectMatches("Jumlah Transfer: Rp 150.000 ref 9912345678901")
	found := false
	for _, m := range matches {
		if m == "Rp150.000" || m == "150.000" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected amount candidate, got %v", matches)
	}
}
