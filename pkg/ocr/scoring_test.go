package ocr

import "testing"

func TestBestAmountLabelPriority(t *testing.T) {
	// Rp500.000 is larger, but the labelled transfer amount should win.
	matches := []string{"Rp500.000", "Jumlah Transfer Rp150.000"}
	amt, raw, ok := BestAmountFromMatches(matches)
	if !ok {
		t.Fatalf("no amount chosen")
	}
	if amt != 150000 {
		t.Fatalf("expected 150000 (labelled) got %d raw=%s", amt, raw)
	}
}

func TestBestAmountCurrencyBeatsBareDigits(t *testing.T) {
	amt, raw, ok := BestAmountFromMatches([]string{"2025010112", "Rp150.000"})
	if !ok || amt != 150000 {
		t.Fatalf("expected 150000 got %d ok=%v raw=%s", amt, ok, raw)
	}
}

func TestBestAmountNoCandidates(t *testing.T) {
	if _, _, ok := BestAmountFromMatches([]string{"abc", ""}); ok {
		t.Fatal("expected no candidate")
	}
}
