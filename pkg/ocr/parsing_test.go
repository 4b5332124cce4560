package ocr

import "testing"

func TestParseAmountStripDecimals(t *testing.T) {
	amt, err := ParseAmountFromMatch("150.000,00")
	if err != nil || amt != 150000 {
		t.Fatalf("expected 150000 got %d err=%v", amt, err)
	}
	amt2, err2 := ParseAmountFromMatch("7,500.00")
	if err2 != nil || amt2 != 7500 {
		t.Fatalf("expected 7500 got %d err=%v", amt2, err2)
	}
}

func TestParseAmountGrouped(t *testing.T) {
	amt, err := ParseAmountFromMatch("Rp1.500.000")
	if err != nil || amt != 1500000 {
		t.Fatalf("expected 1500000 got %d err=%v", amt, err)
	}
}

func TestParseAmountEmpty(t *testing.T) {
	if _, err := ParseAmountFromMatch("   "); err == nil {
		t.Fatal("expected error for blank match")
	}
}
