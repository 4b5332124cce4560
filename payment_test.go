package main

import (
	"strconv"
	"strings"
	"testing"
)

func TestParseDuesMonths(t *testing.T) {
	got, err := parseDuesMonths([]string{"1", "6", "12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 6 || got[2] != 12 {
		t.Fatalf("unexpected months: %v", got)
	}
}

func TestParseDuesMonthsEmpty(t *testing.T) {
	if _, err := parseDuesMonths(nil); err == nil {
		t.Fatal("expected error for empty months")
	}
	if _, err := parseDuesMonths([]string{}); err == nil {
		t.Fatal("expected error for empty months")
	}
}

func TestParseDuesMonthsInvalid(t *testing.T) {
	for _, in := range []string{"0", "13", "-1", "abc", ""} {
		if _, err := parseDuesMonths([]string{in}); err == nil {
			t.Errorf("expected error for month %q", in)
		}
	}
}

func TestParseDuesMonthsDuplicate(t *testing.T) {
	if _, err := parseDuesMonths([]string{"3", "4", "3"}); err == nil {
		t.Fatal("expected error for duplicate month")
	}
}

func TestParseDuesYear(t *testing.T) {
	y, err := parseDuesYear("2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if y != 2025 {
		t.Fatalf("got %d, want 2025", y)
	}
	for _, in := range []string{"25", "20255", "abcd", "", "20a5"} {
		if _, err := parseDuesYear(in); err == nil {
			t.Errorf("expected error for year %q", in)
		}
	}
}

func TestNewReferenceID(t *testing.T) {
	ref := newReferenceID("B12")
	if !strings.HasPrefix(ref, "GJL-B12-") {
		t.Fatalf("unexpected prefix: %s", ref)
	}
	suffix := strings.TrimPrefix(ref, "GJL-B12-")
	if _, err := strconv.ParseInt(suffix, 10, 64); err != nil {
		t.Fatalf("suffix %q is not a timestamp: %v", suffix, err)
	}
}

func TestMonthNamesComplete(t *testing.T) {
	for m := 1; m <= 12; m++ {
		if monthNames[m] == "" {
			t.Errorf("missing name for month %d", m)
		}
	}
}
