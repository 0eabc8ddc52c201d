package present

import "testing"

func TestGroupIndian(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "0"},
		{12, "12"},
		{999, "999"},
		{1000, "1,000"},
		{99999, "99,999"},
		{100000, "1,00,000"},
		{1234567, "12,34,567"},
		{2500000, "25,00,000"},
		{4476000, "44,76,000"},
		{12345678901, "12,34,56,78,901"},
		{-1976000, "-19,76,000"},
		{4476000.4, "44,76,000"},
		{4475999.6, "44,76,000"},
	}
	for _, tc := range cases {
		if got := GroupIndian(tc.amount); got != tc.want {
			t.Errorf("GroupIndian(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatINR(t *testing.T) {
	if got := FormatINR(4476000); got != "₹44,76,000" {
		t.Errorf("FormatINR(4476000) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(6); got != "6%" {
		t.Errorf("FormatPercent(6) = %q", got)
	}
	if got := FormatPercent(6.5); got != "6.5%" {
		t.Errorf("FormatPercent(6.5) = %q", got)
	}
}

func TestFormatYears(t *testing.T) {
	if got := FormatYears(1); got != "1 year" {
		t.Errorf("FormatYears(1) = %q", got)
	}
	if got := FormatYears(10); got != "10 years" {
		t.Errorf("FormatYears(10) = %q", got)
	}
}
