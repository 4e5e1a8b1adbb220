package domain

import "testing"

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2026-01-02", "02-JAN-26"},
		{"2025-12-31", "31-DEC-25"},
		{"", ""},
		{"not-a-date", "not-a-date"},
	}
	for _, c := range cases {
		if got := FormatDate(c.in); got != c.want {
			t.Errorf("FormatDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{999, "999.00"},
		{1000, "1,000.00"},
		{100000, "1,00,000.00"},
		{1234567.5, "12,34,567.50"},
		{12345678.9, "1,23,45,678.90"},
		{-1234567.5, "-12,34,567.50"},
	}
	for _, c := range cases {
		if got := FormatINR(c.in); got != c.want {
			t.Errorf("FormatINR(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
