package domain

import "testing"

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "INR Zero Rupees Only"},
		{1, "INR One Rupees Only"},
		{19, "INR Nineteen Rupees Only"},
		{45, "INR Forty Five Rupees Only"},
		{100, "INR One Hundred Rupees Only"},
		{105, "INR One Hundred and Five Rupees Only"},
		{234, "INR Two Hundred and Thirty Four Rupees Only"},
		{1000, "INR One Thousand Rupees Only"},
		{55000, "INR Fifty Five Thousand Rupees Only"},
		{100000, "INR One Lakh Rupees Only"},
		{123456, "INR One Lakh Twenty Three Thousand Four Hundred and Fifty Six Rupees Only"},
		{10000000, "INR One Crore Rupees Only"},
		{12345678, "INR One Crore Twenty Three Lakh Forty Five Thousand Six Hundred and Seventy Eight Rupees Only"},
		{1.5, "INR One Rupees and Fifty Paise Only"},
		{0.25, "INR Zero Rupees and Twenty Five Paise Only"},
		{99.99, "INR Ninety Nine Rupees and Ninety Nine Paise Only"},
		{1234.50, "INR One Thousand Two Hundred and Thirty Four Rupees and Fifty Paise Only"},
		{-250, "INR Two Hundred and Fifty Rupees Only"},
	}
	for _, c := range cases {
		if got := AmountInWords(c.amount); got != c.want {
			t.Errorf("AmountInWords(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestAmountInWordsRoundsPaise(t *testing.T) {
	// 10.999 rounds to 11.00, not 10 rupees 100 paise.
	if got := AmountInWords(10.999); got != "INR Eleven Rupees Only" {
		t.Errorf("AmountInWords(10.999) = %q, want %q", got, "INR Eleven Rupees Only")
	}
}
