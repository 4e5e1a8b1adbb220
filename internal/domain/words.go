package domain

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// twoDigits spells 0..99.
func twoDigits(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	w := tensWords[n/10]
	if n%10 != 0 {
		w += " " + onesWords[n%10]
	}
	return w
}

// threeDigits spells 0..999. The hundreds group joins the remainder with
// "and", as in "Two Hundred and Thirty Four".
func threeDigits(n int64) string {
	if n < 100 {
		return twoDigits(n)
	}
	w := onesWords[n/100] + " Hundred"
	if n%100 != 0 {
		w += " and " + twoDigits(n%100)
	}
	return w
}

// integerInWords spells a non-negative integer using the Indian grouping
// of thousand, lakh and crore.
func integerInWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	var parts []string
	if n >= 1e7 {
		parts = append(parts, integerInWords(n/1e7)+" Crore")
		n %= 1e7
	}
	if n >= 1e5 {
		parts = append(parts, twoDigits(n/1e5)+" Lakh")
		n %= 1e5
	}
	if n >= 1000 {
		parts = append(parts, twoDigits(n/1000)+" Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, threeDigits(n))
	}
	return strings.Join(parts, " ")
}

// AmountInWords renders a rupee amount for the "Amount Chargeable (in words)"
// block, e.g. "INR One Lakh Twenty Three Thousand Rupees and Fifty Paise Only".
// Paise are taken from the amount rounded to two decimals and omitted when
// zero. Negative amounts are worded by absolute value.
func AmountInWords(amount float64) string {
	amount = math.Abs(amount)
	paise := int64(math.Round(amount*100)) % 100
	rupees := int64(math.Round(amount*100)) / 100
	words := "INR " + integerInWords(rupees) + " Rupees"
	if paise > 0 {
		words += " and " + twoDigits(paise) + " Paise"
	}
	return words + " Only"
}
