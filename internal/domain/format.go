package domain

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate renders an ISO date as the uppercase short form used on the
// printed invoice, e.g. "02-JAN-26". Unparseable input is returned as-is.
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return strings.ToUpper(t.Format("02-Jan-06"))
}

// FormatINR renders an amount with two decimals and Indian digit grouping,
// where the first group from the right holds three digits and every group
// after that holds two, e.g. 1234567.5 -> "12,34,567.50".
func FormatINR(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	grouped := intPart
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var segs []string
		for len(head) > 2 {
			segs = append([]string{head[len(head)-2:]}, segs...)
			head = head[:len(head)-2]
		}
		segs = append([]string{head}, segs...)
		grouped = strings.Join(segs, ",") + "," + tail
	}
	if neg {
		return "-" + grouped + fracPart
	}
	return grouped + fracPart
}
