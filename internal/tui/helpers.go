package tui

import (
	"strconv"
	"strings"

	"github.com/andy/gstbill/internal/domain"
)

// formatAmount renders a rupee amount for tables
func formatAmount(amount float64) string {
	return "Rs. " + domain.FormatINR(amount)
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// statusBadge renders a colored status label
func statusBadge(status domain.InvoiceStatus) string {
	switch status {
	case domain.StatusFinished:
		return statusFinishedStyle.Render(string(status))
	case domain.StatusDelayed:
		return statusDelayedStyle.Render(string(status))
	default:
		return statusPendingStyle.Render(string(status))
	}
}

// parseAmount reads a user-typed number, tolerating commas and blanks
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// formatNum renders a number without trailing decimal zeroes, for editable
// quantity and rate fields
func formatNum(f float64) string {
	if f == 0 {
		return ""
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}

// matchesSearch reports whether any of the fields contains the query,
// case insensitive
func matchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
