package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andy/gstbill/internal/domain"
)

// Format is an export target.
type Format string

const (
	FormatTxt  Format = "txt"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat resolves a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "html":
		return FormatHTML, nil
	case "txt", "text":
		return FormatTxt, nil
	}
	return "", fmt.Errorf("unknown format %q (use pdf, html or txt)", s)
}

// Export renders the invoice and writes it under dir, returning the full
// path of the written file.
func Export(inv *domain.Invoice, biz domain.BusinessDetails, format Format, copies []CopyLabel, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	var data []byte
	var err error
	switch format {
	case FormatTxt:
		data = []byte(Text(inv, biz, copies))
	case FormatHTML:
		data, err = HTML(inv, biz, copies)
	case FormatPDF:
		data, err = PDF(inv, biz, copies)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, exportFileName(inv, format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// exportFileName builds a filesystem-safe name from the invoice number and
// buyer, falling back to the row id for unnumbered drafts.
func exportFileName(inv *domain.Invoice, format Format) string {
	base := inv.InvoiceNumber
	if base == "" {
		base = inv.ID
	}
	if inv.Client.Name != "" {
		base += "-" + inv.Client.Name
	}
	return sanitize(base) + "." + string(format)
}

func sanitize(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
