// Package render produces printable tax invoices in text, HTML and PDF
// form. Every renderer emits one page per statutory copy.
package render

import (
	"fmt"
	"strings"

	"github.com/andy/gstbill/internal/domain"
)

// CopyLabel is the statutory caption printed at the top right of a page.
type CopyLabel string

const (
	CopyOriginal   CopyLabel = "ORIGINAL FOR RECIPIENT"
	CopyDuplicate  CopyLabel = "DUPLICATE FOR TRANSPORTER"
	CopyTriplicate CopyLabel = "TRIPLICATE FOR SUPPLIER"
)

// AllCopies is the full three-copy set in print order.
var AllCopies = []CopyLabel{CopyOriginal, CopyDuplicate, CopyTriplicate}

// CopySet resolves a --copies flag value to the labels to print.
func CopySet(mode string) ([]CopyLabel, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "all":
		return AllCopies, nil
	case "original":
		return []CopyLabel{CopyOriginal}, nil
	case "duplicate":
		return []CopyLabel{CopyDuplicate}, nil
	case "triplicate":
		return []CopyLabel{CopyTriplicate}, nil
	}
	return nil, fmt.Errorf("unknown copy set %q (use all, original, duplicate or triplicate)", mode)
}

// metaField is one cell of the logistics grid under the invoice header.
type metaField struct {
	Label string
	Value string
}

// metaFields lays out the reference grid in its fixed print order. Blank
// values still occupy their cell so the grid shape never shifts.
func metaFields(inv *domain.Invoice) []metaField {
	return []metaField{
		{"Invoice No.", inv.InvoiceNumber},
		{"Dated", domain.FormatDate(inv.Date)},
		{"Delivery Note", inv.DeliveryNote},
		{"Mode/Terms of Payment", inv.PaymentTerms},
		{"Buyer's Order No.", inv.BuyersOrderNo},
		{"Dated", domain.FormatDate(inv.OrderDate)},
		{"Dispatch Doc No.", inv.DispatchDocNo},
		{"Delivery Note Date", domain.FormatDate(inv.DeliveryNoteDate)},
		{"Dispatched through", inv.DispatchedThrough},
		{"Destination", inv.Destination},
		{"Bill of Lading/LR-RR No.", inv.LRNo},
		{"Motor Vehicle No.", inv.VehicleNo},
	}
}
