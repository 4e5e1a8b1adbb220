package render

import (
	"fmt"
	"strings"

	"github.com/andy/gstbill/internal/domain"
)

const pageWidth = 78

// Text renders the invoice as plain text, one section per requested copy.
// The same output backs the in-app preview and the txt export.
func Text(inv *domain.Invoice, biz domain.BusinessDetails, copies []CopyLabel) string {
	var b strings.Builder
	for i, label := range copies {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeTextPage(&b, inv, biz, label)
	}
	return b.String()
}

func writeTextPage(b *strings.Builder, inv *domain.Invoice, biz domain.BusinessDetails, label CopyLabel) {
	sep := strings.Repeat("=", pageWidth)
	line := strings.Repeat("-", pageWidth)
	totals := inv.Totals()

	b.WriteString(sep + "\n")
	b.WriteString(center("TAX INVOICE") + "\n")
	b.WriteString(fmt.Sprintf("%*s\n", pageWidth, string(label)))
	b.WriteString(sep + "\n")

	b.WriteString(biz.Name + "\n")
	for _, l := range strings.Split(biz.Address, "\n") {
		if l != "" {
			b.WriteString(l + "\n")
		}
	}
	if biz.GSTIN != "" {
		b.WriteString("GSTIN/UIN: " + biz.GSTIN + "\n")
	}
	if biz.StateName != "" {
		b.WriteString(fmt.Sprintf("State Name: %s, Code: %s\n", biz.StateName, biz.StateCode))
	}

	b.WriteString(line + "\n")
	fields := metaFields(inv)
	for i := 0; i < len(fields); i += 2 {
		left := fmt.Sprintf("%s: %s", fields[i].Label, fields[i].Value)
		right := ""
		if i+1 < len(fields) {
			right = fmt.Sprintf("%s: %s", fields[i+1].Label, fields[i+1].Value)
		}
		b.WriteString(fmt.Sprintf("%-39s%s\n", left, right))
	}
	if inv.TermsOfDelivery != "" {
		b.WriteString("Terms of Delivery: " + firstLine(inv.TermsOfDelivery) + "\n")
	}

	b.WriteString(line + "\n")
	writeParty(b, "Buyer (Bill To)", &inv.Client)
	ship := inv.ShipTo()
	if ship != nil {
		writeParty(b, "Consignee (Ship To)", ship)
	}

	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%-3s %-28s %-9s %9s %-5s %10s %12s\n",
		"Sl", "Description of Goods", "HSN/SAC", "Qty", "Unit", "Rate", "Amount"))
	b.WriteString(line + "\n")

	for i, item := range inv.Items {
		desc := item.Description
		if len(desc) > 28 {
			desc = desc[:25] + "..."
		}
		b.WriteString(fmt.Sprintf("%-3d %-28s %-9s %9s %-5s %10s %12s\n",
			i+1,
			desc,
			item.HSN,
			trimZeros(item.Quantity),
			item.Unit,
			domain.FormatINR(item.UnitPrice),
			domain.FormatINR(item.Total),
		))
		// Tax component sub-lines under each item, amounts in the Amount
		// column as on the statutory layout.
		tax := inv.ItemTax(item)
		b.WriteString(fmt.Sprintf("%32s %49s\n", "CGST", domain.FormatINR(tax)))
		b.WriteString(fmt.Sprintf("%32s %49s\n", "SGST", domain.FormatINR(tax)))
	}

	b.WriteString(line + "\n")
	rate := inv.TaxRate / 2
	b.WriteString(totalRow("Subtotal", totals.Subtotal))
	b.WriteString(totalRow(fmt.Sprintf("CGST @ %s%%", trimZeros(rate)), totals.CGST))
	b.WriteString(totalRow(fmt.Sprintf("SGST @ %s%%", trimZeros(rate)), totals.SGST))
	if inv.Discount != 0 {
		b.WriteString(totalRow("Discount", -inv.Discount))
	}
	b.WriteString(totalRow("TOTAL", totals.GrandTotal))
	b.WriteString(fmt.Sprintf("%65s %12s\n", "Total Qty", trimZeros(inv.QuantityTotal())))

	b.WriteString(line + "\n")
	b.WriteString("Amount Chargeable (in words):\n")
	b.WriteString("  " + domain.AmountInWords(totals.GrandTotal) + "\n")

	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%-12s %14s %12s %12s %12s %12s\n", "HSN/SAC", "Taxable Value", "CGST Rate", "CGST Amt", "SGST Amt", "Total Tax"))
	for _, g := range inv.HSNSummary() {
		b.WriteString(fmt.Sprintf("%-12s %14s %11s%% %12s %12s %12s\n",
			g.HSN,
			domain.FormatINR(g.TaxableValue),
			trimZeros(g.Rate/2),
			domain.FormatINR(g.CGST),
			domain.FormatINR(g.SGST),
			domain.FormatINR(g.CGST+g.SGST),
		))
	}
	b.WriteString(fmt.Sprintf("%-12s %14s %12s %12s %12s %12s\n",
		"Total",
		domain.FormatINR(totals.Subtotal),
		"",
		domain.FormatINR(totals.CGST),
		domain.FormatINR(totals.SGST),
		domain.FormatINR(totals.TotalTax),
	))
	b.WriteString("Tax Amount (in words):\n")
	b.WriteString("  " + domain.AmountInWords(totals.TotalTax) + "\n")

	if biz.BankName != "" {
		b.WriteString(line + "\n")
		b.WriteString("Company's Bank Details\n")
		b.WriteString("  Bank Name:    " + biz.BankName + "\n")
		b.WriteString("  A/c No.:      " + biz.AccountNo + "\n")
		b.WriteString("  Branch & IFS: " + biz.Branch + " / " + biz.IFSC + "\n")
	}

	b.WriteString(line + "\n")
	b.WriteString("Declaration:\n")
	decl := inv.Declaration
	if decl == "" {
		decl = biz.Declaration
	}
	for _, l := range wrap(decl, pageWidth-2) {
		b.WriteString("  " + l + "\n")
	}
	b.WriteString(fmt.Sprintf("\n%*s\n", pageWidth, "for "+biz.Name))
	b.WriteString(fmt.Sprintf("%*s\n", pageWidth, "Authorised Signatory"))
	b.WriteString(sep + "\n")
	b.WriteString(center("This is a Computer Generated Invoice") + "\n")
}

func writeParty(b *strings.Builder, heading string, c *domain.Client) {
	b.WriteString(heading + ":\n")
	b.WriteString("  " + c.Name + "\n")
	for _, l := range strings.Split(c.Address, "\n") {
		if l != "" {
			b.WriteString("  " + l + "\n")
		}
	}
	if c.GSTIN != "" {
		b.WriteString("  GSTIN/UIN: " + c.GSTIN + "\n")
	}
	if c.StateName != "" {
		b.WriteString(fmt.Sprintf("  State Name: %s, Code: %s\n", c.StateName, c.StateCode))
	}
}

func totalRow(label string, amount float64) string {
	return fmt.Sprintf("%65s %12s\n", label, domain.FormatINR(amount))
}

func center(s string) string {
	if len(s) >= pageWidth {
		return s
	}
	pad := (pageWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func firstLine(s string) string {
	if i := strings.Index(s, "\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// trimZeros formats a number without trailing decimal zeroes, for
// quantities and rates.
func trimZeros(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// wrap breaks text on spaces to fit the given width, keeping explicit
// newlines.
func wrap(s string, width int) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return out
}
