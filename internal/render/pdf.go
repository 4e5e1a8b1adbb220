package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/andy/gstbill/internal/domain"
)

const (
	pdfMargin    = 10.0
	pdfPageWidth = 210.0 - 2*pdfMargin
)

// PDF renders the invoice as an A4 document, one page per requested copy.
func PDF(inv *domain.Invoice, biz domain.BusinessDetails, copies []CopyLabel) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	for _, label := range copies {
		writePDFPage(pdf, inv, biz, label)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFPage(pdf *gofpdf.Fpdf, inv *domain.Invoice, biz domain.BusinessDetails, label CopyLabel) {
	pdf.AddPage()
	totals := inv.Totals()

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(pdfPageWidth, 4, string(label), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(pdfPageWidth, 7, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(1)

	// Supplier block with optional logo, reference grid alongside.
	top := pdf.GetY()
	leftW := pdfPageWidth * 0.55
	x := pdf.GetX()

	if biz.LogoPath != "" {
		if _, err := os.Stat(biz.LogoPath); err == nil {
			pdf.ImageOptions(biz.LogoPath, x+1, top+1, 0, 12, false, gofpdf.ImageOptions{}, 0, "")
			pdf.SetY(top + 14)
		}
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(leftW, 4.5, biz.Name, "", "L", false)
	pdf.SetFont("Helvetica", "", 8)
	if biz.Address != "" {
		pdf.MultiCell(leftW, 3.8, biz.Address, "", "L", false)
	}
	if biz.GSTIN != "" {
		pdf.MultiCell(leftW, 3.8, "GSTIN/UIN: "+biz.GSTIN, "", "L", false)
	}
	if biz.StateName != "" {
		pdf.MultiCell(leftW, 3.8, fmt.Sprintf("State Name: %s, Code: %s", biz.StateName, biz.StateCode), "", "L", false)
	}
	leftBottom := pdf.GetY()

	// Reference grid on the right, two cells per field.
	pdf.SetXY(x+leftW, top)
	rightW := pdfPageWidth - leftW
	pdf.SetFont("Helvetica", "", 7)
	for _, f := range metaFields(inv) {
		pdf.SetX(x + leftW)
		pdf.CellFormat(rightW*0.5, 4, f.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(rightW*0.5, 4, f.Value, "1", 1, "L", false, 0, "")
	}
	pdf.SetX(x + leftW)
	pdf.CellFormat(rightW*0.5, 4, "Terms of Delivery", "1", 0, "L", false, 0, "")
	pdf.CellFormat(rightW*0.5, 4, firstLine(inv.TermsOfDelivery), "1", 1, "L", false, 0, "")
	if pdf.GetY() < leftBottom {
		pdf.SetY(leftBottom)
	}
	pdf.Ln(2)

	// Buyer and consignee side by side.
	partyTop := pdf.GetY()
	writePDFPartyAt(pdf, x, leftW, "Buyer (Bill To)", &inv.Client)
	buyerBottom := pdf.GetY()
	pdf.SetXY(x+leftW, partyTop)
	writePDFPartyAt(pdf, x+leftW, rightW, "Consignee (Ship To)", inv.ShipTo())
	if pdf.GetY() < buyerBottom {
		pdf.SetY(buyerBottom)
	}
	pdf.Ln(2)

	// Goods table.
	widths := []float64{8, 72, 18, 18, 14, 28, 32}
	headers := []string{"Sl", "Description of Goods", "HSN/SAC", "Quantity", "Unit", "Rate", "Amount"}
	aligns := []string{"C", "L", "C", "R", "C", "R", "R"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 5.5, h, "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, it := range inv.Items {
		row := []string{
			fmt.Sprintf("%d", i+1),
			it.Description,
			it.HSN,
			trimZeros(it.Quantity),
			it.Unit,
			domain.FormatINR(it.UnitPrice),
			domain.FormatINR(it.Total),
		}
		for j, v := range row {
			if j == 1 && len(v) > 48 {
				v = v[:45] + "..."
			}
			pdf.CellFormat(widths[j], 5, v, "1", 0, aligns[j], false, 0, "")
		}
		pdf.Ln(-1)

		// Tax component sub-lines under the item, amounts in the Amount
		// column.
		tax := domain.FormatINR(inv.ItemTax(it))
		pdf.SetFont("Helvetica", "I", 7)
		for _, comp := range []string{"CGST", "SGST"} {
			pdf.CellFormat(widths[0], 4, "", "LR", 0, "C", false, 0, "")
			pdf.CellFormat(widths[1], 4, comp, "LR", 0, "R", false, 0, "")
			for j := 2; j <= 5; j++ {
				pdf.CellFormat(widths[j], 4, "", "LR", 0, "C", false, 0, "")
			}
			pdf.CellFormat(widths[6], 4, tax, "LR", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "", 8)
	}

	// Totals column under the amount cells.
	labelW := widths[0] + widths[1] + widths[2] + widths[3] + widths[4] + widths[5]
	rate := trimZeros(inv.TaxRate / 2)
	writeTotal := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)
		pdf.CellFormat(labelW, 5, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 5, amount, "1", 1, "R", false, 0, "")
	}
	writeTotal("Subtotal", domain.FormatINR(totals.Subtotal), false)
	writeTotal("CGST @ "+rate+"%", domain.FormatINR(totals.CGST), false)
	writeTotal("SGST @ "+rate+"%", domain.FormatINR(totals.SGST), false)
	if inv.Discount != 0 {
		writeTotal("Discount", domain.FormatINR(-inv.Discount), false)
	}
	writeTotal("Total", domain.FormatINR(totals.GrandTotal), true)
	writeTotal("Total Quantity", trimZeros(inv.QuantityTotal()), false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(pdfPageWidth, 4, "Amount Chargeable (in words)", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(pdfPageWidth, 4, domain.AmountInWords(totals.GrandTotal), "", "L", false)
	pdf.Ln(1)

	// Statutory tax summary per HSN code, with a totals row.
	sumW := []float64{30, 40, 25, 30, 30, 35}
	sumHeaders := []string{"HSN/SAC", "Taxable Value", "CGST Rate", "CGST Amount", "SGST Amount", "Total Tax Amount"}
	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range sumHeaders {
		pdf.CellFormat(sumW[i], 5, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
	for _, g := range inv.HSNSummary() {
		pdf.CellFormat(sumW[0], 5, g.HSN, "1", 0, "L", false, 0, "")
		pdf.CellFormat(sumW[1], 5, domain.FormatINR(g.TaxableValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(sumW[2], 5, trimZeros(g.Rate/2)+"%", "1", 0, "R", false, 0, "")
		pdf.CellFormat(sumW[3], 5, domain.FormatINR(g.CGST), "1", 0, "R", false, 0, "")
		pdf.CellFormat(sumW[4], 5, domain.FormatINR(g.SGST), "1", 0, "R", false, 0, "")
		pdf.CellFormat(sumW[5], 5, domain.FormatINR(g.CGST+g.SGST), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(sumW[0], 5, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(sumW[1], 5, domain.FormatINR(totals.Subtotal), "1", 0, "R", false, 0, "")
	pdf.CellFormat(sumW[2], 5, "", "1", 0, "R", false, 0, "")
	pdf.CellFormat(sumW[3], 5, domain.FormatINR(totals.CGST), "1", 0, "R", false, 0, "")
	pdf.CellFormat(sumW[4], 5, domain.FormatINR(totals.SGST), "1", 0, "R", false, 0, "")
	pdf.CellFormat(sumW[5], 5, domain.FormatINR(totals.TotalTax), "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(pdfPageWidth, 4, "Tax Amount (in words): "+domain.AmountInWords(totals.TotalTax), "", "L", false)
	pdf.Ln(1)

	if biz.BankName != "" {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(pdfPageWidth, 4, "Company's Bank Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(pdfPageWidth, 3.8, fmt.Sprintf("Bank Name: %s\nA/c No.: %s\nBranch & IFS Code: %s / %s",
			biz.BankName, biz.AccountNo, biz.Branch, biz.IFSC), "", "L", false)
		pdf.Ln(1)
	}

	decl := inv.Declaration
	if decl == "" {
		decl = biz.Declaration
	}
	declTop := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(leftW, 3.5, "Declaration", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.MultiCell(leftW, 3.2, decl, "", "L", false)

	pdf.SetXY(x+leftW, declTop)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(rightW, 4, "for "+biz.Name, "", 2, "R", false, 0, "")
	pdf.Ln(8)
	pdf.SetX(x + leftW)
	pdf.CellFormat(rightW, 4, "Authorised Signatory", "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(pdfPageWidth, 4, "This is a Computer Generated Invoice", "", 1, "C", false, 0, "")
}

func writePDFPartyAt(pdf *gofpdf.Fpdf, x, w float64, heading string, c *domain.Client) {
	pdf.SetX(x)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(w, 3.5, heading, "", 2, "L", false, 0, "")
	if c == nil {
		return
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(x)
	pdf.MultiCell(w, 4, c.Name, "", "L", false)
	pdf.SetFont("Helvetica", "", 8)
	if c.Address != "" {
		pdf.SetX(x)
		pdf.MultiCell(w, 3.8, c.Address, "", "L", false)
	}
	var lines []string
	if c.GSTIN != "" {
		lines = append(lines, "GSTIN/UIN: "+c.GSTIN)
	}
	if c.StateName != "" {
		lines = append(lines, fmt.Sprintf("State Name: %s, Code: %s", c.StateName, c.StateCode))
	}
	if len(lines) > 0 {
		pdf.SetX(x)
		pdf.MultiCell(w, 3.8, strings.Join(lines, "\n"), "", "L", false)
	}
}
