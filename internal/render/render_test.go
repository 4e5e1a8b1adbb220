package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/gstbill/internal/domain"
)

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "GST-2026-042",
		Date:          "2026-08-28",
		Client: domain.Client{
			Name:      "Acme Traders",
			Address:   "12 Mount Road\nChennai 600002",
			GSTIN:     "33AAAAA0000A1Z5",
			StateName: "Tamil Nadu",
			StateCode: "33",
		},
		Items: []domain.InvoiceItem{
			{ID: "i1", Description: "Steel rods", HSN: "7214", Quantity: 10, Unit: "KGS", UnitPrice: 450, Total: 4500},
			{ID: "i2", Description: "Delivery charges", Quantity: 1, Unit: "NOS", UnitPrice: 500, Total: 500},
		},
		TaxRate:  18,
		Discount: 100,
		Status:   domain.StatusPending,
		Currency: "INR",
	}
}

func sampleBusiness() domain.BusinessDetails {
	biz := domain.BusinessDetails{
		Name:      "Sharma Steel Works",
		Address:   "5 Industrial Estate\nChennai 600032",
		GSTIN:     "33BBBBB1111B1Z4",
		StateName: "Tamil Nadu",
		StateCode: "33",
		BankName:  "State Bank of India",
		AccountNo: "0012345678",
		IFSC:      "SBIN0000123",
		Branch:    "Guindy",
	}
	biz.FillDefaults()
	return biz
}

func TestCopySet(t *testing.T) {
	all, err := CopySet("all")
	if err != nil || len(all) != 3 {
		t.Fatalf("CopySet(all) = %v, %v", all, err)
	}
	one, err := CopySet("Duplicate")
	if err != nil || len(one) != 1 || one[0] != CopyDuplicate {
		t.Fatalf("CopySet(Duplicate) = %v, %v", one, err)
	}
	if _, err := CopySet("quadruplicate"); err == nil {
		t.Error("expected error for unknown copy set")
	}
}

func TestTextContainsEveryCopyLabel(t *testing.T) {
	out := Text(sampleInvoice(), sampleBusiness(), AllCopies)
	for _, label := range AllCopies {
		if !strings.Contains(out, string(label)) {
			t.Errorf("output missing copy label %q", label)
		}
	}
}

func TestTextPageContent(t *testing.T) {
	inv := sampleInvoice()
	out := Text(inv, sampleBusiness(), []CopyLabel{CopyOriginal})

	for _, want := range []string{
		"TAX INVOICE",
		"GST-2026-042",
		"28-AUG-26",
		"Acme Traders",
		"Sharma Steel Works",
		"7214",
		"CGST @ 9%",
		"SGST @ 9%",
		"5,800.00", // 5000 + 900 tax - 100 discount
		"INR Five Thousand Eight Hundred Rupees Only",
		"---", // HSN bucket for the uncoded delivery line
		"State Bank of India",
		"Authorised Signatory",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}

	// No consignee entered: the buyer doubles as ship-to.
	if !strings.Contains(out, "Consignee (Ship To)") {
		t.Error("text output missing consignee block")
	}
}

func TestTextItemTaxSubLines(t *testing.T) {
	out := Text(sampleInvoice(), sampleBusiness(), []CopyLabel{CopyOriginal})
	// 4500 at 18% GST carries 405.00 per component, 500 carries 45.00.
	count := func(comp, amt string) int {
		n := 0
		for _, line := range strings.Split(out, "\n") {
			f := strings.Fields(line)
			if len(f) == 2 && f[0] == comp && f[1] == amt {
				n++
			}
		}
		return n
	}
	for _, c := range []struct{ comp, amt string }{
		{"CGST", "405.00"},
		{"SGST", "405.00"},
		{"CGST", "45.00"},
		{"SGST", "45.00"},
	} {
		if got := count(c.comp, c.amt); got != 1 {
			t.Errorf("%s sub-line with %s: found %d, want 1", c.comp, c.amt, got)
		}
	}
}

func TestTextHSNSummaryTotalsRow(t *testing.T) {
	out := Text(sampleInvoice(), sampleBusiness(), []CopyLabel{CopyOriginal})
	found := false
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if len(f) == 5 && f[0] == "Total" &&
			f[1] == "5,000.00" && f[2] == "450.00" && f[3] == "450.00" && f[4] == "900.00" {
			found = true
		}
	}
	if !found {
		t.Error("summary table missing the totals row")
	}
}

func TestTextCopiesShareTotals(t *testing.T) {
	inv := sampleInvoice()
	biz := sampleBusiness()
	pages := make([]string, 0, 3)
	for _, label := range AllCopies {
		pages = append(pages, Text(inv, biz, []CopyLabel{label}))
	}
	stripLabel := func(page string, label CopyLabel) string {
		var kept []string
		for _, l := range strings.Split(page, "\n") {
			if strings.Contains(l, string(label)) {
				continue
			}
			kept = append(kept, l)
		}
		return strings.Join(kept, "\n")
	}
	for i := 1; i < len(pages); i++ {
		a := stripLabel(pages[0], AllCopies[0])
		b := stripLabel(pages[i], AllCopies[i])
		if a != b {
			t.Errorf("copy %d differs from the original beyond its label", i)
		}
	}
}

func TestHTMLIsSelfContained(t *testing.T) {
	out, err := HTML(sampleInvoice(), sampleBusiness(), AllCopies)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	s := string(out)
	if strings.Count(s, `class="page"`) != 3 {
		t.Errorf("want 3 pages, got %d", strings.Count(s, `class="page"`))
	}
	for _, want := range []string{"TAX INVOICE", "Acme Traders", "5,800.00", "page-break-after"} {
		if !strings.Contains(s, want) {
			t.Errorf("html output missing %q", want)
		}
	}
	if strings.Contains(s, "href=") || strings.Contains(s, "src=\"http") {
		t.Error("html output must not reference external resources")
	}
}

func TestHTMLItemTaxAndSummaryTotals(t *testing.T) {
	out, err := HTML(sampleInvoice(), sampleBusiness(), []CopyLabel{CopyOriginal})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"405.00", // per-item tax component on the 4500 line
		"45.00",  // per-item tax component on the 500 line
		"Total Tax Amount",
		"900.00", // summary totals row, CGST + SGST
	} {
		if !strings.Contains(s, want) {
			t.Errorf("html output missing %q", want)
		}
	}
}

func TestHTMLEscapesUserText(t *testing.T) {
	inv := sampleInvoice()
	inv.Items[0].Description = `<script>alert("x")</script>`
	out, err := HTML(inv, sampleBusiness(), []CopyLabel{CopyOriginal})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(string(out), "<script>alert") {
		t.Error("item description must be escaped")
	}
}

func TestPDFProducesThreePages(t *testing.T) {
	out, err := PDF(sampleInvoice(), sampleBusiness(), AllCopies)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if got := bytes.Count(out, []byte("/Type /Page")); got < 3 {
		t.Errorf("page objects = %d, want at least 3", got)
	}
}

func TestExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	path, err := Export(sampleInvoice(), sampleBusiness(), FormatTxt, []CopyLabel{CopyOriginal}, dir)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(path) != "gst-2026-042-acme-traders.txt" {
		t.Errorf("file name = %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !strings.Contains(string(data), "GST-2026-042") {
		t.Error("exported file missing invoice number")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatPDF {
		t.Errorf("default format = %v, %v", f, err)
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
