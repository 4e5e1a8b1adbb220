package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/andy/gstbill/internal/domain"
)

// htmlItem is one pre-formatted row of the goods table.
type htmlItem struct {
	Sl     int
	Desc   string
	HSN    string
	Qty    string
	Unit   string
	Rate   string
	Amount string
	Tax    string // one CGST/SGST component for the sub-lines
}

type htmlHSNRow struct {
	HSN     string
	Taxable string
	Rate    string
	CGST    string
	SGST    string
	Total   string
}

type htmlTotalRow struct {
	Label  string
	Amount string
	Strong bool
}

// htmlPage is everything one printed copy needs, pre-formatted so the
// template stays free of logic.
type htmlPage struct {
	CopyLabel    string
	Business     domain.BusinessDetails
	BizAddress   []string
	LogoDataURI  template.URL
	Buyer        *domain.Client
	BuyerAddr    []string
	Consignee    *domain.Client
	ConsAddr     []string
	Meta         []metaField
	Terms        string
	Items        []htmlItem
	QtyTotal     string
	TotalRows    []htmlTotalRow
	AmountWords  string
	HSNRows      []htmlHSNRow
	HSNTotal     htmlHSNRow
	TaxWords     string
	Declaration  string
	InvoiceTitle string
}

type htmlDoc struct {
	Title string
	Pages []htmlPage
}

// HTML renders a self-contained printable document: inline CSS, embedded
// logo, one A4 page per copy with a print page break between them.
func HTML(inv *domain.Invoice, biz domain.BusinessDetails, copies []CopyLabel) ([]byte, error) {
	doc := htmlDoc{Title: "Invoice " + inv.InvoiceNumber}
	for _, label := range copies {
		doc.Pages = append(doc.Pages, buildHTMLPage(inv, biz, label))
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func buildHTMLPage(inv *domain.Invoice, biz domain.BusinessDetails, label CopyLabel) htmlPage {
	totals := inv.Totals()
	ship := inv.ShipTo()

	page := htmlPage{
		CopyLabel:    string(label),
		Business:     biz,
		BizAddress:   splitLines(biz.Address),
		LogoDataURI:  logoDataURI(biz.LogoPath),
		Buyer:        &inv.Client,
		BuyerAddr:    splitLines(inv.Client.Address),
		Consignee:    ship,
		Meta:         metaFields(inv),
		Terms:        inv.TermsOfDelivery,
		QtyTotal:     trimZeros(inv.QuantityTotal()),
		AmountWords:  domain.AmountInWords(totals.GrandTotal),
		TaxWords:     domain.AmountInWords(totals.TotalTax),
		Declaration:  inv.Declaration,
		InvoiceTitle: "TAX INVOICE",
	}
	if ship != nil {
		page.ConsAddr = splitLines(ship.Address)
	}
	if page.Declaration == "" {
		page.Declaration = biz.Declaration
	}

	for i, it := range inv.Items {
		page.Items = append(page.Items, htmlItem{
			Sl:     i + 1,
			Desc:   it.Description,
			HSN:    it.HSN,
			Qty:    trimZeros(it.Quantity),
			Unit:   it.Unit,
			Rate:   domain.FormatINR(it.UnitPrice),
			Amount: domain.FormatINR(it.Total),
			Tax:    domain.FormatINR(inv.ItemTax(it)),
		})
	}

	rate := trimZeros(inv.TaxRate / 2)
	page.TotalRows = []htmlTotalRow{
		{Label: "Subtotal", Amount: domain.FormatINR(totals.Subtotal)},
		{Label: "CGST @ " + rate + "%", Amount: domain.FormatINR(totals.CGST)},
		{Label: "SGST @ " + rate + "%", Amount: domain.FormatINR(totals.SGST)},
	}
	if inv.Discount != 0 {
		page.TotalRows = append(page.TotalRows, htmlTotalRow{Label: "Discount", Amount: domain.FormatINR(-inv.Discount)})
	}
	page.TotalRows = append(page.TotalRows, htmlTotalRow{Label: "Total", Amount: domain.FormatINR(totals.GrandTotal), Strong: true})

	for _, g := range inv.HSNSummary() {
		page.HSNRows = append(page.HSNRows, htmlHSNRow{
			HSN:     g.HSN,
			Taxable: domain.FormatINR(g.TaxableValue),
			Rate:    trimZeros(g.Rate/2) + "%",
			CGST:    domain.FormatINR(g.CGST),
			SGST:    domain.FormatINR(g.SGST),
			Total:   domain.FormatINR(g.CGST + g.SGST),
		})
	}
	page.HSNTotal = htmlHSNRow{
		HSN:     "Total",
		Taxable: domain.FormatINR(totals.Subtotal),
		CGST:    domain.FormatINR(totals.CGST),
		SGST:    domain.FormatINR(totals.SGST),
		Total:   domain.FormatINR(totals.TotalTax),
	}

	return page
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// logoDataURI embeds the business logo as a data URI so the exported file
// has no external references. A missing or unreadable logo renders nothing.
func logoDataURI(path string) template.URL {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	}
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}

var htmlTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; color: #111; margin: 0; }
  .page { width: 190mm; margin: 0 auto; padding: 8mm 0; page-break-after: always; }
  .page:last-child { page-break-after: auto; }
  table { width: 100%; border-collapse: collapse; }
  td, th { border: 1px solid #333; padding: 3px 5px; vertical-align: top; }
  th { background: #eee; text-align: left; }
  .title { text-align: center; font-size: 14px; font-weight: bold; padding: 4px; }
  .copy { text-align: right; font-size: 10px; font-weight: bold; }
  .num { text-align: right; }
  .noborder td { border: none; }
  .small { font-size: 9px; color: #444; }
  .sign { text-align: right; height: 50px; }
  .tax { font-size: 9px; font-style: italic; text-align: right; }
  .logo { max-height: 48px; }
</style>
</head>
<body>
{{range .Pages}}
<div class="page">
  <div class="copy">{{.CopyLabel}}</div>
  <div class="title">{{.InvoiceTitle}}</div>
  <table>
    <tr>
      <td style="width:55%">
        {{if .LogoDataURI}}<img class="logo" src="{{.LogoDataURI}}" alt="">{{end}}
        <strong>{{.Business.Name}}</strong><br>
        {{range .BizAddress}}{{.}}<br>{{end}}
        {{if .Business.GSTIN}}GSTIN/UIN: {{.Business.GSTIN}}<br>{{end}}
        {{if .Business.StateName}}State Name: {{.Business.StateName}}, Code: {{.Business.StateCode}}{{end}}
      </td>
      <td>
        <table class="noborder">
        {{range .Meta}}<tr><td style="width:55%">{{.Label}}</td><td>{{.Value}}</td></tr>
        {{end}}
        <tr><td>Terms of Delivery</td><td>{{.Terms}}</td></tr>
        </table>
      </td>
    </tr>
    <tr>
      <td>
        <span class="small">Buyer (Bill To)</span><br>
        <strong>{{.Buyer.Name}}</strong><br>
        {{range .BuyerAddr}}{{.}}<br>{{end}}
        {{if .Buyer.GSTIN}}GSTIN/UIN: {{.Buyer.GSTIN}}<br>{{end}}
        {{if .Buyer.StateName}}State Name: {{.Buyer.StateName}}, Code: {{.Buyer.StateCode}}{{end}}
      </td>
      <td>
        <span class="small">Consignee (Ship To)</span><br>
        {{if .Consignee}}<strong>{{.Consignee.Name}}</strong><br>
        {{range .ConsAddr}}{{.}}<br>{{end}}
        {{if .Consignee.GSTIN}}GSTIN/UIN: {{.Consignee.GSTIN}}<br>{{end}}
        {{if .Consignee.StateName}}State Name: {{.Consignee.StateName}}, Code: {{.Consignee.StateCode}}{{end}}{{end}}
      </td>
    </tr>
  </table>
  <table>
    <tr><th>Sl</th><th>Description of Goods</th><th>HSN/SAC</th><th class="num">Quantity</th><th>Unit</th><th class="num">Rate</th><th class="num">Amount</th></tr>
    {{range .Items}}
    <tr>
      <td>{{.Sl}}</td>
      <td>{{.Desc}}<div class="tax">CGST<br>SGST</div></td>
      <td>{{.HSN}}</td><td class="num">{{.Qty}}</td><td>{{.Unit}}</td><td class="num">{{.Rate}}</td>
      <td class="num">{{.Amount}}<div class="tax">{{.Tax}}<br>{{.Tax}}</div></td>
    </tr>
    {{end}}
    {{range .TotalRows}}
    <tr><td colspan="5"></td><td>{{if .Strong}}<strong>{{.Label}}</strong>{{else}}{{.Label}}{{end}}</td><td class="num">{{if .Strong}}<strong>{{.Amount}}</strong>{{else}}{{.Amount}}{{end}}</td></tr>
    {{end}}
    <tr><td colspan="3">Total Quantity</td><td class="num">{{.QtyTotal}}</td><td colspan="3"></td></tr>
  </table>
  <table>
    <tr><td><strong>Amount Chargeable (in words)</strong><br>{{.AmountWords}}</td></tr>
  </table>
  <table>
    <tr><th>HSN/SAC</th><th class="num">Taxable Value</th><th class="num">CGST Rate</th><th class="num">CGST Amount</th><th class="num">SGST Amount</th><th class="num">Total Tax Amount</th></tr>
    {{range .HSNRows}}
    <tr><td>{{.HSN}}</td><td class="num">{{.Taxable}}</td><td class="num">{{.Rate}}</td><td class="num">{{.CGST}}</td><td class="num">{{.SGST}}</td><td class="num">{{.Total}}</td></tr>
    {{end}}
    {{with .HSNTotal}}
    <tr><td><strong>{{.HSN}}</strong></td><td class="num"><strong>{{.Taxable}}</strong></td><td></td><td class="num"><strong>{{.CGST}}</strong></td><td class="num"><strong>{{.SGST}}</strong></td><td class="num"><strong>{{.Total}}</strong></td></tr>
    {{end}}
    <tr><td colspan="6">Tax Amount (in words): {{.TaxWords}}</td></tr>
  </table>
  <table>
    <tr>
      <td style="width:55%">
        {{if .Business.BankName}}<strong>Company's Bank Details</strong><br>
        Bank Name: {{.Business.BankName}}<br>
        A/c No.: {{.Business.AccountNo}}<br>
        Branch &amp; IFS Code: {{.Business.Branch}} / {{.Business.IFSC}}<br>{{end}}
        <span class="small">Declaration</span><br>{{.Declaration}}
      </td>
      <td class="sign">for <strong>{{.Business.Name}}</strong><br><br><br>Authorised Signatory</td>
    </tr>
  </table>
  <div class="small" style="text-align:center">This is a Computer Generated Invoice</div>
</div>
{{end}}
</body>
</html>
`))
