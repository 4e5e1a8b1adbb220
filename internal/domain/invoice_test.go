package domain

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestItemRecalculate(t *testing.T) {
	it := InvoiceItem{Quantity: 3, UnitPrice: 150.5}
	it.Recalculate()
	if !almostEqual(it.Total, 451.5) {
		t.Errorf("Total = %v, want 451.5", it.Total)
	}

	it.Quantity = -2
	it.Recalculate()
	if !almostEqual(it.Total, -301) {
		t.Errorf("negative quantity Total = %v, want -301", it.Total)
	}
}

func TestTotals(t *testing.T) {
	inv := &Invoice{
		TaxRate:  18,
		Discount: 100,
		Items: []InvoiceItem{
			{Total: 1000},
			{Total: 500},
		},
	}
	got := inv.Totals()
	if !almostEqual(got.Subtotal, 1500) {
		t.Errorf("Subtotal = %v, want 1500", got.Subtotal)
	}
	if !almostEqual(got.CGST, 135) || !almostEqual(got.SGST, 135) {
		t.Errorf("CGST/SGST = %v/%v, want 135/135", got.CGST, got.SGST)
	}
	if !almostEqual(got.TotalTax, 270) {
		t.Errorf("TotalTax = %v, want 270", got.TotalTax)
	}
	if !almostEqual(got.GrandTotal, 1670) {
		t.Errorf("GrandTotal = %v, want 1670", got.GrandTotal)
	}
}

func TestTotalsNoFloor(t *testing.T) {
	inv := &Invoice{
		TaxRate:  18,
		Discount: 5000,
		Items:    []InvoiceItem{{Total: 1000}},
	}
	got := inv.Totals()
	if got.GrandTotal >= 0 {
		t.Errorf("GrandTotal = %v, want negative when discount exceeds total", got.GrandTotal)
	}
	if !almostEqual(got.GrandTotal, 1000+180-5000) {
		t.Errorf("GrandTotal = %v, want %v", got.GrandTotal, 1000+180-5000.0)
	}
}

func TestTotalsEmptyInvoice(t *testing.T) {
	inv := &Invoice{TaxRate: 18}
	got := inv.Totals()
	if got.Subtotal != 0 || got.TotalTax != 0 || got.GrandTotal != 0 {
		t.Errorf("empty invoice totals = %+v, want all zero", got)
	}
}

func TestHSNSummary(t *testing.T) {
	inv := &Invoice{
		TaxRate: 18,
		Items: []InvoiceItem{
			{HSN: "8471", Total: 1000},
			{HSN: "", Total: 200},
			{HSN: "8471", Total: 500},
			{HSN: "9983", Total: 300},
		},
	}
	groups := inv.HSNSummary()
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}

	// First-appearance order, blank codes bucketed under "---".
	wantOrder := []string{"8471", "---", "9983"}
	for i, w := range wantOrder {
		if groups[i].HSN != w {
			t.Errorf("groups[%d].HSN = %q, want %q", i, groups[i].HSN, w)
		}
	}

	if !almostEqual(groups[0].TaxableValue, 1500) {
		t.Errorf("8471 taxable = %v, want 1500", groups[0].TaxableValue)
	}
	if !almostEqual(groups[0].CGST, 135) || !almostEqual(groups[0].SGST, 135) {
		t.Errorf("8471 CGST/SGST = %v/%v, want 135/135", groups[0].CGST, groups[0].SGST)
	}

	var taxable float64
	for _, g := range groups {
		taxable += g.TaxableValue
	}
	if !almostEqual(taxable, inv.Totals().Subtotal) {
		t.Errorf("sum of group taxable values = %v, want subtotal %v", taxable, inv.Totals().Subtotal)
	}
}

func TestShipTo(t *testing.T) {
	inv := &Invoice{Client: Client{Name: "Acme Traders", GSTIN: "33AAAAA0000A1Z5"}}

	ship := inv.ShipTo()
	if ship.Name != "Acme Traders" {
		t.Errorf("ShipTo().Name = %q, want buyer name", ship.Name)
	}
	ship.Name = "mutated"
	if inv.Client.Name != "Acme Traders" {
		t.Error("ShipTo() must return a copy, not the buyer itself")
	}

	inv.Consignee = &Client{Name: "Warehouse B"}
	if got := inv.ShipTo().Name; got != "Warehouse B" {
		t.Errorf("ShipTo().Name = %q, want consignee name", got)
	}
}

func TestStatusNext(t *testing.T) {
	cases := []struct {
		in, want InvoiceStatus
	}{
		{StatusPending, StatusFinished},
		{StatusFinished, StatusDelayed},
		{StatusDelayed, StatusPending},
		{InvoiceStatus("bogus"), StatusPending},
	}
	for _, c := range cases {
		if got := c.in.Next(); got != c.want {
			t.Errorf("%s.Next() = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestNewInvoiceDefaults(t *testing.T) {
	biz := BusinessDetails{StateName: "Tamil Nadu", StateCode: "33"}
	biz.FillDefaults()
	inv := NewInvoice(biz)

	if inv.ID == "" {
		t.Error("NewInvoice must assign a local id")
	}
	if inv.Status != StatusPending {
		t.Errorf("Status = %s, want Pending", inv.Status)
	}
	if inv.TaxRate != 18 {
		t.Errorf("TaxRate = %v, want 18", inv.TaxRate)
	}
	if len(inv.Items) != 1 || inv.Items[0].Unit != "NOS" {
		t.Errorf("Items = %+v, want one empty NOS line", inv.Items)
	}
	if inv.SupplierStateCode != "33" {
		t.Errorf("SupplierStateCode = %q, want 33", inv.SupplierStateCode)
	}
	if inv.Declaration == "" || inv.TermsOfDelivery == "" {
		t.Error("declaration and terms must be pre-filled from the business profile")
	}
}

func TestInvoiceValidate(t *testing.T) {
	inv := &Invoice{Items: []InvoiceItem{{}}}
	if err := inv.Validate(); err == nil {
		t.Error("expected error for missing buyer name")
	}
	inv.Client.Name = "Acme"
	inv.Items = nil
	if err := inv.Validate(); err == nil {
		t.Error("expected error for empty items")
	}
	inv.Items = []InvoiceItem{{}}
	if err := inv.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
