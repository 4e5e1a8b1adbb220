package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	StatusPending  InvoiceStatus = "Pending"
	StatusFinished InvoiceStatus = "Finished"
	StatusDelayed  InvoiceStatus = "Delayed"
)

// Statuses lists every invoice status in cycle order.
var Statuses = []InvoiceStatus{StatusPending, StatusFinished, StatusDelayed}

// Next returns the following status in cycle order.
func (s InvoiceStatus) Next() InvoiceStatus {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusPending
}

// InvoiceItem is one line of goods. Total is derived; it is never edited
// independently of Quantity and UnitPrice.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	HSN         string  `json:"hsn"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Recalculate refreshes the derived total. Called on every quantity or
// rate edit; negative inputs propagate arithmetically.
func (it *InvoiceItem) Recalculate() {
	it.Total = it.Quantity * it.UnitPrice
}

// NewItem returns an empty line with the conventional unit label.
func NewItem() InvoiceItem {
	return InvoiceItem{ID: uuid.NewString(), Unit: "NOS"}
}

// Invoice is the full editable document. The JSON tags match the snapshot
// stored in the remote invoices.invoice_data column.
type Invoice struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id,omitempty"`
	ClientID      string        `json:"client_id,omitempty"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          string        `json:"date"` // 2006-01-02
	DueDate       string        `json:"dueDate"`
	Client        Client        `json:"client"`
	Consignee     *Client       `json:"consignee,omitempty"`
	Items         []InvoiceItem `json:"items"`
	Notes         string        `json:"notes"`
	TaxRate       float64       `json:"taxRate"`  // percent, split evenly CGST/SGST
	Discount      float64       `json:"discount"` // flat amount after tax
	Status        InvoiceStatus `json:"status"`
	Currency      string        `json:"currency"`

	// Logistics pass-through fields, carried unchanged for display.
	DeliveryNote      string `json:"deliveryNote,omitempty"`
	PaymentTerms      string `json:"paymentTerms,omitempty"`
	BuyersOrderNo     string `json:"buyersOrderNo,omitempty"`
	OrderDate         string `json:"orderDate,omitempty"`
	DispatchDocNo     string `json:"dispatchDocNo,omitempty"`
	DeliveryNoteDate  string `json:"deliveryNoteDate,omitempty"`
	DispatchedThrough string `json:"dispatchedThrough,omitempty"`
	Destination       string `json:"destination,omitempty"`
	LRNo              string `json:"lrNo,omitempty"`
	VehicleNo         string `json:"vehicleNo,omitempty"`
	TermsOfDelivery   string `json:"termsOfDelivery,omitempty"`
	Declaration       string `json:"declaration,omitempty"`
	SupplierStateName string `json:"supplierStateName,omitempty"`
	SupplierStateCode string `json:"supplierStateCode,omitempty"`

	TotalAmount float64   `json:"total_amount,omitempty"` // denormalized for the store
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// NewInvoice creates a draft dated today, pre-filled from the issuing
// business profile. The id is local until the first save.
func NewInvoice(business BusinessDetails) *Invoice {
	today := time.Now().Format("2006-01-02")
	return &Invoice{
		ID:                uuid.NewString(),
		Date:              today,
		DueDate:           today,
		Items:             []InvoiceItem{NewItem()},
		TaxRate:           18,
		Status:            StatusPending,
		Currency:          "INR",
		TermsOfDelivery:   business.DefaultTerms,
		Declaration:       business.Declaration,
		SupplierStateName: business.StateName,
		SupplierStateCode: business.StateCode,
	}
}

// ShipTo returns the consignee block, defaulting to a copy of the buyer
// when no separate consignee was entered.
func (inv *Invoice) ShipTo() *Client {
	if inv.Consignee != nil {
		return inv.Consignee
	}
	return inv.Client.Copy()
}

// Validate returns an error if the invoice cannot be saved.
func (inv *Invoice) Validate() error {
	if inv.Client.Name == "" {
		return errors.New("buyer name is required")
	}
	if len(inv.Items) == 0 {
		return errors.New("at least one item is required")
	}
	return nil
}

// Totals holds every derived amount on an invoice. The tax is always split
// into two equal components regardless of the declared states.
type Totals struct {
	Subtotal   float64
	CGST       float64
	SGST       float64
	TotalTax   float64
	GrandTotal float64
}

// Totals derives all amounts from the current items, tax rate and discount.
// There is no floor: a discount above subtotal+tax yields a negative total.
func (inv *Invoice) Totals() Totals {
	var t Totals
	for _, it := range inv.Items {
		t.Subtotal += it.Total
	}
	t.CGST = t.Subtotal * inv.TaxRate / 200
	t.SGST = t.Subtotal * inv.TaxRate / 200
	t.TotalTax = t.CGST + t.SGST
	t.GrandTotal = t.Subtotal + t.TotalTax - inv.Discount
	return t
}

// ItemTax returns one tax component for a single line, derived at render
// time only for the printable breakdown.
func (inv *Invoice) ItemTax(it InvoiceItem) float64 {
	return it.Total * inv.TaxRate / 200
}

// QuantityTotal sums the quantities for the goods-table total row.
func (inv *Invoice) QuantityTotal() float64 {
	var q float64
	for _, it := range inv.Items {
		q += it.Quantity
	}
	return q
}

// HSNGroup accumulates the statutory tax summary for one classification
// code. Items without a code share the "---" bucket.
type HSNGroup struct {
	HSN          string
	TaxableValue float64
	CGST         float64
	SGST         float64
	Rate         float64 // full invoice rate; each component is Rate/2
}

// HSNSummary groups items by classification code in order of first
// appearance. Every item lands in exactly one group, so the group taxable
// values always sum to the subtotal.
func (inv *Invoice) HSNSummary() []HSNGroup {
	index := make(map[string]int)
	var groups []HSNGroup
	for _, it := range inv.Items {
		hsn := it.HSN
		if hsn == "" {
			hsn = "---"
		}
		i, ok := index[hsn]
		if !ok {
			i = len(groups)
			index[hsn] = i
			groups = append(groups, HSNGroup{HSN: hsn, Rate: inv.TaxRate})
		}
		groups[i].TaxableValue += it.Total
		groups[i].CGST += inv.ItemTax(it)
		groups[i].SGST += inv.ItemTax(it)
	}
	return groups
}
