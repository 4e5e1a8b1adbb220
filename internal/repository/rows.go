package repository

import (
	"encoding/json"
	"time"

	"github.com/andy/gstbill/internal/domain"
)

// clientRow mirrors the clients table.
type clientRow struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	GSTIN     string    `json:"gstin"`
	StateName string    `json:"state_name"`
	StateCode string    `json:"state_code"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func clientToRow(c *domain.Client) clientRow {
	return clientRow{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		Phone:     c.Phone,
		GSTIN:     c.GSTIN,
		StateName: c.StateName,
		StateCode: c.StateCode,
	}
}

func (r clientRow) toDomain() *domain.Client {
	return &domain.Client{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Email:     r.Email,
		Address:   r.Address,
		Phone:     r.Phone,
		GSTIN:     r.GSTIN,
		StateName: r.StateName,
		StateCode: r.StateCode,
		CreatedAt: r.CreatedAt,
	}
}

// invoiceRow mirrors the invoices table. The full document lives in the
// invoice_data JSON column; total_amount and status are denormalized beside
// it so lists and dashboards never parse the snapshot.
type invoiceRow struct {
	ID          string          `json:"id,omitempty"`
	UserID      string          `json:"user_id"`
	ClientID    string          `json:"client_id"`
	TotalAmount float64         `json:"total_amount"`
	Status      string          `json:"status"`
	InvoiceData json.RawMessage `json:"invoice_data"`
	Client      *clientRow      `json:"client,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}

func invoiceToRow(inv *domain.Invoice) (invoiceRow, error) {
	data, err := json.Marshal(inv)
	if err != nil {
		return invoiceRow{}, err
	}
	return invoiceRow{
		ID:          inv.ID,
		UserID:      inv.UserID,
		ClientID:    inv.ClientID,
		TotalAmount: inv.Totals().GrandTotal,
		Status:      string(inv.Status),
		InvoiceData: data,
	}, nil
}

// toDomain rebuilds the invoice from its snapshot. Row-level columns win
// over the snapshot for identity, status and the joined client record.
func (r invoiceRow) toDomain() (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := json.Unmarshal(r.InvoiceData, &inv); err != nil {
		return nil, err
	}
	inv.ID = r.ID
	inv.UserID = r.UserID
	inv.ClientID = r.ClientID
	inv.Status = domain.InvoiceStatus(r.Status)
	inv.TotalAmount = r.TotalAmount
	inv.CreatedAt = r.CreatedAt
	if r.Client != nil {
		inv.Client = *r.Client.toDomain()
	}
	return &inv, nil
}
