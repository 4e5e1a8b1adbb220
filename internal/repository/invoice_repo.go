package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/andy/gstbill/internal/domain"
	"github.com/andy/gstbill/internal/supabase"
)

// InvoiceRepo is a PostgREST implementation of InvoiceRepository
type InvoiceRepo struct {
	store *supabase.Client
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(store *supabase.Client) *InvoiceRepo {
	return &InvoiceRepo{store: store}
}

// Create inserts a new invoice and fills in the server-assigned id
func (r *InvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}

	row, err := invoiceToRow(invoice)
	if err != nil {
		return fmt.Errorf("failed to encode invoice: %w", err)
	}
	// The server assigns the row id; the draft id stays inside the snapshot.
	row.ID = ""

	var rows []invoiceRow
	if err := r.store.Insert(ctx, "invoices", []invoiceRow{row}, &rows); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	if len(rows) > 0 {
		invoice.ID = rows[0].ID
		invoice.CreatedAt = rows[0].CreatedAt
	}
	return nil
}

// List retrieves every invoice for the user with the joined client record,
// newest first
func (r *InvoiceRepo) List(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	query := "select=*,client:clients(*)&user_id=eq." + url.QueryEscape(userID) + "&order=created_at.desc"

	var rows []invoiceRow
	if err := r.store.Select(ctx, "invoices", query, &rows); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*domain.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode invoice %s: %w", row.ID, err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// Update replaces the snapshot and denormalized columns of an invoice
func (r *InvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}
	if invoice.ID == "" {
		return fmt.Errorf("invoice has no id")
	}

	row, err := invoiceToRow(invoice)
	if err != nil {
		return fmt.Errorf("failed to encode invoice: %w", err)
	}
	row.ID = ""

	if err := r.store.Update(ctx, "invoices", "id=eq."+url.QueryEscape(invoice.ID), row, nil); err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

// UpdateStatus changes only the denormalized status column. The snapshot's
// copy is refreshed on the next full save.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	body := map[string]string{"status": string(status)}
	if err := r.store.Update(ctx, "invoices", "id=eq."+url.QueryEscape(id), body, nil); err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	return nil
}

// Delete removes an invoice permanently
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, "invoices", "id=eq."+url.QueryEscape(id)); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}
