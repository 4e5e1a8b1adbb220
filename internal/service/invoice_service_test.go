package service

import (
	"context"
	"testing"
	"time"

	"github.com/andy/gstbill/internal/domain"
)

// mock implementations
type mockClientRepo struct {
	byName  map[string]*domain.Client
	created []*domain.Client
	updated []*domain.Client
	deleted []string
}

func (m *mockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	client.ID = "new-client-id"
	m.created = append(m.created, client)
	return nil
}
func (m *mockClientRepo) GetByName(ctx context.Context, userID, name string) (*domain.Client, error) {
	return m.byName[name], nil
}
func (m *mockClientRepo) List(ctx context.Context, userID string) ([]*domain.Client, error) {
	return nil, nil
}
func (m *mockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	m.updated = append(m.updated, client)
	return nil
}
func (m *mockClientRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockInvoiceRepo struct {
	created  []*domain.Invoice
	updated  []*domain.Invoice
	statuses map[string]domain.InvoiceStatus
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = "new-invoice-id"
	m.created = append(m.created, invoice)
	return nil
}
func (m *mockInvoiceRepo) List(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	return nil, nil
}
func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	m.updated = append(m.updated, invoice)
	return nil
}
func (m *mockInvoiceRepo) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	if m.statuses == nil {
		m.statuses = make(map[string]domain.InvoiceStatus)
	}
	m.statuses[id] = status
	return nil
}
func (m *mockInvoiceRepo) Delete(ctx context.Context, id string) error { return nil }

func draftInvoice(buyer string) *domain.Invoice {
	inv := domain.NewInvoice(domain.BusinessDetails{})
	inv.Client.Name = buyer
	inv.Items = []domain.InvoiceItem{{ID: "i1", Description: "Widget", Quantity: 2, UnitPrice: 500, Total: 1000}}
	inv.TaxRate = 18
	return inv
}

func TestSaveCreatesClientWhenNameIsNew(t *testing.T) {
	clients := &mockClientRepo{byName: map[string]*domain.Client{}}
	invoices := &mockInvoiceRepo{}
	svc := NewInvoiceService(invoices, clients)

	inv := draftInvoice("Fresh Traders")
	if err := svc.Save(context.Background(), "user-1", inv); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(clients.created) != 1 {
		t.Fatalf("created %d clients, want 1", len(clients.created))
	}
	if len(clients.updated) != 0 {
		t.Errorf("updated %d clients, want 0", len(clients.updated))
	}
	if inv.ClientID != "new-client-id" {
		t.Errorf("ClientID = %q, want the created client's id", inv.ClientID)
	}
	if len(invoices.created) != 1 {
		t.Fatalf("created %d invoices, want 1", len(invoices.created))
	}
	if inv.TotalAmount != 1180 {
		t.Errorf("TotalAmount = %v, want 1180", inv.TotalAmount)
	}
}

func TestSaveReusesClientOnExactNameMatch(t *testing.T) {
	existing := &domain.Client{ID: "c9", UserID: "user-1", Name: "Acme Traders", Email: "old@acme.in"}
	clients := &mockClientRepo{byName: map[string]*domain.Client{"Acme Traders": existing}}
	invoices := &mockInvoiceRepo{}
	svc := NewInvoiceService(invoices, clients)

	inv := draftInvoice("Acme Traders")
	inv.Client.Email = "new@acme.in"
	if err := svc.Save(context.Background(), "user-1", inv); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(clients.created) != 0 {
		t.Errorf("created %d clients, want 0", len(clients.created))
	}
	if len(clients.updated) != 1 {
		t.Fatalf("updated %d clients, want 1", len(clients.updated))
	}
	if clients.updated[0].ID != "c9" {
		t.Errorf("updated client id = %q, want c9", clients.updated[0].ID)
	}
	if clients.updated[0].Email != "new@acme.in" {
		t.Errorf("updated client email = %q, invoice details must win", clients.updated[0].Email)
	}
	if inv.ClientID != "c9" {
		t.Errorf("ClientID = %q, want c9", inv.ClientID)
	}
}

func TestSaveCaseSensitiveNameMismatchCreatesNewClient(t *testing.T) {
	existing := &domain.Client{ID: "c9", Name: "Acme Traders"}
	clients := &mockClientRepo{byName: map[string]*domain.Client{"Acme Traders": existing}}
	invoices := &mockInvoiceRepo{}
	svc := NewInvoiceService(invoices, clients)

	inv := draftInvoice("ACME TRADERS")
	if err := svc.Save(context.Background(), "user-1", inv); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(clients.created) != 1 {
		t.Errorf("created %d clients, want 1 for a differently-cased name", len(clients.created))
	}
}

func TestSaveUpdatesExistingInvoice(t *testing.T) {
	clients := &mockClientRepo{byName: map[string]*domain.Client{}}
	invoices := &mockInvoiceRepo{}
	svc := NewInvoiceService(invoices, clients)

	inv := draftInvoice("Acme Traders")
	inv.ID = "inv-7"
	inv.CreatedAt = time.Now() // already persisted
	if err := svc.Save(context.Background(), "user-1", inv); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(invoices.created) != 0 || len(invoices.updated) != 1 {
		t.Errorf("created=%d updated=%d, want update path", len(invoices.created), len(invoices.updated))
	}
}

func TestSaveRequiresSignIn(t *testing.T) {
	svc := NewInvoiceService(&mockInvoiceRepo{}, &mockClientRepo{})
	if err := svc.Save(context.Background(), "", draftInvoice("Acme")); err != ErrNotSignedIn {
		t.Errorf("err = %v, want ErrNotSignedIn", err)
	}
}

func TestSaveRejectsInvalidInvoice(t *testing.T) {
	svc := NewInvoiceService(&mockInvoiceRepo{}, &mockClientRepo{byName: map[string]*domain.Client{}})
	inv := draftInvoice("")
	if err := svc.Save(context.Background(), "user-1", inv); err == nil {
		t.Error("expected validation error for missing buyer name")
	}
}

func TestSetStatus(t *testing.T) {
	invoices := &mockInvoiceRepo{}
	svc := NewInvoiceService(invoices, &mockClientRepo{})
	if err := svc.SetStatus(context.Background(), "inv-1", domain.StatusFinished); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if invoices.statuses["inv-1"] != domain.StatusFinished {
		t.Errorf("status = %s, want Finished", invoices.statuses["inv-1"])
	}
}
