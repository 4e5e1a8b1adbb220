package service

import (
	"context"
	"errors"

	"github.com/andy/gstbill/internal/domain"
	"github.com/andy/gstbill/internal/repository"
)

var ErrNotSignedIn = errors.New("not signed in")

// InvoiceService manages the invoice lifecycle against the remote store
type InvoiceService interface {
	// Save persists the invoice, creating or updating the buyer record first.
	// A buyer whose name exactly matches an existing client reuses that
	// client row; otherwise a new client is created.
	Save(ctx context.Context, userID string, invoice *domain.Invoice) error

	// ListInvoices retrieves every invoice for the user, newest first
	ListInvoices(ctx context.Context, userID string) ([]*domain.Invoice, error)

	// SetStatus updates only the status column
	SetStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) error

	// DeleteInvoice removes an invoice permanently
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// ListClients retrieves every client for the user, newest first
	ListClients(ctx context.Context, userID string) ([]*domain.Client, error)

	// SaveClient creates or updates a client directly
	SaveClient(ctx context.Context, userID string, client *domain.Client) error

	// DeleteClient removes a client permanently; existing invoices keep
	// their embedded snapshot of the client's details
	DeleteClient(ctx context.Context, clientID string) error
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
	}
}

func (s *invoiceService) Save(ctx context.Context, userID string, invoice *domain.Invoice) error {
	if userID == "" {
		return ErrNotSignedIn
	}
	if err := invoice.Validate(); err != nil {
		return err
	}

	client, err := s.upsertClient(ctx, userID, &invoice.Client)
	if err != nil {
		return err
	}
	invoice.Client = *client
	invoice.ClientID = client.ID
	invoice.UserID = userID
	invoice.TotalAmount = invoice.Totals().GrandTotal

	// An invoice that has already been to the server keeps its row;
	// everything else is an insert, even if the draft carries a local id.
	if invoice.CreatedAt.IsZero() {
		return s.invoiceRepo.Create(ctx, invoice)
	}
	return s.invoiceRepo.Update(ctx, invoice)
}

// upsertClient matches on the exact name within the user's clients. A hit
// refreshes that row with the details typed on the invoice; a miss creates
// a new client.
func (s *invoiceService) upsertClient(ctx context.Context, userID string, c *domain.Client) (*domain.Client, error) {
	existing, err := s.clientRepo.GetByName(ctx, userID, c.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		updated := *c
		updated.ID = existing.ID
		updated.UserID = userID
		updated.CreatedAt = existing.CreatedAt
		if err := s.clientRepo.Update(ctx, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	}

	created := *c
	created.ID = ""
	created.UserID = userID
	if err := s.clientRepo.Create(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	if userID == "" {
		return nil, ErrNotSignedIn
	}
	return s.invoiceRepo.List(ctx, userID)
}

func (s *invoiceService) SetStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) error {
	return s.invoiceRepo.UpdateStatus(ctx, invoiceID, status)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return s.invoiceRepo.Delete(ctx, invoiceID)
}

func (s *invoiceService) ListClients(ctx context.Context, userID string) ([]*domain.Client, error) {
	if userID == "" {
		return nil, ErrNotSignedIn
	}
	return s.clientRepo.List(ctx, userID)
}

func (s *invoiceService) SaveClient(ctx context.Context, userID string, client *domain.Client) error {
	if userID == "" {
		return ErrNotSignedIn
	}
	if err := client.Validate(); err != nil {
		return err
	}
	client.UserID = userID
	if client.ID == "" {
		return s.clientRepo.Create(ctx, client)
	}
	return s.clientRepo.Update(ctx, client)
}

func (s *invoiceService) DeleteClient(ctx context.Context, clientID string) error {
	return s.clientRepo.Delete(ctx, clientID)
}
