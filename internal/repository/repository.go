package repository

import (
	"context"

	"github.com/andy/gstbill/internal/domain"
)

// ClientRepository manages client persistence in the remote store
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByName(ctx context.Context, userID, name string) (*domain.Client, error)
	List(ctx context.Context, userID string) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
}

// InvoiceRepository manages invoice persistence in the remote store
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	List(ctx context.Context, userID string) ([]*domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error
	Delete(ctx context.Context, id string) error
}
