package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/andy/gstbill/internal/domain"
	"github.com/andy/gstbill/internal/supabase"
)

// ClientRepo is a PostgREST implementation of ClientRepository
type ClientRepo struct {
	store *supabase.Client
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(store *supabase.Client) *ClientRepo {
	return &ClientRepo{store: store}
}

// Create inserts a new client and fills in the server-assigned id
func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}

	var rows []clientRow
	if err := r.store.Insert(ctx, "clients", []clientRow{clientToRow(client)}, &rows); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	if len(rows) > 0 {
		*client = *rows[0].toDomain()
	}
	return nil
}

// GetByName retrieves a client by exact name match, or nil when absent.
// The match is case sensitive, same as the save-time upsert check.
func (r *ClientRepo) GetByName(ctx context.Context, userID, name string) (*domain.Client, error) {
	query := "user_id=eq." + url.QueryEscape(userID) + "&name=eq." + url.QueryEscape(name) + "&limit=1"

	var rows []clientRow
	if err := r.store.Select(ctx, "clients", query, &rows); err != nil {
		return nil, fmt.Errorf("failed to look up client: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(), nil
}

// List retrieves every client for the user, newest first
func (r *ClientRepo) List(ctx context.Context, userID string) ([]*domain.Client, error) {
	query := "user_id=eq." + url.QueryEscape(userID) + "&order=created_at.desc"

	var rows []clientRow
	if err := r.store.Select(ctx, "clients", query, &rows); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, row.toDomain())
	}
	return clients, nil
}

// Update overwrites an existing client's details
func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}
	if client.ID == "" {
		return fmt.Errorf("client has no id")
	}

	row := clientToRow(client)
	row.ID = ""
	if err := r.store.Update(ctx, "clients", "id=eq."+url.QueryEscape(client.ID), row, nil); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// Delete removes a client permanently
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, "clients", "id=eq."+url.QueryEscape(id)); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
