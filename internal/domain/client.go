package domain

import (
	"errors"
	"strings"
	"time"
)

// Client is a billing party. The same shape doubles as the consignee
// (ship-to) block on an invoice.
type Client struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Address   string
	Phone     string
	GSTIN     string
	StateName string
	StateCode string
	CreatedAt time.Time
}

// NewClient creates a new client with required fields
func NewClient(name string) *Client {
	return &Client{
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	return nil
}

// IsEmpty reports whether every form-fillable field is blank. An empty
// consignee on an invoice collapses to nil so the ship-to block falls
// back to the buyer.
func (c *Client) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Name == "" && c.Email == "" && c.Address == "" && c.Phone == "" &&
		c.GSTIN == "" && c.StateName == "" && c.StateCode == ""
}

// Copy returns an independent copy, used when the consignee defaults to
// the buyer's details.
func (c *Client) Copy() *Client {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}
