package client

import (
	"context"
	"time"
)

// Repository provides persistence for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, c *Client, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
	TouchLastContact(ctx context.Context, id string, at time.Time) error
}

// ProjectCounter reports how many projects reference a client.
type ProjectCounter interface {
	CountByClient(ctx context.Context, clientID string) (int, error)
}

// InvoiceCounter reports how many invoices reference a client.
type InvoiceCounter interface {
	CountByClient(ctx context.Context, clientID string) (int, error)
}
