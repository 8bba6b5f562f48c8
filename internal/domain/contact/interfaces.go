package contact

import "context"

// Repository provides persistence for contacts.
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	Get(ctx context.Context, id string) (*Contact, error)
	GetByEmail(ctx context.Context, email string) (*Contact, error)
	List(ctx context.Context) ([]Contact, error)
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, id string) error
}
