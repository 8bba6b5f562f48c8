package invoice

import (
	"context"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/project"
)

// Repository provides persistence for invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, opts ListOptions) ([]Invoice, int, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, id string) error
	NumberExists(ctx context.Context, number string) (bool, error)
	ListNumbersByStem(ctx context.Context, clientID, stem string) ([]string, error)
}

// Clients resolves billed clients and records contact activity.
type Clients interface {
	Get(ctx context.Context, id string) (*client.Client, error)
	TouchLastContact(ctx context.Context, id string, at time.Time) error
}

// Projects resolves the projects referenced by line items.
type Projects interface {
	ListByIDs(ctx context.Context, ids []string) ([]project.Project, error)
}
