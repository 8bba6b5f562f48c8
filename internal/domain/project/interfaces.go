package project

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/org"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, p *Project, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
}

// ClientDirectory resolves client references.
type ClientDirectory interface {
	Get(ctx context.Context, id string) (*client.Client, error)
}

// UserDirectory resolves user references for team validation.
type UserDirectory interface {
	ListByIDs(ctx context.Context, ids []string) ([]org.User, error)
}

// TaskCounter reports how many tasks reference a project.
type TaskCounter interface {
	CountByProject(ctx context.Context, projectID string) (int, error)
}

// InvoiceCounter reports how many invoices carry a line item for a project.
type InvoiceCounter interface {
	CountByProject(ctx context.Context, projectID string) (int, error)
}
