//go:build ignore

// Excluded from the build: this file imports every domain package while the
// domain packages import this package for its sentinel errors, which is an
// import cycle. Nothing in the module references these interfaces; the
// domain-local interfaces (e.g. client.Repository) are the ones in use.

package repository

import (
	"context"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/company"
	"github.com/opsdesk/opsdesk/internal/domain/contact"
	"github.com/opsdesk/opsdesk/internal/domain/invoice"
	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/domain/task"
)

// ClientRepository manages client persistence
type ClientRepository interface {
	Create(ctx context.Context, c *client.Client) error
	Get(ctx context.Context, id string) (*client.Client, error)
	List(ctx context.Context) ([]client.Client, error)
	Update(ctx context.Context, c *client.Client, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
	TouchLastContact(ctx context.Context, id string, at time.Time) error
}

// ProjectRepository manages project persistence
type ProjectRepository interface {
	Create(ctx context.Context, p *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	ListByIDs(ctx context.Context, ids []string) ([]project.Project, error)
	Update(ctx context.Context, p *project.Project, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
	CountByClient(ctx context.Context, clientID string) (int, error)
	CountByTeamMember(ctx context.Context, userID string) (int, error)
}

// TaskRepository manages task persistence
type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	Get(ctx context.Context, id string) (*task.Task, error)
	List(ctx context.Context, opts task.ListOptions) ([]task.Task, error)
	Update(ctx context.Context, t *task.Task) error
	Delete(ctx context.Context, id string) error
	CountByProject(ctx context.Context, projectID string) (int, error)
	CountByAssignee(ctx context.Context, userID string) (int, error)
}

// InvoiceRepository manages invoice persistence
type InvoiceRepository interface {
	Create(ctx context.Context, inv *invoice.Invoice) error
	Get(ctx context.Context, id string) (*invoice.Invoice, error)
	List(ctx context.Context, opts invoice.ListOptions) ([]invoice.Invoice, int, error)
	Update(ctx context.Context, inv *invoice.Invoice) error
	Delete(ctx context.Context, id string) error
	NumberExists(ctx context.Context, number string) (bool, error)
	ListNumbersByStem(ctx context.Context, clientID, stem string) ([]string, error)
	CountByClient(ctx context.Context, clientID string) (int, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
}

// UserRepository manages user persistence
type UserRepository interface {
	Create(ctx context.Context, u *org.User) error
	Get(ctx context.Context, id string) (*org.User, error)
	GetByEmail(ctx context.Context, email string) (*org.User, error)
	List(ctx context.Context) ([]org.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]org.User, error)
	Update(ctx context.Context, u *org.User) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, roleID string) (int, error)
	CountByDepartment(ctx context.Context, departmentID string) (int, error)
}

// RoleRepository manages role persistence
type RoleRepository interface {
	Create(ctx context.Context, r *org.Role) error
	Get(ctx context.Context, id string) (*org.Role, error)
	GetByName(ctx context.Context, name string) (*org.Role, error)
	List(ctx context.Context) ([]org.Role, error)
	Update(ctx context.Context, r *org.Role) error
	Delete(ctx context.Context, id string) error
	CountByDepartment(ctx context.Context, departmentID string) (int, error)
}

// DepartmentRepository manages department persistence
type DepartmentRepository interface {
	Create(ctx context.Context, d *org.Department) error
	Get(ctx context.Context, id string) (*org.Department, error)
	GetByName(ctx context.Context, name string) (*org.Department, error)
	List(ctx context.Context) ([]org.Department, error)
	Update(ctx context.Context, d *org.Department) error
	Delete(ctx context.Context, id string) error
}

// ContactRepository manages contact persistence
type ContactRepository interface {
	Create(ctx context.Context, c *contact.Contact) error
	Get(ctx context.Context, id string) (*contact.Contact, error)
	GetByEmail(ctx context.Context, email string) (*contact.Contact, error)
	List(ctx context.Context) ([]contact.Contact, error)
	Update(ctx context.Context, c *contact.Contact) error
	Delete(ctx context.Context, id string) error
}

// CompanyRepository manages the singleton company record
type CompanyRepository interface {
	Create(ctx context.Context, c *company.Company) error
	Get(ctx context.Context) (*company.Company, error)
	Update(ctx context.Context, c *company.Company) error
}

// TokenRepository manages API token persistence. Tokens are stored hashed.
type TokenRepository interface {
	Insert(ctx context.Context, tokenHash, userID, description string) error
	LookupUser(ctx context.Context, tokenHash string) (string, error)
	TouchLastUsed(ctx context.Context, tokenHash string, at time.Time) error
}
