// Package mocks provides hand-written testify mocks for the repository
// interfaces.
package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/company"
	"github.com/opsdesk/opsdesk/internal/domain/contact"
	"github.com/opsdesk/opsdesk/internal/domain/invoice"
	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/domain/task"
)

// ClientRepository is a mock for repository.ClientRepository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*client.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]client.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Update(ctx context.Context, c *client.Client, expectedVersion int64) error {
	args := m.Called(ctx, c, expectedVersion)
	return args.Error(0)
}

func (m *ClientRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ClientRepository) TouchLastContact(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*project.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListByIDs(ctx context.Context, ids []string) ([]project.Project, error) {
	args := m.Called(ctx, ids)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, p *project.Project, expectedVersion int64) error {
	args := m.Called(ctx, p, expectedVersion)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *ProjectRepository) CountByTeamMember(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// TaskRepository is a mock for repository.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context, opts task.ListOptions) ([]task.Task, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TaskRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *TaskRepository) CountByAssignee(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// InvoiceRepository is a mock for repository.InvoiceRepository.
type InvoiceRepository struct {
	mock.Mock
}

func (m *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *InvoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if inv, ok := args.Get(0).(*invoice.Invoice); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InvoiceRepository) List(ctx context.Context, opts invoice.ListOptions) ([]invoice.Invoice, int, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]invoice.Invoice); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *InvoiceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *InvoiceRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *InvoiceRepository) ListNumbersByStem(ctx context.Context, clientID, stem string) ([]string, error) {
	args := m.Called(ctx, clientID, stem)
	if list, ok := args.Get(0).([]string); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InvoiceRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *InvoiceRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *org.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*org.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*org.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*org.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*org.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]org.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]org.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]org.User, error) {
	args := m.Called(ctx, ids)
	if list, ok := args.Get(0).([]org.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *org.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) CountByRole(ctx context.Context, roleID string) (int, error) {
	args := m.Called(ctx, roleID)
	return args.Int(0), args.Error(1)
}

func (m *UserRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	args := m.Called(ctx, departmentID)
	return args.Int(0), args.Error(1)
}

// RoleRepository is a mock for repository.RoleRepository.
type RoleRepository struct {
	mock.Mock
}

func (m *RoleRepository) Create(ctx context.Context, r *org.Role) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RoleRepository) Get(ctx context.Context, id string) (*org.Role, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*org.Role); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RoleRepository) GetByName(ctx context.Context, name string) (*org.Role, error) {
	args := m.Called(ctx, name)
	if r, ok := args.Get(0).(*org.Role); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RoleRepository) List(ctx context.Context) ([]org.Role, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]org.Role); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RoleRepository) Update(ctx context.Context, r *org.Role) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RoleRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RoleRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	args := m.Called(ctx, departmentID)
	return args.Int(0), args.Error(1)
}

// DepartmentRepository is a mock for repository.DepartmentRepository.
type DepartmentRepository struct {
	mock.Mock
}

func (m *DepartmentRepository) Create(ctx context.Context, d *org.Department) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DepartmentRepository) Get(ctx context.Context, id string) (*org.Department, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*org.Department); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentRepository) GetByName(ctx context.Context, name string) (*org.Department, error) {
	args := m.Called(ctx, name)
	if d, ok := args.Get(0).(*org.Department); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentRepository) List(ctx context.Context) ([]org.Department, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]org.Department); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentRepository) Update(ctx context.Context, d *org.Department) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DepartmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ContactRepository is a mock for repository.ContactRepository.
type ContactRepository struct {
	mock.Mock
}

func (m *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContactRepository) Get(ctx context.Context, id string) (*contact.Contact, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*contact.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) GetByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	args := m.Called(ctx, email)
	if c, ok := args.Get(0).(*contact.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) List(ctx context.Context) ([]contact.Contact, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]contact.Contact); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) Update(ctx context.Context, c *contact.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CompanyRepository is a mock for repository.CompanyRepository.
type CompanyRepository struct {
	mock.Mock
}

func (m *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CompanyRepository) Get(ctx context.Context) (*company.Company, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).(*company.Company); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// FileStore is a mock for the task attachment file store.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Save(ctx context.Context, key string, r io.Reader) (string, int64, error) {
	args := m.Called(ctx, key, r)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *FileStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
