package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/opsdesk/internal/domain/validate"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// Service handles client operations.
type Service struct {
	repo     Repository
	projects ProjectCounter
	invoices InvoiceCounter
	logger   *slog.Logger
}

// NewService creates a new client service.
func NewService(repo Repository, projects ProjectCounter, invoices InvoiceCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, invoices: invoices, logger: logger}
}

// SubProjectInput describes one embedded sub-project in a write request.
type SubProjectInput struct {
	ID    string
	Name  string
	Value float64
}

// CreateRequest defines client creation inputs.
type CreateRequest struct {
	Name        string
	Email       string
	Company     string
	SubProjects []SubProjectInput
	Status      Status
	LastContact *time.Time
}

// UpdateRequest defines client update inputs. The full sub-project list is
// replaced on every update, matching PUT semantics. Version, when non-zero,
// is the version the caller read before editing.
type UpdateRequest struct {
	Name        string
	Email       string
	Company     string
	SubProjects []SubProjectInput
	Status      Status
	LastContact *time.Time
	Version     int64
}

// Create validates and persists a new client.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	status := req.Status
	if status == "" {
		status = StatusActive
	}
	if err := validateFields(req.Name, req.Email, req.Company, req.SubProjects, status); err != nil {
		return nil, err
	}

	now := time.Now()
	lastContact := now
	if req.LastContact != nil {
		lastContact = *req.LastContact
	}

	c := &Client{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Company:     req.Company,
		SubProjects: buildSubProjects(req.SubProjects),
		Status:      status,
		LastContact: lastContact,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return c, nil
}

// Get fetches a client by ID.
func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return c, nil
}

// List returns all clients.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// Update replaces a client's fields. The write is conditional on the version
// the caller read (or the current version when none is supplied), so a
// concurrent edit of the sub-project list surfaces as ErrStaleVersion instead
// of being silently overwritten.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	if err := validateFields(req.Name, req.Email, req.Company, req.SubProjects, status); err != nil {
		return nil, err
	}

	expected := req.Version
	if expected == 0 {
		expected = cur.Version
	}

	updated := *cur
	updated.Name = req.Name
	updated.Email = strings.ToLower(strings.TrimSpace(req.Email))
	updated.Company = req.Company
	updated.SubProjects = buildSubProjects(req.SubProjects)
	updated.Status = status
	if req.LastContact != nil {
		updated.LastContact = *req.LastContact
	}
	updated.Version = expected + 1
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated, expected); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrStaleVersion
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrClientNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("updating client: %w", err)
	}

	return &updated, nil
}

// Delete removes a client. Deletion is blocked while any project or invoice
// still references the client.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	projectCount, err := s.projects.CountByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("counting dependent projects: %w", err)
	}
	invoiceCount, err := s.invoices.CountByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("counting dependent invoices: %w", err)
	}
	if projectCount > 0 || invoiceCount > 0 {
		return ErrClientInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return nil
}

// TouchLastContact stamps the client's lastContact timestamp. The version is
// not bumped: touching is not an edit of the membership lists the version
// guards.
func (s *Service) TouchLastContact(ctx context.Context, id string, at time.Time) error {
	if err := s.repo.TouchLastContact(ctx, id, at); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("touching last contact: %w", err)
	}
	return nil
}

func validateFields(name, email, company string, subProjects []SubProjectInput, status Status) error {
	v := &validate.Error{}
	if strings.TrimSpace(name) == "" {
		v.Add("name", "name is required")
	}
	if strings.TrimSpace(email) == "" {
		v.Add("email", "email is required")
	} else if !validate.ValidEmail(email) {
		v.Add("email", "not a valid email address")
	}
	if strings.TrimSpace(company) == "" {
		v.Add("company", "company is required")
	}
	if len(subProjects) == 0 {
		v.Add("projects", "at least one sub-project is required")
	}
	for i, sp := range subProjects {
		if strings.TrimSpace(sp.Name) == "" {
			v.Add(fmt.Sprintf("projects[%d].name", i), "sub-project name is required")
		}
		if sp.Value < 0 {
			v.Add(fmt.Sprintf("projects[%d].value", i), "sub-project value cannot be negative")
		}
	}
	if !ValidStatus(status) {
		v.Add("status", "status must be active or inactive")
	}
	return v.Err()
}

func buildSubProjects(inputs []SubProjectInput) []SubProject {
	out := make([]SubProject, len(inputs))
	for i, sp := range inputs {
		id := sp.ID
		if id == "" {
			id = uuid.NewString()
		}
		out[i] = SubProject{ID: id, Name: strings.TrimSpace(sp.Name), Value: sp.Value}
	}
	return out
}
