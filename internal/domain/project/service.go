package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/opsdesk/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo     Repository
	clients  ClientDirectory
	users    UserDirectory
	tasks    TaskCounter
	invoices InvoiceCounter
	logger   *slog.Logger
}

// NewService creates a new project service.
func NewService(
	repo Repository,
	clients ClientDirectory,
	users UserDirectory,
	tasks TaskCounter,
	invoices InvoiceCounter,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		clients:  clients,
		users:    users,
		tasks:    tasks,
		invoices: invoices,
		logger:   logger,
	}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name          string
	Description   string
	Priority      Priority
	ClientID      string
	SubProjectIDs []string
	Team          []string
	Status        Status
	StartDate     *time.Time
	Deadline      time.Time
	Progress      int
	CreatedBy     string
}

// UpdateRequest defines project update inputs. Version, when non-zero, is the
// version the caller read before editing.
type UpdateRequest struct {
	Name          string
	Description   string
	Priority      Priority
	ClientID      string
	SubProjectIDs []string
	Team          []string
	Status        Status
	StartDate     *time.Time
	Deadline      time.Time
	Progress      int
	Version       int64
}

// Create validates and persists a new project. Sub-project ids are checked
// against the owning client's current list and the team against Active
// users; every offending id is reported, not just the first.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	now := time.Now()
	start := now
	if req.StartDate != nil {
		start = *req.StartDate
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	status := req.Status
	if status == "" {
		status = StatusActive
	}

	if err := validateFields(req.Name, priority, status, start, req.Deadline, req.Progress); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.ClientID, req.SubProjectIDs, req.Team); err != nil {
		return nil, err
	}

	p := &Project{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Priority:      priority,
		ClientID:      req.ClientID,
		SubProjectIDs: req.SubProjectIDs,
		Team:          req.Team,
		Status:        status,
		StartDate:     start,
		Deadline:      req.Deadline,
		Progress:      req.Progress,
		CreatedBy:     req.CreatedBy,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return p, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// List returns all projects.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// Update replaces a project's fields. Cross-entity references are
// re-validated against freshly loaded entities on every update, never skipped
// based on which fields changed. The write is conditional on the version the
// caller read.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Project, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	start := cur.StartDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	priority := req.Priority
	if priority == "" {
		priority = cur.Priority
	}
	status := req.Status
	if status == "" {
		status = cur.Status
	}
	clientID := req.ClientID
	if clientID == "" {
		clientID = cur.ClientID
	}

	if err := validateFields(req.Name, priority, status, start, req.Deadline, req.Progress); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, clientID, req.SubProjectIDs, req.Team); err != nil {
		return nil, err
	}

	expected := req.Version
	if expected == 0 {
		expected = cur.Version
	}

	updated := *cur
	updated.Name = req.Name
	updated.Description = req.Description
	updated.Priority = priority
	updated.ClientID = clientID
	updated.SubProjectIDs = req.SubProjectIDs
	updated.Team = req.Team
	updated.Status = status
	updated.StartDate = start
	updated.Deadline = req.Deadline
	updated.Progress = req.Progress
	updated.Version = expected + 1
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated, expected); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrStaleVersion
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return &updated, nil
}

// Delete removes a project. Deletion is blocked while tasks or invoices
// reference it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	taskCount, err := s.tasks.CountByProject(ctx, id)
	if err != nil {
		return fmt.Errorf("counting dependent tasks: %w", err)
	}
	invoiceCount, err := s.invoices.CountByProject(ctx, id)
	if err != nil {
		return fmt.Errorf("counting dependent invoices: %w", err)
	}
	if taskCount > 0 || invoiceCount > 0 {
		return ErrProjectInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (s *Service) checkReferences(ctx context.Context, clientID string, subProjectIDs, team []string) error {
	owner, err := s.clients.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("loading client: %w", err)
	}
	if err := CheckSubProjects(owner, subProjectIDs); err != nil {
		return err
	}

	if len(team) > 0 {
		users, err := s.users.ListByIDs(ctx, team)
		if err != nil {
			return fmt.Errorf("resolving team members: %w", err)
		}
		if err := CheckTeamMembers(team, users); err != nil {
			return err
		}
	}
	return nil
}
