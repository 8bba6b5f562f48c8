package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/opsdesk/internal/domain/validate"
	"github.com/opsdesk/opsdesk/internal/repository"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-().]{7,20}$`)

// Service handles contact operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new contact service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines contact creation inputs.
type CreateRequest struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Position string
	Status   Status
	Tags     []string
	Starred  bool
}

// UpdateRequest defines contact update inputs.
type UpdateRequest struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Position string
	Status   Status
	Tags     []string
	Starred  bool
}

// Create validates and persists a new contact. Email is normalized to lower
// case and must be unique; lastContact is stamped at creation.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Contact, error) {
	status := req.Status
	if status == "" {
		status = StatusActive
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateFields(req.Name, email, req.Phone, req.Company, req.Position, status, req.Tags); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Contact{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       email,
		Phone:       req.Phone,
		Company:     req.Company,
		Position:    req.Position,
		Status:      status,
		Tags:        req.Tags,
		Starred:     req.Starred,
		LastContact: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating contact: %w", err)
	}
	return c, nil
}

// Get fetches a contact by ID.
func (s *Service) Get(ctx context.Context, id string) (*Contact, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("getting contact: %w", err)
	}
	return c, nil
}

// List returns all contacts.
func (s *Service) List(ctx context.Context) ([]Contact, error) {
	return s.repo.List(ctx)
}

// Update replaces a contact's fields. An email change is checked for
// uniqueness against other contacts before the write.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Contact, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = cur.Status
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateFields(req.Name, email, req.Phone, req.Company, req.Position, status, req.Tags); err != nil {
		return nil, err
	}

	if email != cur.Email {
		if other, err := s.repo.GetByEmail(ctx, email); err == nil && other.ID != id {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("checking contact email: %w", err)
		}
	}

	updated := *cur
	updated.Name = req.Name
	updated.Email = email
	updated.Phone = req.Phone
	updated.Company = req.Company
	updated.Position = req.Position
	updated.Status = status
	updated.Tags = req.Tags
	updated.Starred = req.Starred
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("updating contact: %w", err)
	}
	return &updated, nil
}

// SetStarred toggles the starred flag on a contact.
func (s *Service) SetStarred(ctx context.Context, id string, starred bool) (*Contact, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *cur
	updated.Starred = starred
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating contact star: %w", err)
	}
	return &updated, nil
}

// Delete removes a contact.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("deleting contact: %w", err)
	}
	return nil
}

func validateFields(name, email, phone, company, position string, status Status, tags []string) error {
	v := &validate.Error{}
	if strings.TrimSpace(name) == "" {
		v.Add("name", "name is required")
	} else if len(name) > 50 {
		v.Add("name", "name cannot exceed 50 characters")
	}
	if email == "" {
		v.Add("email", "email is required")
	} else if !validate.ValidEmail(email) {
		v.Add("email", "email is not a valid address")
	}
	if strings.TrimSpace(phone) == "" {
		v.Add("phone", "phone number is required")
	} else if !phonePattern.MatchString(phone) {
		v.Add("phone", "phone number is not valid")
	}
	if strings.TrimSpace(company) == "" {
		v.Add("company", "company is required")
	} else if len(company) > 50 {
		v.Add("company", "company cannot exceed 50 characters")
	}
	if strings.TrimSpace(position) == "" {
		v.Add("position", "position is required")
	} else if len(position) > 50 {
		v.Add("position", "position cannot exceed 50 characters")
	}
	if !ValidStatus(status) {
		v.Add("status", "status must be active or inactive")
	}
	if len(tags) > MaxTags {
		v.Add("tags", fmt.Sprintf("cannot have more than %d tags", MaxTags))
	}
	return v.Err()
}
