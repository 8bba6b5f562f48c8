// Package company manages the single company-profile record.
package company

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/opsdesk/internal/domain/validate"
	"github.com/opsdesk/opsdesk/internal/repository"
)

var (
	// ErrNotConfigured indicates no company record exists yet.
	ErrNotConfigured = errors.New("company name is not configured")
	// ErrAlreadyConfigured indicates the company record already exists.
	ErrAlreadyConfigured = errors.New("company name is already configured")
)

// Company is the singleton record naming the business running the system.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository provides persistence for the company record.
type Repository interface {
	Create(ctx context.Context, c *Company) error
	Get(ctx context.Context) (*Company, error)
	Update(ctx context.Context, c *Company) error
}

// Service handles company operations.
type Service struct {
	repo Repository
}

// NewService creates a new company service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches the company record.
func (s *Service) Get(ctx context.Context) (*Company, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("getting company: %w", err)
	}
	return c, nil
}

// Create sets the company name for the first time.
func (s *Service) Create(ctx context.Context, name string) (*Company, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx); err == nil {
		return nil, ErrAlreadyConfigured
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking company: %w", err)
	}

	now := time.Now()
	c := &Company{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}
	return c, nil
}

// UpdateName renames the company.
func (s *Service) UpdateName(ctx context.Context, name string) (*Company, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	cur, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	updated := *cur
	updated.Name = name
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}
	return &updated, nil
}

func validateName(name string) error {
	v := &validate.Error{}
	if strings.TrimSpace(name) == "" {
		v.Add("name", "name is required")
	}
	return v.Err()
}
