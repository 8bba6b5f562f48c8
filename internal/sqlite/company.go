package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/company"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// CompanyRepository implements repository.CompanyRepository for SQLite
type CompanyRepository struct {
	db *DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts the company record
func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	query := `INSERT INTO company (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.CreatedAt, c.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

type companyRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Get retrieves the company record
func (r *CompanyRepository) Get(ctx context.Context) (*company.Company, error) {
	var row companyRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM company LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company.Company{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// Update renames the company
func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE company SET name = ?, updated_at = ? WHERE id = ?`, c.Name, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
