package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// DepartmentRepository implements repository.DepartmentRepository for SQLite
type DepartmentRepository struct {
	db *DB
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

type departmentRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	ManagerID   sql.NullString `db:"manager_id"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row departmentRow) toDomain() org.Department {
	d := org.Department{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description.String,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.ManagerID.Valid {
		mgr := row.ManagerID.String
		d.ManagerID = &mgr
	}
	return d
}

// Create inserts a new department
func (r *DepartmentRepository) Create(ctx context.Context, d *org.Department) error {
	query := `
		INSERT INTO departments (id, name, description, manager_id, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.Description, d.ManagerID, d.IsActive, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

// Get retrieves a department by ID
func (r *DepartmentRepository) Get(ctx context.Context, id string) (*org.Department, error) {
	var row departmentRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM departments WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	d := row.toDomain()
	return &d, nil
}

// GetByName retrieves a department by its case-insensitive unique name
func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*org.Department, error) {
	var row departmentRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM departments WHERE name = ? COLLATE NOCASE`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department by name: %w", err)
	}
	d := row.toDomain()
	return &d, nil
}

// List returns all departments ordered by name
func (r *DepartmentRepository) List(ctx context.Context) ([]org.Department, error) {
	var rows []departmentRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM departments ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	departments := make([]org.Department, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, row.toDomain())
	}
	return departments, nil
}

// Update replaces a department's fields
func (r *DepartmentRepository) Update(ctx context.Context, d *org.Department) error {
	query := `
		UPDATE departments
		SET name = ?, description = ?, manager_id = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		d.Name, d.Description, d.ManagerID, d.IsActive, d.UpdatedAt, d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to update department: %w", err)
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

// Delete removes a department
func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete department: %w", err)
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
