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

// RoleRepository implements repository.RoleRepository for SQLite
type RoleRepository struct {
	db *DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *DB) *RoleRepository {
	return &RoleRepository{db: db}
}

type roleRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Description  sql.NullString `db:"description"`
	Permissions  string         `db:"permissions"`
	DepartmentID sql.NullString `db:"department_id"`
	IsDefault    bool           `db:"is_default"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (row roleRow) toDomain() (*org.Role, error) {
	var perms []org.Permission
	if err := decodeJSON(row.Permissions, &perms); err != nil {
		return nil, err
	}
	role := &org.Role{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description.String,
		Permissions: perms,
		IsDefault:   row.IsDefault,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.DepartmentID.Valid {
		dep := row.DepartmentID.String
		role.DepartmentID = &dep
	}
	return role, nil
}

// Create inserts a new role
func (r *RoleRepository) Create(ctx context.Context, role *org.Role) error {
	perms, err := encodeJSON(role.Permissions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO roles (id, name, description, permissions, department_id, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		role.ID, role.Name, role.Description, perms, role.DepartmentID, role.IsDefault, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// Get retrieves a role by ID
func (r *RoleRepository) Get(ctx context.Context, id string) (*org.Role, error) {
	var row roleRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM roles WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return row.toDomain()
}

// GetByName retrieves a role by its case-insensitive unique name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*org.Role, error) {
	var row roleRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM roles WHERE name = ? COLLATE NOCASE`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return row.toDomain()
}

// List returns all roles ordered by name
func (r *RoleRepository) List(ctx context.Context) ([]org.Role, error) {
	var rows []roleRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM roles ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	roles := make([]org.Role, 0, len(rows))
	for _, row := range rows {
		role, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// Update replaces a role's fields
func (r *RoleRepository) Update(ctx context.Context, role *org.Role) error {
	perms, err := encodeJSON(role.Permissions)
	if err != nil {
		return err
	}

	query := `
		UPDATE roles
		SET name = ?, description = ?, permissions = ?, department_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		role.Name, role.Description, perms, role.DepartmentID, role.UpdatedAt, role.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to update role: %w", err)
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

// Delete removes a role
func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete role: %w", err)
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

// CountByDepartment returns how many roles are associated with the department
func (r *RoleRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM roles WHERE department_id = ?`, departmentID)
	if err != nil {
		return 0, fmt.Errorf("failed to count roles by department: %w", err)
	}
	return count, nil
}
