package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// UserRepository implements repository.UserRepository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Phone        sql.NullString `db:"phone"`
	RoleID       string         `db:"role_id"`
	DepartmentID string         `db:"department_id"`
	Status       string         `db:"status"`
	JoinDate     sql.NullTime   `db:"join_date"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (row userRow) toDomain() org.User {
	u := org.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		Phone:        row.Phone.String,
		RoleID:       row.RoleID,
		DepartmentID: row.DepartmentID,
		Status:       org.UserStatus(row.Status),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.JoinDate.Valid {
		u.JoinDate = row.JoinDate.Time
	}
	return u
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, u *org.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, role_id, department_id, status, join_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.Phone, u.RoleID, u.DepartmentID, u.Status, nullTime(u.JoinDate), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*org.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u := row.toDomain()
	return &u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*org.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM users WHERE email = ? COLLATE NOCASE`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	u := row.toDomain()
	return &u, nil
}

// List returns all users ordered by name
func (r *UserRepository) List(ctx context.Context) ([]org.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM users ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]org.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

// ListByIDs returns the users whose ids are in the given set
func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]org.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var rows []userRow
	err := r.db.SelectContext(ctx, &rows,
		fmt.Sprintf(`SELECT * FROM users WHERE id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by ids: %w", err)
	}
	users := make([]org.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

// Update replaces a user's fields
func (r *UserRepository) Update(ctx context.Context, u *org.User) error {
	query := `
		UPDATE users
		SET name = ?, email = ?, phone = ?, role_id = ?, department_id = ?, status = ?, join_date = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		u.Name, u.Email, u.Phone, u.RoleID, u.DepartmentID, u.Status, nullTime(u.JoinDate), u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update user: %w", err)
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

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete user: %w", err)
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

// CountByRole returns how many users hold the role
func (r *UserRepository) CountByRole(ctx context.Context, roleID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role_id = ?`, roleID)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

// CountByDepartment returns how many users belong to the department
func (r *UserRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE department_id = ?`, departmentID)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by department: %w", err)
	}
	return count, nil
}
