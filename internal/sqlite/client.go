package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// ClientRepository implements repository.ClientRepository for SQLite
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

type clientRow struct {
	ID          string       `db:"id"`
	Name        string       `db:"name"`
	Email       string       `db:"email"`
	Company     string       `db:"company"`
	SubProjects string       `db:"sub_projects"`
	Status      string       `db:"status"`
	LastContact sql.NullTime `db:"last_contact"`
	Version     int64        `db:"version"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func (row clientRow) toDomain() (*client.Client, error) {
	var subs []client.SubProject
	if err := decodeJSON(row.SubProjects, &subs); err != nil {
		return nil, err
	}
	c := &client.Client{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Company:     row.Company,
		SubProjects: subs,
		Status:      client.Status(row.Status),
		Version:     row.Version,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.LastContact.Valid {
		c.LastContact = row.LastContact.Time
	}
	return c, nil
}

// Create inserts a new client
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	subs, err := encodeJSON(c.SubProjects)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO clients (id, name, email, company, sub_projects, status, last_contact, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Company, subs, c.Status, nullTime(c.LastContact), c.Version, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Get retrieves a client by ID
func (r *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	var row clientRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM clients WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return row.toDomain()
}

// List returns all clients ordered by creation time
func (r *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	var rows []clientRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]client.Client, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, nil
}

// Update replaces a client's fields with optimistic concurrency control
func (r *ClientRepository) Update(ctx context.Context, c *client.Client, expectedVersion int64) error {
	subs, err := encodeJSON(c.SubProjects)
	if err != nil {
		return err
	}

	query := `
		UPDATE clients
		SET name = ?, email = ?, company = ?, sub_projects = ?, status = ?,
		    last_contact = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Company, subs, c.Status, nullTime(c.LastContact), c.Version, c.UpdatedAt,
		c.ID, expectedVersion)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to update client: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM clients WHERE id = ?)`, c.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check client existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}
	return nil
}

// Delete removes a client
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete client: %w", err)
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

// TouchLastContact stamps the client's last-contact timestamp without
// bumping the version.
func (r *ClientRepository) TouchLastContact(ctx context.Context, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE clients SET last_contact = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("failed to touch last contact: %w", err)
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
