package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/contact"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// ContactRepository implements repository.ContactRepository for SQLite
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

type contactRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Phone       string    `db:"phone"`
	Company     string    `db:"company"`
	Position    string    `db:"position"`
	Status      string    `db:"status"`
	Tags        string    `db:"tags"`
	Starred     bool      `db:"starred"`
	LastContact time.Time `db:"last_contact"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row contactRow) toDomain() (*contact.Contact, error) {
	var tags []string
	if err := decodeJSON(row.Tags, &tags); err != nil {
		return nil, err
	}
	return &contact.Contact{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Phone:       row.Phone,
		Company:     row.Company,
		Position:    row.Position,
		Status:      contact.Status(row.Status),
		Tags:        tags,
		Starred:     row.Starred,
		LastContact: row.LastContact,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// Create inserts a new contact
func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	tags, err := encodeJSON(c.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contacts (id, name, email, phone, company, position, status, tags, starred,
		                      last_contact, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Position, c.Status, tags, c.Starred,
		c.LastContact, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Get retrieves a contact by ID
func (r *ContactRepository) Get(ctx context.Context, id string) (*contact.Contact, error) {
	var row contactRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM contacts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return row.toDomain()
}

// GetByEmail retrieves a contact by its case-insensitive unique email
func (r *ContactRepository) GetByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	var row contactRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM contacts WHERE email = ? COLLATE NOCASE`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact by email: %w", err)
	}
	return row.toDomain()
}

// List returns all contacts, newest first
func (r *ContactRepository) List(ctx context.Context) ([]contact.Contact, error) {
	var rows []contactRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM contacts ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	contacts := make([]contact.Contact, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, nil
}

// Update replaces a contact's fields
func (r *ContactRepository) Update(ctx context.Context, c *contact.Contact) error {
	tags, err := encodeJSON(c.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE contacts
		SET name = ?, email = ?, phone = ?, company = ?, position = ?, status = ?, tags = ?,
		    starred = ?, last_contact = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Company, c.Position, c.Status, tags,
		c.Starred, c.LastContact, c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to update contact: %w", err)
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

// Delete removes a contact
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
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
