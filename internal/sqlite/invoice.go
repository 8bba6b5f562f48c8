package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/invoice"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// InvoiceRepository implements repository.InvoiceRepository for SQLite
type InvoiceRepository struct {
	db *DB
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

type invoiceRow struct {
	ID           string         `db:"id"`
	Number       string         `db:"number"`
	CustomNumber bool           `db:"custom_number"`
	ClientID     string         `db:"client_id"`
	InvoiceDate  time.Time      `db:"invoice_date"`
	DueDate      time.Time      `db:"due_date"`
	Status       string         `db:"status"`
	Items        string         `db:"items"`
	Subtotal     float64        `db:"subtotal"`
	Tax          float64        `db:"tax"`
	Total        float64        `db:"total"`
	Notes        sql.NullString `db:"notes"`
	Terms        sql.NullString `db:"terms"`
	PaidDate     sql.NullTime   `db:"paid_date"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (row invoiceRow) toDomain() (*invoice.Invoice, error) {
	var items []invoice.LineItem
	if err := decodeJSON(row.Items, &items); err != nil {
		return nil, err
	}
	inv := &invoice.Invoice{
		ID:           row.ID,
		Number:       row.Number,
		CustomNumber: row.CustomNumber,
		ClientID:     row.ClientID,
		InvoiceDate:  row.InvoiceDate,
		DueDate:      row.DueDate,
		Status:       invoice.Status(row.Status),
		Items:        items,
		Subtotal:     row.Subtotal,
		Tax:          row.Tax,
		Total:        row.Total,
		Notes:        row.Notes.String,
		Terms:        row.Terms.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.PaidDate.Valid {
		at := row.PaidDate.Time
		inv.PaidDate = &at
	}
	return inv, nil
}

// Create inserts a new invoice
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	items, err := encodeJSON(inv.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO invoices (id, number, custom_number, client_id, invoice_date, due_date, status,
		                      items, subtotal, tax, total, notes, terms, paid_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	var paidDate sql.NullTime
	if inv.PaidDate != nil {
		paidDate = sql.NullTime{Time: *inv.PaidDate, Valid: true}
	}
	_, err = r.db.ExecContext(ctx, query,
		inv.ID, inv.Number, inv.CustomNumber, inv.ClientID, inv.InvoiceDate, inv.DueDate, inv.Status,
		items, inv.Subtotal, inv.Tax, inv.Total, inv.Notes, inv.Terms, paidDate, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// Get retrieves an invoice by ID
func (r *InvoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var row invoiceRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM invoices WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return row.toDomain()
}

// List returns invoices matching the options plus the unpaginated total
func (r *InvoiceRepository) List(ctx context.Context, opts invoice.ListOptions) ([]invoice.Invoice, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if opts.Status != "" {
		where += ` AND status = ?`
		args = append(args, opts.Status)
	}
	if opts.ClientID != "" {
		where += ` AND client_id = ?`
		args = append(args, opts.ClientID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM invoices`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	query := `SELECT * FROM invoices` + where + ` ORDER BY created_at DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
		if opts.Page > 1 {
			query += ` OFFSET ?`
			args = append(args, (opts.Page-1)*opts.Limit)
		}
	}

	var rows []invoiceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]invoice.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := row.toDomain()
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, total, nil
}

// Update replaces an invoice's fields
func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	items, err := encodeJSON(inv.Items)
	if err != nil {
		return err
	}

	query := `
		UPDATE invoices
		SET number = ?, custom_number = ?, invoice_date = ?, due_date = ?, status = ?,
		    items = ?, subtotal = ?, tax = ?, total = ?, notes = ?, terms = ?, paid_date = ?, updated_at = ?
		WHERE id = ?
	`
	var paidDate sql.NullTime
	if inv.PaidDate != nil {
		paidDate = sql.NullTime{Time: *inv.PaidDate, Valid: true}
	}
	result, err := r.db.ExecContext(ctx, query,
		inv.Number, inv.CustomNumber, inv.InvoiceDate, inv.DueDate, inv.Status,
		items, inv.Subtotal, inv.Tax, inv.Total, inv.Notes, inv.Terms, paidDate, inv.UpdatedAt,
		inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to update invoice: %w", err)
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

// Delete removes an invoice
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
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

// NumberExists reports whether an invoice already carries the number
func (r *InvoiceRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM invoices WHERE number = ?)`, number)
	if err != nil {
		return false, fmt.Errorf("failed to check invoice number: %w", err)
	}
	return exists, nil
}

// ListNumbersByStem returns the client's invoice numbers under a generated
// stem, highest first
func (r *InvoiceRepository) ListNumbersByStem(ctx context.Context, clientID, stem string) ([]string, error) {
	var numbers []string
	err := r.db.SelectContext(ctx, &numbers,
		`SELECT number FROM invoices WHERE client_id = ? AND number LIKE ? || '%' ORDER BY number DESC`,
		clientID, stem)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice numbers: %w", err)
	}
	return numbers, nil
}

// CountByClient returns how many invoices reference the client
func (r *InvoiceRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM invoices WHERE client_id = ?`, clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices by client: %w", err)
	}
	return count, nil
}

// CountByProject returns how many invoices carry a line item for the
// project. Items is a JSON array unpacked with json_each.
func (r *InvoiceRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM invoices WHERE EXISTS (
			SELECT 1 FROM json_each(invoices.items)
			WHERE json_extract(json_each.value, '$.project_id') = ?
		)`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices by project: %w", err)
	}
	return count, nil
}
