package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/validate"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// DefaultTerms is applied when a new invoice carries no payment terms.
const DefaultTerms = "Payment due within 30 days"

// Service handles invoice operations.
type Service struct {
	repo     Repository
	clients  Clients
	projects Projects
	logger   *slog.Logger
}

// NewService creates a new invoice service.
func NewService(repo Repository, clients Clients, projects Projects, logger *slog.Logger) *Service {
	return &Service{repo: repo, clients: clients, projects: projects, logger: logger}
}

// CreateRequest defines invoice creation inputs. Number is optional: when
// empty a number is generated from the client's company and the invoice
// year. Line item amounts and the invoice totals are always recomputed.
type CreateRequest struct {
	Number      string
	ClientID    string
	InvoiceDate time.Time
	DueDate     time.Time
	Status      Status
	Items       []LineItem
	Notes       string
	Terms       string
}

// UpdateRequest defines invoice update inputs.
type UpdateRequest struct {
	Number      string
	InvoiceDate time.Time
	DueDate     time.Time
	Status      Status
	Items       []LineItem
	Notes       string
	Terms       string
}

// Create validates and persists a new invoice. Every line item's project
// must exist and belong to the billed client. After a successful write the
// client's last-contact timestamp is touched; a failure there is logged but
// does not fail the invoice.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Invoice, error) {
	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if err := validateCore(req.ClientID, req.InvoiceDate, req.DueDate, status, req.Items); err != nil {
		return nil, err
	}

	billed, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("loading client: %w", err)
	}
	if err := s.checkItemProjects(ctx, billed.ID, req.Items); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.Number)
	custom := number != ""
	if custom {
		taken, err := s.repo.NumberExists(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("checking invoice number: %w", err)
		}
		if taken {
			return nil, ErrDuplicateNumber
		}
	} else {
		number, err = s.nextNumber(ctx, billed, req.InvoiceDate)
		if err != nil {
			return nil, err
		}
	}

	terms := req.Terms
	if strings.TrimSpace(terms) == "" {
		terms = DefaultTerms
	}

	now := time.Now()
	inv := &Invoice{
		ID:           uuid.NewString(),
		Number:       number,
		CustomNumber: custom,
		ClientID:     req.ClientID,
		InvoiceDate:  req.InvoiceDate,
		DueDate:      req.DueDate,
		Status:       status,
		Items:        priceItems(req.Items),
		Notes:        req.Notes,
		Terms:        terms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	inv.Subtotal, inv.Tax, inv.Total = Totals(inv.Items)
	if status == StatusPaid {
		inv.PaidDate = &now
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	if err := s.clients.TouchLastContact(ctx, billed.ID, now); err != nil {
		s.logger.Warn("updating client last contact", "client_id", billed.ID, "error", err)
	}
	return inv, nil
}

// Get fetches an invoice by ID.
func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("getting invoice: %w", err)
	}
	return inv, nil
}

// List returns invoices matching the options plus the unpaginated total.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Invoice, int, error) {
	return s.repo.List(ctx, opts)
}

// Update replaces an invoice's fields, re-validating line item projects and
// recomputing amounts and totals. The client cannot be changed.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Invoice, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = cur.Status
	}
	if err := validateCore(cur.ClientID, req.InvoiceDate, req.DueDate, status, req.Items); err != nil {
		return nil, err
	}
	if err := s.checkItemProjects(ctx, cur.ClientID, req.Items); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.Number)
	if number == "" {
		number = cur.Number
	}
	if number != cur.Number {
		taken, err := s.repo.NumberExists(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("checking invoice number: %w", err)
		}
		if taken {
			return nil, ErrDuplicateNumber
		}
	}

	now := time.Now()
	updated := *cur
	updated.Number = number
	updated.CustomNumber = cur.CustomNumber || number != cur.Number
	updated.InvoiceDate = req.InvoiceDate
	updated.DueDate = req.DueDate
	updated.Status = status
	updated.Items = priceItems(req.Items)
	updated.Notes = req.Notes
	updated.Terms = req.Terms
	updated.UpdatedAt = now
	updated.Subtotal, updated.Tax, updated.Total = Totals(updated.Items)
	switch {
	case status == StatusPaid && updated.PaidDate == nil:
		updated.PaidDate = &now
	case status != StatusPaid:
		updated.PaidDate = nil
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("updating invoice: %w", err)
	}
	return &updated, nil
}

// MarkPaid sets the invoice status to Paid and stamps the paid date. Marking
// an already-paid invoice is a no-op; the second return reports that case.
func (s *Service) MarkPaid(ctx context.Context, id string) (*Invoice, bool, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if cur.Status == StatusPaid {
		return cur, true, nil
	}

	now := time.Now()
	updated := *cur
	updated.Status = StatusPaid
	updated.PaidDate = &now
	updated.UpdatedAt = now

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, false, fmt.Errorf("marking invoice paid: %w", err)
	}
	return &updated, false, nil
}

// Delete removes an invoice.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("deleting invoice: %w", err)
	}
	return nil
}

// checkItemProjects verifies every line item's project exists and belongs to
// the billed client, collecting all offenders.
func (s *Service) checkItemProjects(ctx context.Context, clientID string, items []LineItem) error {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it.ProjectID] {
			seen[it.ProjectID] = true
			ids = append(ids, it.ProjectID)
		}
	}

	found, err := s.projects.ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading line item projects: %w", err)
	}
	owned := make(map[string]bool, len(found))
	for _, p := range found {
		if p.ClientID == clientID {
			owned[p.ID] = true
		}
	}

	var offenders []string
	for _, id := range ids {
		if !owned[id] {
			offenders = append(offenders, id)
		}
	}
	if len(offenders) > 0 {
		return &validate.ReferenceError{
			Entity: "project",
			Reason: "not a project of the billed client",
			IDs:    offenders,
		}
	}
	return nil
}

func (s *Service) nextNumber(ctx context.Context, billed *client.Client, invoiceDate time.Time) (string, error) {
	stem := Stem(billed.Company, invoiceDate.Year())
	existing, err := s.repo.ListNumbersByStem(ctx, billed.ID, stem)
	if err != nil {
		return "", fmt.Errorf("listing invoice numbers: %w", err)
	}
	return NextNumber(stem, existing), nil
}

func priceItems(items []LineItem) []LineItem {
	priced := make([]LineItem, len(items))
	for i, it := range items {
		it.Amount = LineAmount(it.Quantity, it.Price, it.TaxRate)
		priced[i] = it
	}
	return priced
}

func validateCore(clientID string, invoiceDate, dueDate time.Time, status Status, items []LineItem) error {
	v := &validate.Error{}
	if strings.TrimSpace(clientID) == "" {
		v.Add("clientId", "client is required")
	}
	if invoiceDate.IsZero() {
		v.Add("invoiceDate", "invoice date is required")
	}
	if dueDate.IsZero() {
		v.Add("dueDate", "due date is required")
	}
	if !ValidStatus(status) {
		v.Add("status", "status must be Draft, Pending, Paid or Overdue")
	}
	if err := v.Err(); err != nil {
		return err
	}
	return ValidateItems(items)
}
