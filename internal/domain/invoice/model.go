package invoice

import "time"

// Status is the payment state of an invoice.
type Status string

const (
	StatusDraft   Status = "Draft"
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
	StatusOverdue Status = "Overdue"
)

// ValidStatus reports whether s is a known invoice status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusOverdue:
		return true
	default:
		return false
	}
}

// LineItem is one billable line tied to a project. Amount is always computed
// server-side from quantity, price and tax rate; client-supplied values are
// discarded.
type LineItem struct {
	ProjectID   string  `json:"project_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	TaxRate     float64 `json:"tax_rate"`
	Amount      float64 `json:"amount"`
}

// Invoice bills a client for work across one or more projects. Number is
// unique across all invoices; Subtotal, Tax and Total are derived from the
// line items and recomputed on every write.
type Invoice struct {
	ID           string     `json:"id"`
	Number       string     `json:"number"`
	CustomNumber bool       `json:"custom_number"`
	ClientID     string     `json:"client_id"`
	InvoiceDate  time.Time  `json:"invoice_date"`
	DueDate      time.Time  `json:"due_date"`
	Status       Status     `json:"status"`
	Items        []LineItem `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	Tax          float64    `json:"tax"`
	Total        float64    `json:"total"`
	Notes        string     `json:"notes,omitempty"`
	Terms        string     `json:"terms,omitempty"`
	PaidDate     *time.Time `json:"paid_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ListOptions filters and paginates invoice listings. Page is 1-based; a
// zero Limit disables pagination.
type ListOptions struct {
	Status   Status
	ClientID string
	Page     int
	Limit    int
}
