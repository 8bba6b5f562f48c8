package invoice

import "errors"

var (
	// ErrInvoiceNotFound indicates the invoice doesn't exist.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrClientNotFound indicates the billed client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrDuplicateNumber indicates the invoice number is already taken.
	ErrDuplicateNumber = errors.New("invoice number already exists")
)
