package invoice

import (
	"fmt"
	"strings"

	"github.com/opsdesk/opsdesk/internal/domain/validate"
)

// LineAmount computes one line's gross amount: quantity times price with the
// tax rate applied.
func LineAmount(quantity int, price, taxRate float64) float64 {
	return float64(quantity) * price * (1 + taxRate/100)
}

// Totals computes the invoice aggregates from its line items. Subtotal sums
// the net amounts, tax sums the per-line tax portions, and total is their
// sum.
func Totals(items []LineItem) (subtotal, tax, total float64) {
	for _, it := range items {
		net := float64(it.Quantity) * it.Price
		subtotal += net
		tax += net * it.TaxRate / 100
	}
	return subtotal, tax, subtotal + tax
}

// ValidateItems checks every line item, collecting all violations with
// per-line field paths.
func ValidateItems(items []LineItem) error {
	v := &validate.Error{}
	if len(items) == 0 {
		v.Add("items", "at least one line item is required")
	}
	for i, it := range items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		if strings.TrimSpace(it.ProjectID) == "" {
			v.Add(field("projectId"), "project is required")
		}
		if strings.TrimSpace(it.Description) == "" {
			v.Add(field("description"), "description is required")
		}
		if it.Quantity < 1 {
			v.Add(field("quantity"), "quantity must be at least 1")
		}
		if it.Price < 0 {
			v.Add(field("price"), "price cannot be negative")
		}
		if it.TaxRate < 0 || it.TaxRate > 100 {
			v.Add(field("taxRate"), "tax rate must be between 0 and 100")
		}
	}
	return v.Err()
}
