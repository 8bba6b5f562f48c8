package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/invoice"
	"github.com/opsdesk/opsdesk/internal/domain/validate"
)

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		price    float64
		taxRate  float64
		want     float64
	}{
		{"no tax", 2, 100, 0, 200},
		{"with tax", 2, 100, 10, 220},
		{"single unit", 1, 49.5, 20, 59.4},
		{"free line", 3, 0, 25, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, invoice.LineAmount(tt.quantity, tt.price, tt.taxRate), 1e-9)
		})
	}
}

func TestTotals(t *testing.T) {
	items := []invoice.LineItem{
		{ProjectID: "p1", Description: "design", Quantity: 2, Price: 100, TaxRate: 10},
		{ProjectID: "p2", Description: "build", Quantity: 1, Price: 500, TaxRate: 20},
	}

	subtotal, tax, total := invoice.Totals(items)
	require.InDelta(t, 700.0, subtotal, 1e-9)
	require.InDelta(t, 120.0, tax, 1e-9)
	require.InDelta(t, subtotal+tax, total, 1e-9)
}

func TestTotals_Empty(t *testing.T) {
	subtotal, tax, total := invoice.Totals(nil)
	require.Zero(t, subtotal)
	require.Zero(t, tax)
	require.Zero(t, total)
}

func TestValidateItems_CollectsAllViolations(t *testing.T) {
	err := invoice.ValidateItems([]invoice.LineItem{
		{ProjectID: "", Description: "", Quantity: 0, Price: -1, TaxRate: 120},
		{ProjectID: "p1", Description: "fine", Quantity: 1, Price: 10, TaxRate: 5},
	})
	require.Error(t, err)

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		fields = append(fields, issue.Field)
	}
	require.ElementsMatch(t, []string{
		"items[0].projectId",
		"items[0].description",
		"items[0].quantity",
		"items[0].price",
		"items[0].taxRate",
	}, fields)
}

func TestValidateItems_NoItems(t *testing.T) {
	err := invoice.ValidateItems(nil)
	require.Error(t, err)

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	require.Equal(t, "items", verr.Issues[0].Field)
}
