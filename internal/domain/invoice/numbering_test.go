package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/invoice"
)

func TestStem(t *testing.T) {
	tests := []struct {
		company string
		year    int
		want    string
	}{
		{"Acme Corp", 2024, "ACME-2024-"},
		{"globex", 2025, "GLOB-2025-"},
		{"Bo", 2024, "BOXX-2024-"},
		{"", 2024, "XXXX-2024-"},
	}
	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			require.Equal(t, tt.want, invoice.Stem(tt.company, tt.year))
		})
	}
}

func TestNextNumber(t *testing.T) {
	stem := "ACME-2024-"

	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"first", nil, "ACME-2024-001"},
		{"continues sequence", []string{"ACME-2024-001", "ACME-2024-002"}, "ACME-2024-003"},
		{"skips gaps", []string{"ACME-2024-001", "ACME-2024-005"}, "ACME-2024-006"},
		{"ignores other stems", []string{"GLOB-2024-009"}, "ACME-2024-001"},
		{"ignores unparseable suffixes", []string{"ACME-2024-custom", "ACME-2024-002"}, "ACME-2024-003"},
		{"grows past three digits", []string{"ACME-2024-999"}, "ACME-2024-1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, invoice.NextNumber(stem, tt.existing))
		})
	}
}
