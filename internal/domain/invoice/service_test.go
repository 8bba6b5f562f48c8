package invoice_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/invoice"
	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/domain/validate"
	"github.com/opsdesk/opsdesk/internal/repository/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func billedClient() *client.Client {
	return &client.Client{ID: "c1", Name: "Jane", Email: "jane@acme.test", Company: "Acme Corp"}
}

func TestInvoiceService_Create_GeneratesNumber(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.InvoiceRepository{}
	clients := &mocks.ClientRepository{}
	projects := &mocks.ProjectRepository{}

	clients.On("Get", ctx, "c1").Return(billedClient(), nil)
	projects.On("ListByIDs", ctx, []string{"p1"}).Return([]project.Project{{ID: "p1", ClientID: "c1"}}, nil)
	repo.On("ListNumbersByStem", ctx, "c1", "ACME-2024-").Return([]string{"ACME-2024-002"}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	clients.On("TouchLastContact", ctx, "c1", mock.Anything).Return(nil)

	svc := invoice.NewService(repo, clients, projects, discardLogger())
	inv, err := svc.Create(ctx, invoice.CreateRequest{
		ClientID:    "c1",
		InvoiceDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{ProjectID: "p1", Description: "design work", Quantity: 2, Price: 100, TaxRate: 10},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "ACME-2024-003", inv.Number)
	require.False(t, inv.CustomNumber)
	require.Equal(t, invoice.StatusPending, inv.Status)
	require.Equal(t, invoice.DefaultTerms, inv.Terms)
	require.InDelta(t, 200.0, inv.Subtotal, 1e-9)
	require.InDelta(t, 20.0, inv.Tax, 1e-9)
	require.InDelta(t, 220.0, inv.Total, 1e-9)
	require.InDelta(t, 220.0, inv.Items[0].Amount, 1e-9)
	require.Nil(t, inv.PaidDate)
	repo.AssertExpectations(t)
}

func TestInvoiceService_Create_CustomNumberTaken(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.InvoiceRepository{}
	clients := &mocks.ClientRepository{}
	projects := &mocks.ProjectRepository{}

	clients.On("Get", ctx, "c1").Return(billedClient(), nil)
	projects.On("ListByIDs", ctx, []string{"p1"}).Return([]project.Project{{ID: "p1", ClientID: "c1"}}, nil)
	repo.On("NumberExists", ctx, "INV-42").Return(true, nil)

	svc := invoice.NewService(repo, clients, projects, discardLogger())
	_, err := svc.Create(ctx, invoice.CreateRequest{
		Number:      "INV-42",
		ClientID:    "c1",
		InvoiceDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{ProjectID: "p1", Description: "design work", Quantity: 1, Price: 50},
		},
	})
	require.ErrorIs(t, err, invoice.ErrDuplicateNumber)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_ForeignProjects(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.InvoiceRepository{}
	clients := &mocks.ClientRepository{}
	projects := &mocks.ProjectRepository{}

	clients.On("Get", ctx, "c1").Return(billedClient(), nil)
	projects.On("ListByIDs", ctx, []string{"p1", "p2", "p3"}).Return([]project.Project{
		{ID: "p1", ClientID: "c1"},
		{ID: "p2", ClientID: "other"},
	}, nil)

	svc := invoice.NewService(repo, clients, projects, discardLogger())
	_, err := svc.Create(ctx, invoice.CreateRequest{
		ClientID:    "c1",
		InvoiceDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{ProjectID: "p1", Description: "a", Quantity: 1, Price: 10},
			{ProjectID: "p2", Description: "b", Quantity: 1, Price: 10},
			{ProjectID: "p3", Description: "c", Quantity: 1, Price: 10},
		},
	})
	require.Error(t, err)

	var refErr *validate.ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, "project", refErr.Entity)
	require.ElementsMatch(t, []string{"p2", "p3"}, refErr.IDs)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_TouchFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.InvoiceRepository{}
	clients := &mocks.ClientRepository{}
	projects := &mocks.ProjectRepository{}

	clients.On("Get", ctx, "c1").Return(billedClient(), nil)
	projects.On("ListByIDs", ctx, []string{"p1"}).Return([]project.Project{{ID: "p1", ClientID: "c1"}}, nil)
	repo.On("ListNumbersByStem", ctx, "c1", "ACME-2024-").Return([]string{}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	clients.On("TouchLastContact", ctx, "c1", mock.Anything).Return(errors.New("db down"))

	svc := invoice.NewService(repo, clients, projects, discardLogger())
	inv, err := svc.Create(ctx, invoice.CreateRequest{
		ClientID:    "c1",
		InvoiceDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{ProjectID: "p1", Description: "work", Quantity: 1, Price: 100},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "ACME-2024-001", inv.Number)
}

func TestInvoiceService_Create_PaidStampsPaidDate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.InvoiceRepository{}
	clients := &mocks.ClientRepository{}
	projects := &mocks.ProjectRepository{}

	clients.On("Get", ctx, "c1").Return(billedClient(), nil)
	projects.On("ListByIDs", ctx, []string{"p1"}).Return([]project.Project{{ID: "p1", ClientID: "c1"}}, nil)
	repo.On("ListNumbersByStem", ctx, "c1", "ACME-2024-").Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	clients.On("TouchLastContact", ctx, "c1", mock.Anything).Return(nil)

	svc := invoice.NewService(repo, clients, projects, discardLogger())
	inv, err := svc.Create(ctx, invoice.CreateRequest{
		ClientID:    "c1",
		InvoiceDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:      invoice.StatusPaid,
		Items: []invoice.LineItem{
			{ProjectID: "p1", Description: "work", Quantity: 1, Price: 100},
		},
	})
	require.NoError(t, err)
	require.Equal(t, invoice.StatusPaid, inv.Status)
	require.NotNil(t, inv.PaidDate)
}

func TestInvoiceService_Update_RecomputesTotals(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.InvoiceRepository{}
	clients := &mocks.ClientRepository{}
	projects := &mocks.ProjectRepository{}

	repo.On("Get", ctx, "i1").Return(&invoice.Invoice{
		ID:       "i1",
		Number:   "ACME-2024-001",
		ClientID: "c1",
		Status:   invoice.StatusPending,
		Subtotal: 100, Tax: 0, Total: 100,
	}, nil)
	projects.On("ListByIDs", ctx, []string{"p1"}).Return([]project.Project{{ID: "p1", ClientID: "c1"}}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := invoice.NewService(repo, clients, projects, discardLogger())
	inv, err := svc.Update(ctx, "i1", invoice.UpdateRequest{
		InvoiceDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{ProjectID: "p1", Description: "revised", Quantity: 3, Price: 200, TaxRate: 10, Amount: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "ACME-2024-001", inv.Number)
	require.InDelta(t, 600.0, inv.Subtotal, 1e-9)
	require.InDelta(t, 60.0, inv.Tax, 1e-9)
	require.InDelta(t, 660.0, inv.Total, 1e-9)
	require.InDelta(t, 660.0, inv.Items[0].Amount, 1e-9)
}

func TestInvoiceService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.InvoiceRepository{}
	clients := &mocks.ClientRepository{}
	projects := &mocks.ProjectRepository{}

	repo.On("Get", ctx, "i1").Return(&invoice.Invoice{
		ID: "i1", ClientID: "c1", Status: invoice.StatusPending,
	}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := invoice.NewService(repo, clients, projects, discardLogger())
	inv, alreadyPaid, err := svc.MarkPaid(ctx, "i1")
	require.NoError(t, err)
	require.False(t, alreadyPaid)
	require.Equal(t, invoice.StatusPaid, inv.Status)
	require.NotNil(t, inv.PaidDate)
}

func TestInvoiceService_MarkPaid_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.InvoiceRepository{}
	clients := &mocks.ClientRepository{}
	projects := &mocks.ProjectRepository{}

	paidAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	repo.On("Get", ctx, "i1").Return(&invoice.Invoice{
		ID: "i1", ClientID: "c1", Status: invoice.StatusPaid, PaidDate: &paidAt,
	}, nil)

	svc := invoice.NewService(repo, clients, projects, discardLogger())
	inv, alreadyPaid, err := svc.MarkPaid(ctx, "i1")
	require.NoError(t, err)
	require.True(t, alreadyPaid)
	require.Equal(t, &paidAt, inv.PaidDate)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
