package company_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/company"
	"github.com/opsdesk/opsdesk/internal/repository"
	"github.com/opsdesk/opsdesk/internal/repository/mocks"
)

func TestCompanyService_Get_NotConfigured(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CompanyRepository{}
	repo.On("Get", ctx).Return(nil, repository.ErrNotFound)

	svc := company.NewService(repo)
	_, err := svc.Get(ctx)
	require.ErrorIs(t, err, company.ErrNotConfigured)
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CompanyRepository{}
	repo.On("Get", ctx).Return(nil, repository.ErrNotFound)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := company.NewService(repo)
	c, err := svc.Create(ctx, "Acme Corp")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", c.Name)
	require.NotEmpty(t, c.ID)
}

func TestCompanyService_Create_AlreadyConfigured(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CompanyRepository{}
	repo.On("Get", ctx).Return(&company.Company{ID: "co", Name: "Acme Corp"}, nil)

	svc := company.NewService(repo)
	_, err := svc.Create(ctx, "Globex")
	require.ErrorIs(t, err, company.ErrAlreadyConfigured)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompanyService_UpdateName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CompanyRepository{}
	repo.On("Get", ctx).Return(&company.Company{ID: "co", Name: "Acme Corp"}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := company.NewService(repo)
	c, err := svc.UpdateName(ctx, "Acme International")
	require.NoError(t, err)
	require.Equal(t, "Acme International", c.Name)
}
