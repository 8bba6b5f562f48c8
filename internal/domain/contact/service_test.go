package contact_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/contact"
	"github.com/opsdesk/opsdesk/internal/domain/validate"
	"github.com/opsdesk/opsdesk/internal/repository"
	"github.com/opsdesk/opsdesk/internal/repository/mocks"
)

func validCreate() contact.CreateRequest {
	return contact.CreateRequest{
		Name:     "Sam Lee",
		Email:    "sam@example.test",
		Phone:    "+1 (555) 000-1111",
		Company:  "Acme Corp",
		Position: "CTO",
		Tags:     []string{"vip"},
	}
}

func TestContactService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContactRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := contact.NewService(repo, nil)
	req := validCreate()
	req.Email = "  Sam@Example.Test "

	c, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "sam@example.test", c.Email)
	require.Equal(t, contact.StatusActive, c.Status)
	require.False(t, c.LastContact.IsZero())
	repo.AssertExpectations(t)
}

func TestContactService_Create_CollectsAllViolations(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContactRepository{}

	svc := contact.NewService(repo, nil)
	_, err := svc.Create(ctx, contact.CreateRequest{
		Name:     strings.Repeat("x", 51),
		Email:    "not-an-email",
		Phone:    "abc",
		Company:  "",
		Position: "",
		Tags:     []string{"a", "b", "c", "d", "e", "f"},
	})
	require.Error(t, err)

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		fields = append(fields, issue.Field)
	}
	require.ElementsMatch(t, []string{"name", "email", "phone", "company", "position", "tags"}, fields)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContactService_Update_EmailTaken(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContactRepository{}

	repo.On("Get", ctx, "c1").Return(&contact.Contact{
		ID: "c1", Name: "Sam Lee", Email: "sam@example.test",
		Phone: "+15550001111", Company: "Acme", Position: "CTO",
		Status: contact.StatusActive,
	}, nil)
	repo.On("GetByEmail", ctx, "other@example.test").Return(&contact.Contact{
		ID: "c2", Email: "other@example.test",
	}, nil)

	svc := contact.NewService(repo, nil)
	req := contact.UpdateRequest{
		Name:     "Sam Lee",
		Email:    "other@example.test",
		Phone:    "+15550001111",
		Company:  "Acme",
		Position: "CTO",
	}
	_, err := svc.Update(ctx, "c1", req)
	require.ErrorIs(t, err, contact.ErrEmailTaken)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestContactService_Update_KeepsOwnEmail(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContactRepository{}

	repo.On("Get", ctx, "c1").Return(&contact.Contact{
		ID: "c1", Name: "Sam Lee", Email: "sam@example.test",
		Phone: "+15550001111", Company: "Acme", Position: "CTO",
		Status: contact.StatusActive,
	}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := contact.NewService(repo, nil)
	c, err := svc.Update(ctx, "c1", contact.UpdateRequest{
		Name:     "Sam Lee",
		Email:    "sam@example.test",
		Phone:    "+15550001111",
		Company:  "Acme",
		Position: "VP Engineering",
	})
	require.NoError(t, err)
	require.Equal(t, "VP Engineering", c.Position)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestContactService_SetStarred(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContactRepository{}

	repo.On("Get", ctx, "c1").Return(&contact.Contact{ID: "c1", Starred: false}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := contact.NewService(repo, nil)
	c, err := svc.SetStarred(ctx, "c1", true)
	require.NoError(t, err)
	require.True(t, c.Starred)
}

func TestContactService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContactRepository{}
	repo.On("Delete", ctx, "missing").Return(repository.ErrNotFound)

	svc := contact.NewService(repo, nil)
	require.ErrorIs(t, svc.Delete(ctx, "missing"), contact.ErrContactNotFound)
}
