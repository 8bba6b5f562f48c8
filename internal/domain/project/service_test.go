package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/domain/validate"
	"github.com/opsdesk/opsdesk/internal/repository"
	"github.com/opsdesk/opsdesk/internal/repository/mocks"
)

type projectFixture struct {
	repo     *mocks.ProjectRepository
	clients  *mocks.ClientRepository
	users    *mocks.UserRepository
	tasks    *mocks.TaskRepository
	invoices *mocks.InvoiceRepository
	svc      *project.Service
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		repo:     &mocks.ProjectRepository{},
		clients:  &mocks.ClientRepository{},
		users:    &mocks.UserRepository{},
		tasks:    &mocks.TaskRepository{},
		invoices: &mocks.InvoiceRepository{},
	}
	f.svc = project.NewService(f.repo, f.clients, f.users, f.tasks, f.invoices, nil)
	return f
}

func owningClient() *client.Client {
	return &client.Client{
		ID:      "c1",
		Name:    "Jane",
		Company: "Acme",
		SubProjects: []client.SubProject{
			{ID: "sp1", Name: "Website"},
			{ID: "sp2", Name: "App"},
		},
	}
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	f.clients.On("Get", ctx, "c1").Return(owningClient(), nil)
	f.users.On("ListByIDs", ctx, []string{"u1"}).Return([]org.User{
		{ID: "u1", Status: org.UserActive},
	}, nil)
	f.repo.On("Create", ctx, mock.Anything).Return(nil)

	p, err := f.svc.Create(ctx, project.CreateRequest{
		Name:          "Website Revamp",
		ClientID:      "c1",
		SubProjectIDs: []string{"sp1"},
		Team:          []string{"u1"},
		Deadline:      time.Now().Add(30 * 24 * time.Hour),
		CreatedBy:     "admin",
	})
	require.NoError(t, err)
	require.Equal(t, project.PriorityMedium, p.Priority)
	require.Equal(t, project.StatusActive, p.Status)
	require.EqualValues(t, 1, p.Version)
	require.False(t, p.StartDate.IsZero())
	f.repo.AssertExpectations(t)
}

func TestProjectService_Create_UnknownSubProjects(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	f.clients.On("Get", ctx, "c1").Return(owningClient(), nil)

	_, err := f.svc.Create(ctx, project.CreateRequest{
		Name:          "Website Revamp",
		ClientID:      "c1",
		SubProjectIDs: []string{"sp1", "nope", "also-nope"},
		Deadline:      time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)

	var refErr *validate.ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, "sub-project", refErr.Entity)
	require.ElementsMatch(t, []string{"nope", "also-nope"}, refErr.IDs)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_Create_InactiveTeamMembers(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	f.clients.On("Get", ctx, "c1").Return(owningClient(), nil)
	f.users.On("ListByIDs", ctx, []string{"u1", "u2", "ghost"}).Return([]org.User{
		{ID: "u1", Status: org.UserActive},
		{ID: "u2", Status: org.UserInactive},
	}, nil)

	_, err := f.svc.Create(ctx, project.CreateRequest{
		Name:          "Website Revamp",
		ClientID:      "c1",
		SubProjectIDs: []string{"sp1"},
		Team:          []string{"u1", "u2", "ghost"},
		Deadline:      time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)

	var refErr *validate.ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, "team member", refErr.Entity)
	require.ElementsMatch(t, []string{"u2", "ghost"}, refErr.IDs)
}

func TestProjectService_Create_ClientMissing(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	f.clients.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := f.svc.Create(ctx, project.CreateRequest{
		Name:     "Website Revamp",
		ClientID: "missing",
		Deadline: time.Now().Add(24 * time.Hour),
	})
	require.ErrorIs(t, err, project.ErrClientNotFound)
}

func TestProjectService_Create_DeadlineBeforeStart(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(ctx, project.CreateRequest{
		Name:      "Website Revamp",
		ClientID:  "c1",
		StartDate: &start,
		Deadline:  deadline,
	})
	require.Error(t, err)

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "deadline", verr.Issues[0].Field)
	f.clients.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestProjectService_Update_RevalidatesReferences(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	f.repo.On("Get", ctx, "p1").Return(&project.Project{
		ID:            "p1",
		Name:          "Website Revamp",
		Priority:      project.PriorityMedium,
		ClientID:      "c1",
		SubProjectIDs: []string{"sp1"},
		Status:        project.StatusActive,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Version:       2,
	}, nil)

	// sp2 was removed from the client since the project was created.
	owner := owningClient()
	owner.SubProjects = owner.SubProjects[:1]
	f.clients.On("Get", ctx, "c1").Return(owner, nil)

	_, err := f.svc.Update(ctx, "p1", project.UpdateRequest{
		Name:          "Website Revamp",
		SubProjectIDs: []string{"sp1", "sp2"},
		Deadline:      time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)

	var refErr *validate.ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, []string{"sp2"}, refErr.IDs)
}

func TestProjectService_Update_StaleVersion(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	f.repo.On("Get", ctx, "p1").Return(&project.Project{
		ID:        "p1",
		Name:      "Website Revamp",
		Priority:  project.PriorityMedium,
		ClientID:  "c1",
		Status:    project.StatusActive,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Version:   4,
	}, nil)
	f.clients.On("Get", ctx, "c1").Return(owningClient(), nil)
	f.repo.On("Update", ctx, mock.Anything, int64(3)).Return(repository.ErrConflict)

	_, err := f.svc.Update(ctx, "p1", project.UpdateRequest{
		Name:     "Website Revamp",
		Deadline: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		Version:  3,
	})
	require.ErrorIs(t, err, project.ErrStaleVersion)
}

func TestProjectService_Delete_BlockedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	f.repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1"}, nil)
	f.tasks.On("CountByProject", ctx, "p1").Return(0, nil)
	f.invoices.On("CountByProject", ctx, "p1").Return(1, nil)

	err := f.svc.Delete(ctx, "p1")
	require.ErrorIs(t, err, project.ErrProjectInUse)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	f.repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1"}, nil)
	f.tasks.On("CountByProject", ctx, "p1").Return(0, nil)
	f.invoices.On("CountByProject", ctx, "p1").Return(0, nil)
	f.repo.On("Delete", ctx, "p1").Return(nil)

	require.NoError(t, f.svc.Delete(ctx, "p1"))
	f.repo.AssertExpectations(t)
}
