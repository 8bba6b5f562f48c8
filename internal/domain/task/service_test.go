package task_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/domain/task"
	"github.com/opsdesk/opsdesk/internal/domain/validate"
	"github.com/opsdesk/opsdesk/internal/repository/mocks"
)

var (
	projStart    = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	projDeadline = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
)

type taskFixture struct {
	repo     *mocks.TaskRepository
	projects *mocks.ProjectRepository
	files    *mocks.FileStore
	svc      *task.Service
}

func newTaskFixture() *taskFixture {
	f := &taskFixture{
		repo:     &mocks.TaskRepository{},
		projects: &mocks.ProjectRepository{},
		files:    &mocks.FileStore{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = task.NewService(f.repo, f.projects, f.files, logger)
	return f
}

func parentProject() *project.Project {
	return &project.Project{
		ID:        "p1",
		Name:      "Website Revamp",
		ClientID:  "c1",
		Team:      []string{"u1", "u2"},
		Status:    project.StatusActive,
		StartDate: projStart,
		Deadline:  projDeadline,
	}
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.projects.On("Get", ctx, "p1").Return(parentProject(), nil)
	f.repo.On("Create", ctx, mock.Anything).Return(nil)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tk, err := f.svc.Create(ctx, task.CreateRequest{
		ProjectID: "p1",
		Title:     "Build landing page",
		StartDate: &start,
		DueDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Assignees: []string{"u1"},
		Tags:      []string{"frontend"},
		CreatedBy: "admin",
	})
	require.NoError(t, err)
	require.Equal(t, task.StatusNotStarted, tk.Status)
	require.Equal(t, task.PriorityMedium, tk.Priority)
	require.Nil(t, tk.CompletedAt)
	f.repo.AssertExpectations(t)
}

func TestTaskService_Create_CompletedStampsCompletedAt(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.projects.On("Get", ctx, "p1").Return(parentProject(), nil)
	f.repo.On("Create", ctx, mock.Anything).Return(nil)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tk, err := f.svc.Create(ctx, task.CreateRequest{
		ProjectID: "p1",
		Title:     "Build landing page",
		Status:    task.StatusCompleted,
		StartDate: &start,
		DueDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Assignees: []string{"u1"},
		Tags:      []string{"frontend"},
	})
	require.NoError(t, err)
	require.NotNil(t, tk.CompletedAt)
}

func TestTaskService_Create_AssigneesOutsideTeam(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.projects.On("Get", ctx, "p1").Return(parentProject(), nil)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.Create(ctx, task.CreateRequest{
		ProjectID: "p1",
		Title:     "Build landing page",
		StartDate: &start,
		DueDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Assignees: []string{"u1", "outsider"},
		Tags:      []string{"frontend"},
	})
	require.Error(t, err)

	var refErr *validate.ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, "assignee", refErr.Entity)
	require.Equal(t, []string{"outsider"}, refErr.IDs)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskService_Create_DatesOutsideProjectWindow(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.projects.On("Get", ctx, "p1").Return(parentProject(), nil)

	tests := []struct {
		name    string
		start   time.Time
		due     time.Time
		wantErr error
	}{
		{
			"due before start",
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			task.ErrDueBeforeStart,
		},
		{
			"starts before project",
			time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			task.ErrStartsBeforeProject,
		},
		{
			"due after deadline",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			task.ErrDueAfterDeadline,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, task.CreateRequest{
				ProjectID: "p1",
				Title:     "Build landing page",
				StartDate: &tt.start,
				DueDate:   tt.due,
				Assignees: []string{"u1"},
				Tags:      []string{"frontend"},
			})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskService_UpdateStatus_TogglesCompletedAt(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	completedAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	f.repo.On("Get", ctx, "t1").Return(&task.Task{
		ID:          "t1",
		ProjectID:   "p1",
		Title:       "Build landing page",
		Status:      task.StatusCompleted,
		CompletedAt: &completedAt,
	}, nil)
	f.repo.On("Update", ctx, mock.Anything).Return(nil)

	tk, err := f.svc.UpdateStatus(ctx, "t1", task.StatusInProgress, "admin")
	require.NoError(t, err)
	require.Equal(t, task.StatusInProgress, tk.Status)
	require.Nil(t, tk.CompletedAt)
}

func TestTaskService_UpdateStatus_Invalid(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	_, err := f.svc.UpdateStatus(ctx, "t1", "Done-ish", "admin")
	require.Error(t, err)
	f.repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestTaskService_Assign(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.repo.On("Get", ctx, "t1").Return(&task.Task{
		ID: "t1", ProjectID: "p1", Assignees: []string{"u1"},
	}, nil)
	f.projects.On("Get", ctx, "p1").Return(parentProject(), nil)
	f.repo.On("Update", ctx, mock.Anything).Return(nil)

	tk, err := f.svc.Assign(ctx, "t1", "u2")
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2"}, tk.Assignees)
}

func TestTaskService_Assign_AlreadyAssigned(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.repo.On("Get", ctx, "t1").Return(&task.Task{
		ID: "t1", ProjectID: "p1", Assignees: []string{"u1"},
	}, nil)

	_, err := f.svc.Assign(ctx, "t1", "u1")
	require.ErrorIs(t, err, task.ErrAlreadyAssigned)
}

func TestTaskService_Unassign(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.repo.On("Get", ctx, "t1").Return(&task.Task{
		ID: "t1", ProjectID: "p1", Assignees: []string{"u1", "u2"},
	}, nil)
	f.repo.On("Update", ctx, mock.Anything).Return(nil)

	tk, err := f.svc.Unassign(ctx, "t1", "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"u2"}, tk.Assignees)
}

func TestTaskService_Unassign_NotAssigned(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.repo.On("Get", ctx, "t1").Return(&task.Task{
		ID: "t1", ProjectID: "p1", Assignees: []string{"u1"},
	}, nil)

	_, err := f.svc.Unassign(ctx, "t1", "u2")
	require.ErrorIs(t, err, task.ErrNotAssigned)
}

func TestTaskService_Attach(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.repo.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)
	f.files.On("Save", ctx, mock.Anything, mock.Anything).Return("t1/abc", int64(11), nil)
	f.repo.On("Update", ctx, mock.Anything).Return(nil)

	tk, err := f.svc.Attach(ctx, "t1", "spec.pdf", "application/pdf", "admin", strings.NewReader("hello world"))
	require.NoError(t, err)
	require.Len(t, tk.Attachments, 1)
	att := tk.Attachments[0]
	require.Equal(t, "spec.pdf", att.Name)
	require.Equal(t, "t1/abc", att.Path)
	require.EqualValues(t, 11, att.Size)
	require.Equal(t, "admin", att.UploadedBy)
}

func TestTaskService_Attach_CleansUpOrphanedFile(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.repo.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)
	f.files.On("Save", ctx, mock.Anything, mock.Anything).Return("t1/abc", int64(5), nil)
	f.repo.On("Update", ctx, mock.Anything).Return(errors.New("db down"))
	f.files.On("Delete", ctx, "t1/abc").Return(nil)

	_, err := f.svc.Attach(ctx, "t1", "spec.pdf", "application/pdf", "admin", strings.NewReader("hello"))
	require.Error(t, err)
	f.files.AssertCalled(t, "Delete", ctx, "t1/abc")
}

func TestTaskService_RemoveAttachment(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.repo.On("Get", ctx, "t1").Return(&task.Task{
		ID:        "t1",
		ProjectID: "p1",
		Attachments: []task.Attachment{
			{ID: "a1", Name: "spec.pdf", Path: "t1/a1"},
			{ID: "a2", Name: "notes.txt", Path: "t1/a2"},
		},
	}, nil)
	f.repo.On("Update", ctx, mock.Anything).Return(nil)
	f.files.On("Delete", ctx, "t1/a1").Return(nil)

	tk, err := f.svc.RemoveAttachment(ctx, "t1", "a1")
	require.NoError(t, err)
	require.Len(t, tk.Attachments, 1)
	require.Equal(t, "a2", tk.Attachments[0].ID)
}

func TestTaskService_RemoveAttachment_Missing(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.repo.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)

	_, err := f.svc.RemoveAttachment(ctx, "t1", "nope")
	require.ErrorIs(t, err, task.ErrAttachmentNotFound)
}

func TestTaskService_Delete_RemovesAttachmentFiles(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()

	f.repo.On("Get", ctx, "t1").Return(&task.Task{
		ID:        "t1",
		ProjectID: "p1",
		Attachments: []task.Attachment{
			{ID: "a1", Path: "t1/a1"},
			{ID: "a2", Path: "t1/a2"},
		},
	}, nil)
	f.repo.On("Delete", ctx, "t1").Return(nil)
	f.files.On("Delete", ctx, "t1/a1").Return(nil)
	f.files.On("Delete", ctx, "t1/a2").Return(errors.New("already gone"))

	require.NoError(t, f.svc.Delete(ctx, "t1"))
	f.files.AssertExpectations(t)
}
