package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/task"
)

func seedProject(t *testing.T, db *DB, id, clientID string) {
	t.Helper()
	require.NoError(t, NewProjectRepository(db).Create(context.Background(),
		testProject(id, clientID, []string{"u1", "u2"})))
}

func testTask(id, projectID string, assignees []string) *task.Task {
	now := time.Now().UTC().Truncate(time.Second)
	return &task.Task{
		ID:        id,
		ProjectID: projectID,
		Title:     "Build landing page",
		Status:    task.StatusNotStarted,
		Priority:  task.PriorityMedium,
		StartDate: now,
		DueDate:   now.Add(14 * 24 * time.Hour),
		Assignees: assignees,
		Tags:      []string{"frontend"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTaskRepository_RoundTrip(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	seedClient(t, db, "c1")
	seedProject(t, db, "p1", "c1")

	created := testTask("t1", "p1", []string{"u1"})
	created.Attachments = []task.Attachment{
		{ID: "a1", Name: "spec.pdf", Path: "t1/a1", Size: 12, MimeType: "application/pdf"},
	}
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, created.Title, got.Title)
	require.Equal(t, created.Assignees, got.Assignees)
	require.Equal(t, created.Attachments, got.Attachments)
	require.Nil(t, got.CompletedAt)
}

func TestTaskRepository_List_Filters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	seedClient(t, db, "c1")
	seedProject(t, db, "p1", "c1")
	seedProject(t, db, "p2", "c1")

	require.NoError(t, repo.Create(ctx, testTask("t1", "p1", []string{"u1"})))
	require.NoError(t, repo.Create(ctx, testTask("t2", "p1", []string{"u2"})))
	require.NoError(t, repo.Create(ctx, testTask("t3", "p2", []string{"u1"})))

	byProject, err := repo.List(ctx, task.ListOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, byProject, 2)

	byAssignee, err := repo.List(ctx, task.ListOptions{AssigneeID: "u1"})
	require.NoError(t, err)
	require.Len(t, byAssignee, 2)

	both, err := repo.List(ctx, task.ListOptions{ProjectID: "p2", AssigneeID: "u1"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	require.Equal(t, "t3", both[0].ID)
}

func TestTaskRepository_CountByAssignee(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	seedClient(t, db, "c1")
	seedProject(t, db, "p1", "c1")

	require.NoError(t, repo.Create(ctx, testTask("t1", "p1", []string{"u1", "u2"})))
	require.NoError(t, repo.Create(ctx, testTask("t2", "p1", []string{"u2"})))

	count, err := repo.CountByAssignee(ctx, "u2")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = repo.CountByProject(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
