package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/task"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// TaskRepository implements repository.TaskRepository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	ID            string         `db:"id"`
	ProjectID     string         `db:"project_id"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	Status        string         `db:"status"`
	Priority      string         `db:"priority"`
	StartDate     time.Time      `db:"start_date"`
	DueDate       time.Time      `db:"due_date"`
	Assignees     string         `db:"assignees"`
	Tags          string         `db:"tags"`
	Attachments   string         `db:"attachments"`
	CompletedAt   sql.NullTime   `db:"completed_at"`
	CreatedBy     sql.NullString `db:"created_by"`
	LastUpdatedBy sql.NullString `db:"last_updated_by"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (row taskRow) toDomain() (*task.Task, error) {
	var assignees, tags []string
	var attachments []task.Attachment
	if err := decodeJSON(row.Assignees, &assignees); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.Tags, &tags); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.Attachments, &attachments); err != nil {
		return nil, err
	}
	t := &task.Task{
		ID:            row.ID,
		ProjectID:     row.ProjectID,
		Title:         row.Title,
		Description:   row.Description.String,
		Status:        task.Status(row.Status),
		Priority:      task.Priority(row.Priority),
		StartDate:     row.StartDate,
		DueDate:       row.DueDate,
		Assignees:     assignees,
		Tags:          tags,
		Attachments:   attachments,
		CreatedBy:     row.CreatedBy.String,
		LastUpdatedBy: row.LastUpdatedBy.String,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.CompletedAt.Valid {
		at := row.CompletedAt.Time
		t.CompletedAt = &at
	}
	return t, nil
}

func taskJSONColumns(t *task.Task) (assignees, tags, attachments string, err error) {
	if assignees, err = encodeJSON(t.Assignees); err != nil {
		return "", "", "", err
	}
	if tags, err = encodeJSON(t.Tags); err != nil {
		return "", "", "", err
	}
	if attachments, err = encodeJSON(t.Attachments); err != nil {
		return "", "", "", err
	}
	return assignees, tags, attachments, nil
}

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	assignees, tags, attachments, err := taskJSONColumns(t)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, project_id, title, description, status, priority, start_date, due_date,
		                   assignees, tags, attachments, completed_at, created_by, last_updated_by,
		                   created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	var completedAt sql.NullTime
	if t.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *t.CompletedAt, Valid: true}
	}
	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.StartDate, t.DueDate,
		assignees, tags, attachments, completedAt, t.CreatedBy, t.LastUpdatedBy,
		t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return row.toDomain()
}

// List returns tasks matching the options, newest first
func (r *TaskRepository) List(ctx context.Context, opts task.ListOptions) ([]task.Task, error) {
	query := `SELECT * FROM tasks WHERE 1=1`
	args := []interface{}{}

	if opts.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, opts.ProjectID)
	}
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, opts.Status)
	}
	if opts.AssigneeID != "" {
		query += ` AND EXISTS (SELECT 1 FROM json_each(tasks.assignees) WHERE json_each.value = ?)`
		args = append(args, opts.AssigneeID)
	}
	query += ` ORDER BY created_at DESC`

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

// Update replaces a task's fields
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	assignees, tags, attachments, err := taskJSONColumns(t)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, start_date = ?, due_date = ?,
		    assignees = ?, tags = ?, attachments = ?, completed_at = ?, last_updated_by = ?, updated_at = ?
		WHERE id = ?
	`
	var completedAt sql.NullTime
	if t.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *t.CompletedAt, Valid: true}
	}
	result, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.Status, t.Priority, t.StartDate, t.DueDate,
		assignees, tags, attachments, completedAt, t.LastUpdatedBy, t.UpdatedAt,
		t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByProject returns how many tasks reference the project
func (r *TaskRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks by project: %w", err)
	}
	return count, nil
}

// CountByAssignee returns how many tasks carry the user as assignee
func (r *TaskRepository) CountByAssignee(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM tasks WHERE EXISTS (
			SELECT 1 FROM json_each(tasks.assignees) WHERE json_each.value = ?
		)`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks by assignee: %w", err)
	}
	return count, nil
}
