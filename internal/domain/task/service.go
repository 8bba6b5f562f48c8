package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// Service handles task operations.
type Service struct {
	repo     Repository
	projects ProjectDirectory
	files    FileStore
	logger   *slog.Logger
}

// NewService creates a new task service.
func NewService(repo Repository, projects ProjectDirectory, files FileStore, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, files: files, logger: logger}
}

// CreateRequest defines task creation inputs.
type CreateRequest struct {
	ProjectID   string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	StartDate   *time.Time
	DueDate     time.Time
	Assignees   []string
	Tags        []string
	CreatedBy   string
}

// UpdateRequest defines task update inputs.
type UpdateRequest struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	StartDate   *time.Time
	DueDate     time.Time
	Assignees   []string
	Tags        []string
	UpdatedBy   string
}

// Create validates and persists a new task. Assignees are checked against
// the parent project's current team and the date window against the
// project's start/deadline.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	status := req.Status
	if status == "" {
		status = StatusNotStarted
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if err := validateFields(req.Title, req.DueDate, req.Assignees, req.Tags, status, priority); err != nil {
		return nil, err
	}

	parent, err := s.loadProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	start := now
	if req.StartDate != nil {
		start = *req.StartDate
	}

	if err := CheckDates(parent, start, req.DueDate); err != nil {
		return nil, err
	}
	if err := CheckAssignees(parent, req.Assignees); err != nil {
		return nil, err
	}

	t := &Task{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		StartDate:   start,
		DueDate:     req.DueDate,
		Assignees:   req.Assignees,
		Tags:        req.Tags,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == StatusCompleted {
		t.CompletedAt = &now
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return t, nil
}

// Get fetches a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// List returns tasks matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Task, error) {
	return s.repo.List(ctx, opts)
}

// Update replaces a task's fields. Assignee membership and the date window
// are re-validated against the freshly loaded parent project on every
// update, regardless of which fields changed.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Task, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = cur.Status
	}
	priority := req.Priority
	if priority == "" {
		priority = cur.Priority
	}
	if err := validateFields(req.Title, req.DueDate, req.Assignees, req.Tags, status, priority); err != nil {
		return nil, err
	}

	parent, err := s.loadProject(ctx, cur.ProjectID)
	if err != nil {
		return nil, err
	}

	start := cur.StartDate
	if req.StartDate != nil {
		start = *req.StartDate
	}

	if err := CheckDates(parent, start, req.DueDate); err != nil {
		return nil, err
	}
	if err := CheckAssignees(parent, req.Assignees); err != nil {
		return nil, err
	}

	now := time.Now()
	updated := *cur
	updated.Title = req.Title
	updated.Description = req.Description
	updated.Priority = priority
	updated.StartDate = start
	updated.DueDate = req.DueDate
	updated.Assignees = req.Assignees
	updated.Tags = req.Tags
	updated.LastUpdatedBy = req.UpdatedBy
	updated.UpdatedAt = now
	applyStatus(&updated, status, now)

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return &updated, nil
}

// UpdateStatus sets the task status. Any status may be set from any other;
// completedAt is stamped on entry to Completed and cleared on exit.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, updatedBy string) (*Task, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updated := *cur
	updated.LastUpdatedBy = updatedBy
	updated.UpdatedAt = now
	applyStatus(&updated, status, now)

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating task status: %w", err)
	}
	return &updated, nil
}

// Assign adds a single user to the task's assignee list after checking team
// membership against the freshly loaded parent project.
func (s *Service) Assign(ctx context.Context, id, userID string) (*Task, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.Assigned(userID) {
		return nil, ErrAlreadyAssigned
	}

	parent, err := s.loadProject(ctx, cur.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := CheckAssignees(parent, []string{userID}); err != nil {
		return nil, err
	}

	updated := *cur
	updated.Assignees = append(append([]string{}, cur.Assignees...), userID)
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("assigning user: %w", err)
	}
	return &updated, nil
}

// Unassign removes a single user from the task's assignee list.
func (s *Service) Unassign(ctx context.Context, id, userID string) (*Task, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cur.Assigned(userID) {
		return nil, ErrNotAssigned
	}

	updated := *cur
	updated.Assignees = nil
	for _, a := range cur.Assignees {
		if a != userID {
			updated.Assignees = append(updated.Assignees, a)
		}
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("unassigning user: %w", err)
	}
	return &updated, nil
}

// Attach stores the uploaded bytes in the file store and records the
// attachment metadata on the task.
func (s *Service) Attach(ctx context.Context, id, name, mimeType, uploadedBy string, r io.Reader) (*Task, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	attachmentID := uuid.NewString()
	path, size, err := s.files.Save(ctx, cur.ID+"/"+attachmentID, r)
	if err != nil {
		return nil, fmt.Errorf("storing attachment: %w", err)
	}

	updated := *cur
	updated.Attachments = append(append([]Attachment{}, cur.Attachments...), Attachment{
		ID:         attachmentID,
		Name:       name,
		Path:       path,
		Size:       size,
		MimeType:   mimeType,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now(),
	})
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		// The task row is authoritative; clean up the orphaned file.
		if removeErr := s.files.Delete(ctx, path); removeErr != nil {
			s.logger.Warn("removing orphaned attachment file", "path", path, "error", removeErr)
		}
		return nil, fmt.Errorf("recording attachment: %w", err)
	}
	return &updated, nil
}

// RemoveAttachment deletes one attachment's metadata and its stored file.
// A failed file deletion is logged, not fatal.
func (s *Service) RemoveAttachment(ctx context.Context, id, attachmentID string) (*Task, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var removed *Attachment
	updated := *cur
	updated.Attachments = nil
	for _, a := range cur.Attachments {
		if a.ID == attachmentID {
			att := a
			removed = &att
			continue
		}
		updated.Attachments = append(updated.Attachments, a)
	}
	if removed == nil {
		return nil, ErrAttachmentNotFound
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("removing attachment: %w", err)
	}
	if err := s.files.Delete(ctx, removed.Path); err != nil {
		s.logger.Warn("deleting attachment file", "path", removed.Path, "error", err)
	}
	return &updated, nil
}

// Delete removes a task and issues a deletion request for every stored
// attachment file. Individual file deletion failures are logged; deletion of
// the task itself is not rolled back.
func (s *Service) Delete(ctx context.Context, id string) error {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	for _, a := range cur.Attachments {
		if err := s.files.Delete(ctx, a.Path); err != nil {
			s.logger.Warn("deleting attachment file", "task_id", id, "path", a.Path, "error", err)
		}
	}
	return nil
}

func (s *Service) loadProject(ctx context.Context, id string) (*project.Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return p, nil
}

func applyStatus(t *Task, status Status, now time.Time) {
	t.Status = status
	if status == StatusCompleted {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}
}
