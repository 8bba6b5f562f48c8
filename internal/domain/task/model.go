package task

import "time"

// Status is the workflow state of a task. The transition graph is
// unconstrained: any status may be set from any other.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusBlocked    Status = "Blocked"
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	default:
		return false
	}
}

// Priority orders tasks for planning.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Attachment records metadata for a file stored outside the entity store.
type Attachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Task is a unit of work inside a project. Assignees must be members of the
// parent project's team; CompletedAt is non-nil iff Status is Completed.
type Task struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"project_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Status        Status       `json:"status"`
	Priority      Priority     `json:"priority"`
	StartDate     time.Time    `json:"start_date"`
	DueDate       time.Time    `json:"due_date"`
	Assignees     []string     `json:"assignees"`
	Tags          []string     `json:"tags"`
	Attachments   []Attachment `json:"attachments,omitempty"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	CreatedBy     string       `json:"created_by"`
	LastUpdatedBy string       `json:"last_updated_by,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Assigned reports whether userID is on the task's assignee list.
func (t *Task) Assigned(userID string) bool {
	for _, id := range t.Assignees {
		if id == userID {
			return true
		}
	}
	return false
}

// ListOptions filters task listings.
type ListOptions struct {
	ProjectID  string
	Status     Status
	AssigneeID string
}
