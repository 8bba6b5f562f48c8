package task

import (
	"strings"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/domain/validate"
)

// CheckAssignees verifies that every assignee id is a current member of the
// parent project's team, collecting all violations in one pass.
func CheckAssignees(parent *project.Project, assignees []string) error {
	var offenders []string
	for _, id := range assignees {
		if !parent.OnTeam(id) {
			offenders = append(offenders, id)
		}
	}
	if len(offenders) > 0 {
		return &validate.ReferenceError{
			Entity: "assignee",
			Reason: "not a member of the project team",
			IDs:    offenders,
		}
	}
	return nil
}

// CheckDates verifies the task's date window against its parent project:
// due must be after start, start must not precede the project start, and due
// must not exceed the project deadline when one is set.
func CheckDates(parent *project.Project, start, due time.Time) error {
	if !due.After(start) {
		return ErrDueBeforeStart
	}
	if start.Before(parent.StartDate) {
		return ErrStartsBeforeProject
	}
	if !parent.Deadline.IsZero() && due.After(parent.Deadline) {
		return ErrDueAfterDeadline
	}
	return nil
}

func validateFields(title string, due time.Time, assignees, tags []string, status Status, priority Priority) error {
	v := &validate.Error{}
	if strings.TrimSpace(title) == "" {
		v.Add("title", "title is required")
	}
	if due.IsZero() {
		v.Add("dueDate", "due date is required")
	}
	if len(assignees) == 0 {
		v.Add("assignees", "at least one assignee is required")
	}
	if len(tags) == 0 {
		v.Add("tags", "at least one tag is required")
	}
	if !ValidStatus(status) {
		v.Add("status", "status must be Not Started, In Progress, Completed or Blocked")
	}
	if !ValidPriority(priority) {
		v.Add("priority", "priority must be High, Medium or Low")
	}
	return v.Err()
}
