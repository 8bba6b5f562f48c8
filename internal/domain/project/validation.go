package project

import (
	"strings"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/domain/validate"
)

// CheckSubProjects verifies that every id is present in the owning client's
// embedded sub-project list. All offending ids are collected in one pass.
func CheckSubProjects(owner *client.Client, subProjectIDs []string) error {
	var missing []string
	for _, id := range subProjectIDs {
		if !owner.HasSubProject(id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &validate.ReferenceError{
			Entity: "sub-project",
			Reason: "not in the client's sub-project list",
			IDs:    missing,
		}
	}
	return nil
}

// CheckTeamMembers verifies that every id resolves to an Active user. Ids
// that resolve to no user at all are offenders too.
func CheckTeamMembers(ids []string, users []org.User) error {
	statusByID := make(map[string]org.UserStatus, len(users))
	for _, u := range users {
		statusByID[u.ID] = u.Status
	}

	var offenders []string
	for _, id := range ids {
		if statusByID[id] != org.UserActive {
			offenders = append(offenders, id)
		}
	}
	if len(offenders) > 0 {
		return &validate.ReferenceError{
			Entity: "team member",
			Reason: "not an active user",
			IDs:    offenders,
		}
	}
	return nil
}

func validateFields(name string, priority Priority, status Status, start, deadline time.Time, progress int) error {
	v := &validate.Error{}
	if strings.TrimSpace(name) == "" {
		v.Add("name", "name is required")
	}
	if !ValidPriority(priority) {
		v.Add("priority", "priority must be high, medium or low")
	}
	if !ValidStatus(status) {
		v.Add("status", "status must be active, hold or completed")
	}
	if deadline.IsZero() {
		v.Add("deadline", "deadline is required")
	} else if !deadline.After(start) {
		v.Add("deadline", "deadline must be after start date")
	}
	if progress < 0 || progress > 100 {
		v.Add("progress", "progress must be between 0 and 100")
	}
	return v.Err()
}
