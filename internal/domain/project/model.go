package project

import "time"

// Status is the lifecycle state of a project. "hold" is the stored value; the
// API surface accepts and emits the "on hold" synonym.
type Status string

const (
	StatusActive    Status = "active"
	StatusHold      Status = "hold"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is a known project status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusHold, StatusCompleted:
		return true
	default:
		return false
	}
}

// Priority orders projects for planning.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
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

// Project is a unit of delivery for one client. SubProjectIDs is the subset
// of the owning client's embedded sub-projects this project covers; Team is
// the set of users who may be assigned to the project's tasks.
type Project struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Priority      Priority  `json:"priority"`
	ClientID      string    `json:"client_id"`
	SubProjectIDs []string  `json:"client_projects"`
	Team          []string  `json:"team"`
	Status        Status    `json:"status"`
	StartDate     time.Time `json:"start_date"`
	Deadline      time.Time `json:"deadline"`
	Progress      int       `json:"progress"`
	CreatedBy     string    `json:"created_by"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OnTeam reports whether userID is a member of the project team.
func (p *Project) OnTeam(userID string) bool {
	for _, id := range p.Team {
		if id == userID {
			return true
		}
	}
	return false
}
