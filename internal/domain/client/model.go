package client

import "time"

// Status is the lifecycle state of a client.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ValidStatus reports whether s is a known client status.
func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusInactive
}

// SubProject is a named, valued work item embedded in a client record.
// Sub-projects have no independent lifecycle; projects reference them by id.
type SubProject struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Client represents a billable customer with its embedded sub-project list.
type Client struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Company     string       `json:"company"`
	SubProjects []SubProject `json:"projects"`
	Status      Status       `json:"status"`
	LastContact time.Time    `json:"last_contact"`
	Version     int64        `json:"version"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// HasSubProject reports whether id is in the client's sub-project list.
func (c *Client) HasSubProject(id string) bool {
	for _, sp := range c.SubProjects {
		if sp.ID == id {
			return true
		}
	}
	return false
}
