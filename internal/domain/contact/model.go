package contact

import "time"

// Status is the lifecycle state of a contact.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ValidStatus reports whether s is a known contact status.
func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusInactive
}

// MaxTags bounds the tag list on a contact.
const MaxTags = 5

// Contact is an address-book entry. Email is unique across contacts.
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Status      Status    `json:"status"`
	Tags        []string  `json:"tags"`
	Starred     bool      `json:"starred"`
	LastContact time.Time `json:"last_contact"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
