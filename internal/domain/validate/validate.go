package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue describes a single field-level problem with a request.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error aggregates every field-level problem found in one pass so the caller
// can correct all of them in a single resubmission.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a field-level issue.
func (e *Error) Add(field, message string) {
	e.Issues = append(e.Issues, Issue{Field: field, Message: message})
}

// Err returns the collected error, or nil when no issues were recorded.
func (e *Error) Err() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// ReferenceError reports cross-entity references that failed an existence or
// membership check. IDs always carries the complete offending set, never just
// the first violation found.
type ReferenceError struct {
	Entity string
	Reason string
	IDs    []string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s reference check failed (%s): %s", e.Entity, e.Reason, strings.Join(e.IDs, ", "))
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
