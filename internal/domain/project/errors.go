package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrClientNotFound indicates the referenced client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrProjectInUse indicates tasks or invoices still reference the project.
	ErrProjectInUse = errors.New("project is referenced by tasks or invoices")
	// ErrStaleVersion indicates the project was modified since it was read.
	ErrStaleVersion = errors.New("project modified since read")
)
