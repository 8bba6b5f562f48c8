package contact

import "errors"

var (
	// ErrContactNotFound indicates the contact doesn't exist.
	ErrContactNotFound = errors.New("contact not found")
	// ErrEmailTaken indicates another contact already uses the email.
	ErrEmailTaken = errors.New("email already in use by another contact")
)
