package client

import "errors"

var (
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrEmailTaken indicates another client already uses the email.
	ErrEmailTaken = errors.New("client with this email already exists")
	// ErrClientInUse indicates projects or invoices still reference the client.
	ErrClientInUse = errors.New("client is referenced by projects or invoices")
	// ErrStaleVersion indicates the client was modified since it was read.
	ErrStaleVersion = errors.New("client modified since read")
)
