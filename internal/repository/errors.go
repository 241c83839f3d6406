package repository

import "errors"

var (
	// ErrDuplicateEmail is returned when a signup reuses a registered email.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("not found")
)
