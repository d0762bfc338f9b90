package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidCredentials is returned when login credentials don't match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive is returned when a deactivated account tries to log in
	ErrUserInactive = errors.New("user account is inactive")

	// ErrUnsupportedFile is returned for uploads with an unknown extension
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrUnknownFeed is returned when the import feed name is not recognized
	ErrUnknownFeed = errors.New("unknown import feed")
)
