package services

import "errors"

// Sentinel errors for explicit error handling
// These errors allow callers to distinguish between different failure modes
// using errors.Is() instead of string matching

var (
	// ErrInvalidCredentials indicates authentication failed
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound indicates the requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername indicates the username is already taken
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrProtectedAccount indicates the account is a protected seed
	// account and cannot be deleted
	ErrProtectedAccount = errors.New("account is protected")

	// ErrReviewAccessDenied indicates the caller lacks review visibility
	ErrReviewAccessDenied = errors.New("review access denied")

	// ErrInvalidStatus indicates an unknown review status transition
	ErrInvalidStatus = errors.New("invalid review status")

	// ErrValidation indicates missing or malformed input fields.
	// Wrapped with detail, e.g. fmt.Errorf("%w: rating must be 1-5", ErrValidation)
	ErrValidation = errors.New("validation failed")
)
