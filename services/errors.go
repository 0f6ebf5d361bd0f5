package services

import "errors"

var (
	ErrUnauthenticated    = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidPassword    = errors.New("password must be 8 to 72 bytes long")

	ErrSectionNotFound = errors.New("section not found")
	ErrInvalidSection  = errors.New("invalid section")
	ErrVersionConflict = errors.New("section was modified since it was loaded")

	ErrNotFound             = errors.New("not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrInvalidSubmission    = errors.New("invalid submission")

	ErrInvalidUpload = errors.New("invalid upload")
)
