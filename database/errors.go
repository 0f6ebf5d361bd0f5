package database

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
	ErrStatusConflict  = errors.New("status transition not allowed")
)
