package apperrors

import "errors"

// Error taxonomy shared by the services and both transports.
//
// Unauthorized and ValidationFailure are reported to the acting client only,
// never broadcast. NotFound is a silent no-op on mutation paths and an
// explicit error on query paths. Dependency failures wrap the store error.
var (
	ErrUnauthorized     = errors.New("actor may not perform this action")
	ErrNotFound         = errors.New("entity not found")
	ErrValidation       = errors.New("invalid or disallowed content")
	ErrEditWindowClosed = errors.New("edit window has closed")
)
