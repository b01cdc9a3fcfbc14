package service

import "errors"

// Domain error taxonomy. Services wrap these with context via
// fmt.Errorf("%w: ...") and the HTTP layer maps them to status codes.
var (
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
