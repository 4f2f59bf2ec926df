package engine

import "errors"

// Stable error kinds surfaced by lifecycle operations. Handlers map these to
// HTTP status codes; callers test with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalid          = errors.New("invalid input")
	ErrExhaustedIDSpace = errors.New("member id space exhausted")
)
