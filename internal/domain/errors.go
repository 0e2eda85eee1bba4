package domain

import "errors"

// Sentinel errors shared across aggregates. Services return these unwrapped so
// controllers can map them to HTTP status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
