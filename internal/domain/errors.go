package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidInput    = errors.New("invalid input")
	ErrForbidden       = errors.New("permission denied")
	ErrNotFound        = errors.New("not found")
)
