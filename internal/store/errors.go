package store

import "errors"

var (
	// ErrNotFound is returned when no product exists under the requested id.
	ErrNotFound = errors.New("storefront: product not found")

	// ErrBadCursor is returned when a page cursor cannot be decoded back
	// into a resume position.
	ErrBadCursor = errors.New("storefront: page cursor is not valid")
)
