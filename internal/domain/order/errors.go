package order

import "errors"

var (
	// ErrInvalidOrder is returned when a platform payload is missing its
	// required fields
	ErrInvalidOrder = errors.New("invalid order payload")

	// ErrAlreadyExists is returned when an order with the same
	// (platform, external order id) is already stored. Duplicate webhook
	// delivery is expected platform behavior, not a defect.
	ErrAlreadyExists = errors.New("order already exists")

	// ErrNotFound is returned when a record lookup misses
	ErrNotFound = errors.New("order not found")
)
