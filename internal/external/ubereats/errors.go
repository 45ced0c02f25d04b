package ubereats

import "errors"

var (
	// ErrAuth is returned when the client-credentials token exchange fails
	// (non-2xx response or malformed token body)
	ErrAuth = errors.New("uber eats token exchange failed")

	// ErrFetch is returned when the order retrieval fails (non-2xx response
	// or non-JSON body)
	ErrFetch = errors.New("uber eats order fetch failed")
)
