package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a product id that does
// not exist in the store.
var ErrNotFound = errors.New("product not found")

// ValidationError reports a client-correctable problem with a single input
// field. Message is safe to return verbatim in an API response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StoreError wraps a persistence failure. It is never client-correctable and
// must be logged server-side.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
