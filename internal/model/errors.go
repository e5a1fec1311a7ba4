package model

import "fmt"

// ValidationError reports malformed or disallowed user input. The caller
// can correct the input and retry; ledger state is never touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// PersistenceError reports a failed ledger read or write. A failed write
// guarantees that no row was stored.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidAmount    = &ValidationError{Reason: "invalid amount"}
	ErrUnknownCategory  = &ValidationError{Reason: "unknown category"}
	ErrReservedCategory = &ValidationError{Reason: "reserved category"}
	ErrInvalidRange     = &ValidationError{Reason: "invalid range"}
)
