package repository

import (
	"errors"
	"fmt"
)

// ErrStore matches any *StoreError via errors.Is.
var ErrStore = errors.New("backing store failure")

// StoreError wraps a failure of the backing store (connectivity, query execution)
// together with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// WrapStore returns nil for a nil err and a *StoreError otherwise.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
