package bdd

import (
	"errors"
	"fmt"
	"reflect"
)

// Errors returned by the engine.
var (
	// ErrKeyNotFound is returned by Get when the key was never set.
	ErrKeyNotFound = errors.New("key not found")
	// ErrTypeMismatch is returned by Get when the stored value has a different type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrAlreadyExecuted is returned by Run on every call after the first.
	ErrAlreadyExecuted = errors.New("scenario already executed")
)

// LookupError describes a failed Context lookup.
type LookupError struct {
	Key  string
	Want reflect.Type
	Got  reflect.Type
	Err  error
}

// Error returns the formatted error message.
func (e *LookupError) Error() string {
	if errors.Is(e.Err, ErrKeyNotFound) {
		return fmt.Sprintf("key not found: %s", e.Key)
	}
	return fmt.Sprintf("type mismatch for key %q: stored %s, requested %s", e.Key, typeName(e.Got), typeName(e.Want))
}

// Unwrap returns the sentinel error.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking setup or step.
type PanicError struct {
	Value any
}

// Error returns the formatted error message.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
