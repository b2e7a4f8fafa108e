// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jflat

import (
	"errors"
	"fmt"
)

// Errors reported by element views. Use errors.Is to test for them.
var (
	// ErrInvalidType is reported when a coercion or narrowing is requested
	// for an invalid element, or one of the wrong kind.
	ErrInvalidType = errors.New("invalid value type")

	// ErrKeyNotFound is reported when an object lookup finds no matching key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrOutOfBounds is reported when an array index is out of range.
	ErrOutOfBounds = errors.New("array index out of bounds")

	// ErrStale is reported when an element is used after the document it was
	// derived from has been reloaded or reparsed.
	ErrStale = errors.New("stale element")
)

// Error is the concrete type of errors reported by element views.
type Error struct {
	Op  string // the operation that failed, e.g. "Int"
	Err error  // one of the Err* values declared by this package
	Msg string // additional detail, possibly empty
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Msg)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Err }

func viewError(op string, err error, msg string, args ...any) error {
	return &Error{Op: op, Err: err, Msg: fmt.Sprintf(msg, args...)}
}

// Must returns v if err == nil, and otherwise panics with err.
// It is intended for programs that treat a malformed document as fatal:
//
//	port := jflat.Must(jflat.Must(obj.Get("port")).Int())
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
