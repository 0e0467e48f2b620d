// Package glerr defines the error taxonomy shared by the geometry pipeline.
//
// Every failing call returns an error that wraps one of these sentinels, so
// callers classify failures with errors.Is.
package glerr

import "errors"

var (
	// ErrInvalidEnum reports an unrecognized mode, channel or capability.
	ErrInvalidEnum = errors.New("invalid enum")

	// ErrInvalidValue reports an out-of-range numeric argument.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidOperation reports a call that is illegal in the current state.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrStackOverflow reports a push onto a full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow reports a pop from an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)
