// Package result carries explicit success/failure outcomes for expected
// business conditions. Argument misuse stays on the plain error channel;
// extracting the wrong side of a Result panics.
package result

import (
	"errors"
	"fmt"
)

var ErrInvalidError = errors.New("result: error code and message are required")

// Error is a coded domain failure. Data identifies the offending aggregate.
type Error struct {
	Code    string
	Message string
	Data    map[string]any
}

// NewError constructs a coded error validating minimal invariants.
func NewError(code, message string, data map[string]any) (Error, error) {
	if code == "" || message == "" {
		return Error{}, ErrInvalidError
	}
	return Error{Code: code, Message: message, Data: data}, nil
}

// MustError builds a coded error and panics on invalid input; used for the
// fixed error constructors in the domain packages.
func MustError(code, message string, data map[string]any) Error {
	e, err := NewError(code, message, data)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Error) String() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unit is the value of results that carry no payload.
type Unit struct{}

// Result is either a success carrying a value or a failure carrying an Error.
type Result[T any] struct {
	value T
	err   *Error
}

// Success wraps a value in a successful result.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps a coded error in a failed result.
func Failure[T any](err Error) Result[T] {
	return Result[T]{err: &err}
}

// Ok is shorthand for a successful Unit result.
func Ok() Result[Unit] {
	return Success(Unit{})
}

func (r Result[T]) IsSuccess() bool { return r.err == nil }
func (r Result[T]) IsFailure() bool { return r.err != nil }

// Value returns the success value. Calling it on a failure is a programming
// error and panics.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic(fmt.Sprintf("result: value read from failed result: %s", r.err))
	}
	return r.value
}

// Err returns the failure error. Calling it on a success is a programming
// error and panics.
func (r Result[T]) Err() Error {
	if r.err == nil {
		panic("result: error read from successful result")
	}
	return *r.err
}
