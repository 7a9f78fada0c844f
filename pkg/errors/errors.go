// Package errors provides the tagged error values used throughout navcore.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel errors for conditions raised outside the routing error taxonomy.
var (
	ErrNotFound     = stderrors.New("resource not found")
	ErrInvalidInput = stderrors.New("invalid input")
	ErrInternal     = stderrors.New("internal error")
)

// Code identifies a routing failure per the engine's error taxonomy.
type Code string

const (
	// CodeNotInitialized is returned when a query arrives before
	// initialize() has completed.
	CodeNotInitialized Code = "not-initialized"
	// CodeNoDoor is returned when an endpoint's private room has no
	// usable (unlocked, or explicitly allowed) door.
	CodeNoDoor Code = "no-door"
	// CodeNoPath is returned when the graph has no route between any
	// candidate endpoint pair.
	CodeNoPath Code = "no-path"
	// CodeBlocked is returned when no candidate endpoint connector
	// clears even after every fallback tier.
	CodeBlocked Code = "blocked"
)

// RouteError is the tagged value surfaced by PathfindingEngine.FindRoute.
// It wraps an optional underlying cause while carrying a stable Code a
// caller can switch on.
type RouteError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *RouteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RouteError) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, errors.NewRoute(CodeNoPath, "")) style matching
// by Code alone, ignoring Message/Cause.
func (e *RouteError) Is(target error) bool {
	t, ok := target.(*RouteError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewRoute builds a RouteError with the given code and human message.
func NewRoute(code Code, message string) *RouteError {
	return &RouteError{Code: code, Message: message}
}

// WrapRoute builds a RouteError wrapping cause.
func WrapRoute(code Code, message string, cause error) *RouteError {
	return &RouteError{Code: code, Message: message, Cause: cause}
}

// AsRoute unwraps err looking for a *RouteError, mirroring errors.As.
func AsRoute(err error) (*RouteError, bool) {
	var re *RouteError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}
