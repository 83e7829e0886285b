// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrUnsatisfiedDependency matches errors for required keys that cannot be resolved.
	ErrUnsatisfiedDependency = errors.New("inject: unsatisfied dependency")

	// ErrCyclicDependency matches errors raised when a resolution re-enters itself.
	ErrCyclicDependency = errors.New("inject: cyclic dependency")

	// ErrNoSatisfiableConstructor matches errors raised when every constructor of a type was rejected.
	ErrNoSatisfiableConstructor = errors.New("inject: no satisfiable constructor")

	// ErrInstantiation matches failures raised by constructors, builders and setters.
	ErrInstantiation = errors.New("inject: instantiation failed")

	// ErrInvalidBinding matches registration errors.
	ErrInvalidBinding = errors.New("inject: invalid binding")

	// ErrDuplicateBinding is returned when a key is bound twice.
	ErrDuplicateBinding = errors.New("inject: duplicate binding")
)

// UnsatisfiedDependencyError is returned when a required key cannot be resolved
// and no default is registered for it.
type UnsatisfiedDependencyError struct {
	Key   Key
	Cause error
}

// Error implements the error interface.
func (e *UnsatisfiedDependencyError) Error() string {
	// Example: inject: unsatisfied dependency "recommend.DataSource"
	msg := "inject: unsatisfied dependency " + strconv.Quote(e.Key.String())
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is matches ErrUnsatisfiedDependency.
func (e *UnsatisfiedDependencyError) Is(target error) bool { return target == ErrUnsatisfiedDependency }

// Unwrap returns the nested failure, if any.
func (e *UnsatisfiedDependencyError) Unwrap() error { return e.Cause }

// CycleError is returned when a resolution re-enters a key that is already in progress.
// Path lists the keys from the outermost resolution to the repeated key.
type CycleError struct {
	Key  Key
	Path []Key
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	parts := make([]string, 0, len(e.Path))
	for _, k := range e.Path {
		parts = append(parts, k.String())
	}
	// Example: inject: cyclic dependency on "*a.A" (*a.A -> *a.B -> *a.A)
	return "inject: cyclic dependency on " + strconv.Quote(e.Key.String()) +
		" (" + strings.Join(parts, " -> ") + ")"
}

// Is matches ErrCyclicDependency.
func (e *CycleError) Is(target error) bool { return target == ErrCyclicDependency }

// NoConstructorError is returned when no constructor of Type could be satisfied.
// Cause is the failure of the last constructor that was tried.
type NoConstructorError struct {
	Type  reflect.Type
	Cause error
}

// Error implements the error interface.
func (e *NoConstructorError) Error() string {
	msg := "inject: no satisfiable constructor for " + strconv.Quote(e.Type.String())
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is matches ErrNoSatisfiableConstructor.
func (e *NoConstructorError) Is(target error) bool { return target == ErrNoSatisfiableConstructor }

// Unwrap returns the last constructor failure.
func (e *NoConstructorError) Unwrap() error { return e.Cause }

// InstantiationError wraps an error returned, or a panic raised, by a constructor,
// a builder or an injection method.
type InstantiationError struct {
	Key    Key
	Method string
	Cause  error
}

// Error implements the error interface.
func (e *InstantiationError) Error() string {
	what := "constructing"
	if e.Method != "" {
		what = "calling " + e.Method + " on"
	}
	return "inject: " + what + " " + strconv.Quote(e.Key.String()) + ": " + e.Cause.Error()
}

// Is matches ErrInstantiation.
func (e *InstantiationError) Is(target error) bool { return target == ErrInstantiation }

// Unwrap returns the underlying failure.
func (e *InstantiationError) Unwrap() error { return e.Cause }

// BindingError is returned for invalid registrations.
type BindingError struct {
	Key    Key
	Reason string
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	return "inject: invalid binding for " + strconv.Quote(e.Key.String()) + ": " + e.Reason
}

// Is matches ErrInvalidBinding.
func (e *BindingError) Is(target error) bool { return target == ErrInvalidBinding }

// fatal reports whether err must abort the current resolution instead of
// letting the injector try another constructor or a default. Only the
// outermost error counts: a cycle rejected statically inside a
// *NoConstructorError is not fatal.
func fatal(err error) bool {
	switch err.(type) { //nolint:errorlint // shallow match on purpose
	case *CycleError, *InstantiationError:
		return true
	default:
		return false
	}
}
