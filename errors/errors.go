// Package errors provides error handling for dep5.
//
// This package re-exports github.com/cockroachdb/errors so that every package
// gets stack traces, wrapping, hints and assertion failures from one import.
//
// Usage:
//
//	if err := tree.Validate(opts); err != nil {
//	    return errors.Wrap(err, "strict validation failed")
//	}
//
//	return errors.WithHint(err, "pass --allow-century-guess to accept 95-98")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions and panics
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Sentinel errors shared across dep5. Wrap them to add context; check with Is.
var (
	// ErrNotFound indicates a file, key or repository does not exist
	ErrNotFound = New("not found")

	// ErrInvalidInput indicates malformed bill-of-materials or override input
	ErrInvalidInput = New("invalid input")

	// ErrDecomposition indicates a copyright statement did not match the grammar
	ErrDecomposition = New("copyright statement could not be decomposed")

	// ErrImproperRange indicates a year range whose begin is after its end
	ErrImproperRange = New("improper year range")

	// ErrInvalidConfig indicates a configuration value failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidInputError checks if an error is or wraps ErrInvalidInput
func IsInvalidInputError(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}

// NewInvalidInputError creates an invalid-input error with a formatted message
func NewInvalidInputError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidInput, format, args...)
}
