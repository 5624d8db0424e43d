// Package errors provides error handling for rsbind.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints attached to fatal failures
//   - Marking errors with the sentinels below so callers can classify them
//
// Usage:
//
//	// Wrap with context
//	if err := decode(data); err != nil {
//	    return errors.Wrap(err, "failed to decode api description")
//	}
//
//	// Classify as a load failure and tell the user what to do
//	err = errors.WithHint(errors.Mark(err, errors.ErrLoad), "check input.source")
//
//	// Check errors
//	if errors.Is(err, errors.ErrFormat) {
//	    // keep the unformatted text
//	}
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
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
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

// Sentinel errors for the generation pipeline.
// Attach them with Mark (keeps the original message) and test with Is.
var (
	// ErrLoad indicates the api description is missing, malformed or does not match the schema
	ErrLoad = New("api description load failed")

	// ErrColorValue indicates a COLOR define whose value does not yield four channel bytes
	ErrColorValue = New("malformed color value")

	// ErrFormat indicates the external formatter could not format a unit.
	// The unformatted text is still valid output.
	ErrFormat = New("formatting failed")

	// ErrUnsupportedVersion indicates the upstream library version is outside the profile constraint
	ErrUnsupportedVersion = New("unsupported upstream version")

	// ErrInvalidProfile indicates a target profile file that cannot be used
	ErrInvalidProfile = New("invalid target profile")
)

// IsLoadError checks if an error is or wraps ErrLoad
func IsLoadError(err error) bool {
	return err != nil && Is(err, ErrLoad)
}

// IsRecoverable reports whether err only affects post-processing and the
// generated text can still be written.
func IsRecoverable(err error) bool {
	return err != nil && Is(err, ErrFormat)
}

// NewLoadError creates a load error with a formatted message
func NewLoadError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrLoad)
}

// WrapLoad marks err as a load failure and adds context
func WrapLoad(err error, context string) error {
	return Mark(Wrap(err, context), ErrLoad)
}
