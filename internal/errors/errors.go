// Package errors provides typed errors for password generation.
// This enables callers to use errors.Is() and errors.As() for specific error handling.
package errors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for common error conditions.
// Use errors.Is(err, errors.ErrPolicyInvalid) to check for specific errors.
var (
	// Policy errors
	ErrPolicyInvalid = errors.New("policy invalid")
	ErrEmptyClassSet = errors.New("character set empty after exclusions")

	// Internal invariant violations
	ErrInvalidPool = errors.New("character pool must not be empty")

	// Randomness errors
	ErrRandFailure = errors.New("crypto/rand failure")
)

// PolicyError reports a policy that can not be satisfied as a whole.
// It matches ErrPolicyInvalid.
type PolicyError struct {
	Field   string // Policy field that failed validation: "length", "classes", "pool", "count"
	Message string // Human-readable error message
}

func (e *PolicyError) Error() string {
	return e.Message
}

func (e *PolicyError) Is(target error) bool {
	return target == ErrPolicyInvalid
}

// NewPolicyError creates a new PolicyError.
func NewPolicyError(field, message string) *PolicyError {
	return &PolicyError{Field: field, Message: message}
}

// ClassError reports an enabled character class whose alphabet was fully excluded.
// It matches ErrEmptyClassSet.
type ClassError struct {
	Class string // "lower", "upper", "numbers" or "symbols"
}

func (e *ClassError) Error() string {
	return fmt.Sprintf("%s set empty after exclusions", e.Class)
}

func (e *ClassError) Is(target error) bool {
	return target == ErrEmptyClassSet
}

// NewClassError creates a new ClassError.
func NewClassError(class string) *ClassError {
	return &ClassError{Class: class}
}

// CryptoError represents a failure of the random source.
// It wraps the underlying error with operation context.
type CryptoError struct {
	Op  string // Operation name: "read", "seed"
	Err error  // Underlying error
}

func (e *CryptoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crypto %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("crypto %s failed", e.Op)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

func (e *CryptoError) Is(target error) bool {
	return target == ErrRandFailure
}

// NewCryptoError creates a new CryptoError.
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// Is checks if target matches any of our sentinel errors.
// This is a convenience function for common error checks.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, message)
}

// IsUserError reports whether err is caused by the policy rather than by a defect
// or a failing random source.
func IsUserError(err error) bool {
	return errors.Is(err, ErrPolicyInvalid) || errors.Is(err, ErrEmptyClassSet)
}
