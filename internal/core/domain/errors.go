package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates required tenant fields were missing or empty.
	ErrValidation = errors.New("validation failed")

	// ErrGeneration indicates the template could not be loaded, filled or saved.
	ErrGeneration = errors.New("contract generation failed")

	// ErrDelivery indicates the filled contract was not accepted by the remote endpoint.
	ErrDelivery = errors.New("contract delivery failed")

	// ErrNotConfigured indicates a required collaborator or setting is missing.
	ErrNotConfigured = errors.New("not configured")
)

// ValidationError lists every required field that was absent or empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "required fields missing: " + strings.Join(e.Fields, ", ")
}

// Is reports ErrValidation and ErrInvalidInput as matches.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || target == ErrInvalidInput
}

// NotFoundError is returned when the template file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q not found", e.Path)
}

// Is reports ErrNotFound as a match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// GenerationError wraps a load, substitution or save failure.
// An output file that exists alongside this error is not usable.
type GenerationError struct {
	Op   string
	Path string
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("generate contract: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("generate contract: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is reports ErrGeneration as a match.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// DeliveryError describes a failed delivery attempt.
// StatusCode is zero for transport errors and timeouts.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deliver contract: %v", e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("deliver contract: status %d", e.StatusCode)
	}
	return fmt.Sprintf("deliver contract: status %d: %s", e.StatusCode, e.Body)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is reports ErrDelivery as a match.
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDelivery
}

// ErrorKind classifies a failure for structured results.
type ErrorKind string

// Failure kinds surfaced at the request boundary.
const (
	KindNone       ErrorKind = ""
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindGeneration ErrorKind = "generation"
	KindDelivery   ErrorKind = "delivery"
	KindInternal   ErrorKind = "internal"
)

// String returns the string representation.
func (k ErrorKind) String() string {
	return string(k)
}

// KindOf classifies err. A nil error has KindNone.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrGeneration):
		return KindGeneration
	case errors.Is(err, ErrDelivery):
		return KindDelivery
	default:
		return KindInternal
	}
}

// MissingFields returns the fields of a ValidationError anywhere in err's chain.
func MissingFields(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
