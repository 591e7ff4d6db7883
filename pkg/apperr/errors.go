// Package apperr defines the typed errors surfaced by the application
// services. Handlers inspect them with errors.As and map each kind to an
// HTTP status; validation and conflict errors carry the offending field so
// the caller can render a field-specific message.
package apperr

import "fmt"

// ValidationError reports malformed or missing input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "invalid " + e.Field
	}
	return e.Field + ": " + e.Message
}

// Validation builds a ValidationError.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports a uniqueness violation, e.g. a duplicate email at
// signup. It is distinct from ValidationError so callers can tell "bad
// input" from "already taken".
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Field + ": " + e.Message
}

// Conflict builds a ConflictError.
func Conflict(field, message string) *ConflictError {
	return &ConflictError{Field: field, Message: message}
}

// NotFoundError reports that a referenced resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NotFound builds a NotFoundError.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// PermissionError reports that the caller is not authorized for the
// requested action.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// Permission builds a PermissionError.
func Permission(message string) *PermissionError {
	return &PermissionError{Message: message}
}

// DeliveryError reports that the mail collaborator failed to accept a
// message. The credential update preceding the send is not rolled back, so
// callers must treat this as "changed but possibly undelivered".
type DeliveryError struct {
	Address string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail delivery to %s failed: %v", e.Address, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Delivery builds a DeliveryError wrapping the transport failure.
func Delivery(address string, err error) *DeliveryError {
	return &DeliveryError{Address: address, Err: err}
}
