/*
errors.go - Centralized error types for the vacation module

PURPOSE:
  All error types for request validation and the document pipeline boundary
  in one place. HTTP handlers map these to status codes and {"error": ...}
  payloads without exposing internals.

ERROR CATEGORIES:
  1. Validation errors - Bad dates, missing reason, weekend-only ranges
  2. Persistence errors - The request record failed to save after the
     document was already generated and delivered (partial success)

USAGE:
  var verr *vacation.ValidationError
  if errors.As(err, &verr) {
      // 400 with verr.Message
  }
*/
package vacation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDateRange is returned when the end date precedes the start date.
	ErrInvalidDateRange = errors.New("end date is before start date")

	// ErrNoWorkingDays is returned when the requested range contains no
	// Monday-Friday dates. Generation must reject before rendering.
	ErrNoWorkingDays = errors.New("requested range contains no working days")

	// ErrReasonRequired is returned when a request carries no reason.
	ErrReasonRequired = errors.New("a reason is required")

	// ErrRequestOverlap is returned when a new request overlaps an existing
	// pending or approved request for the same employee.
	ErrRequestOverlap = errors.New("request overlaps an existing request")

	// ErrRequestNotPending is returned when approving or rejecting a request
	// that has already been resolved.
	ErrRequestNotPending = errors.New("request is not pending")
)

// ValidationError carries a user-facing message for a form-level failure.
type ValidationError struct {
	Field   string
	Message string
	err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.err }

func newValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, err: err}
}

// PersistenceError reports that the vacation request record could not be
// saved after the document was generated. The document itself was delivered;
// callers surface this as a partial success, never as a full failure.
type PersistenceError struct {
	RequestID string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("document generated but request %s failed to save: %v", e.RequestID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err represents invalid client input.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrNoWorkingDays) ||
		errors.Is(err, ErrReasonRequired) ||
		errors.Is(err, ErrRequestOverlap)
}
