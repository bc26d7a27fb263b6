package vacation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a vacation request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is an employee vacation request. WorkingDays is derived from the
// date range at creation; once a document has been generated for a request
// the record is treated as an immutable snapshot.
type Request struct {
	ID              string
	EmployeeID      string
	StartDate       Date
	EndDate         Date
	WorkingDays     int
	Reason          string
	Status          Status
	SubmittedOn     Date
	SubmittedAt     time.Time
	ResolvedAt      *time.Time
	ResolvedBy      string
	RejectionReason string
}

// NewRequest validates inputs and builds a pending request. The working-day
// count is derived here and always equals len(ListWorkingDays(start, end)).
func NewRequest(employeeID string, start, end Date, reason string) (*Request, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, newValidationError("reason", "se requiere un motivo", ErrReasonRequired)
	}
	if end.Before(start) {
		return nil, newValidationError("end_date", "la fecha final es anterior a la inicial", ErrInvalidDateRange)
	}
	working := CountWorkingDays(start, end)
	if working == 0 {
		return nil, newValidationError("start_date", "el rango no contiene días hábiles", ErrNoWorkingDays)
	}

	now := time.Now()
	return &Request{
		ID:          uuid.NewString(),
		EmployeeID:  employeeID,
		StartDate:   start,
		EndDate:     end,
		WorkingDays: working,
		Reason:      strings.TrimSpace(reason),
		Status:      StatusPending,
		SubmittedOn: DateOf(now),
		SubmittedAt: now,
	}, nil
}

// Overlaps reports whether two requests share at least one calendar day.
func (r *Request) Overlaps(other *Request) bool {
	return !r.StartDate.After(other.EndDate) && !r.EndDate.Before(other.StartDate)
}

// Approve flips a pending request to approved.
func (r *Request) Approve(approverID string) error {
	if r.Status != StatusPending {
		return ErrRequestNotPending
	}
	now := time.Now()
	r.Status = StatusApproved
	r.ResolvedBy = approverID
	r.ResolvedAt = &now
	return nil
}

// Reject flips a pending request to rejected with a reason.
func (r *Request) Reject(rejecterID, reason string) error {
	if r.Status != StatusPending {
		return ErrRequestNotPending
	}
	now := time.Now()
	r.Status = StatusRejected
	r.ResolvedBy = rejecterID
	r.RejectionReason = reason
	r.ResolvedAt = &now
	return nil
}
