/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers and domain constructors, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/coacharte/intranet/store/sqlite"
	"github.com/coacharte/intranet/vacation"
)

// =============================================================================
// COMMON
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// AUTH
// =============================================================================

// LoginRequest is the credential payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the caller's profile.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
	Employee  EmployeeDTO `json:"employee"`
}

// ChangePasswordRequest is the payload for POST /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO is the public shape of an employee profile.
type EmployeeDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name,omitempty"`
	Title       string `json:"title,omitempty"`
	Position    string `json:"position,omitempty"`
	RegistryID  string `json:"registry_id,omitempty"`
	Department  string `json:"department,omitempty"`
	Phone       string `json:"phone,omitempty"`
	HireDate    string `json:"hire_date,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
}

func toEmployeeDTO(e *sqlite.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:          e.ID,
		Email:       e.Email,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		DisplayName: e.DisplayName,
		Title:       e.Title,
		Position:    e.Position,
		RegistryID:  e.RegistryID,
		Department:  e.Department,
		Phone:       e.Phone,
		HireDate:    e.HireDate,
		IsAdmin:     e.IsAdmin,
	}
}

// UpdateProfileRequest carries the self-editable profile fields.
type UpdateProfileRequest struct {
	Phone       string `json:"phone"`
	DisplayName string `json:"display_name"`
}

// =============================================================================
// VACATION
// =============================================================================

// BalanceDTO is the per-year vacation balance snapshot.
type BalanceDTO struct {
	Year      int     `json:"year"`
	Available float64 `json:"available"`
	Taken     float64 `json:"taken"`
	Remaining float64 `json:"remaining"`
}

// SubmitVacationRequest is the payload for creating a vacation request
// or generating a request document. Dates use "2006-01-02".
type SubmitVacationRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// VacationRequestDTO is the public shape of a vacation request.
type VacationRequestDTO struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	WorkingDays     int    `json:"working_days"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	SubmittedAt     string `json:"submitted_at"`
	ResolvedAt      string `json:"resolved_at,omitempty"`
	ResolvedBy      string `json:"resolved_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

func toVacationRequestDTO(r vacation.Request) VacationRequestDTO {
	dto := VacationRequestDTO{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		StartDate:   r.StartDate.String(),
		EndDate:     r.EndDate.String(),
		WorkingDays: r.WorkingDays,
		Reason:      r.Reason,
		Status:      string(r.Status),
		SubmittedAt: r.SubmittedAt.UTC().Format(time.RFC3339),
	}
	if r.ResolvedAt != nil {
		dto.ResolvedAt = r.ResolvedAt.UTC().Format(time.RFC3339)
	}
	dto.ResolvedBy = r.ResolvedBy
	dto.RejectionReason = r.RejectionReason
	return dto
}

// RejectVacationRequest is the payload for POST /api/vacation/requests/{id}/reject.
type RejectVacationRequest struct {
	Reason string `json:"reason"`
}

// =============================================================================
// PAYROLL
// =============================================================================

// ReceiptDTO is the public shape of a payroll receipt (amounts as strings
// to keep decimal precision on the wire).
type ReceiptDTO struct {
	ID         string `json:"id"`
	Year       int    `json:"year"`
	Period     string `json:"period"`
	Gross      string `json:"gross"`
	Deductions string `json:"deductions"`
	Net        string `json:"net"`
	IssuedAt   string `json:"issued_at"`
	Filename   string `json:"filename,omitempty"`
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// NotificationDTO is one feed entry.
type NotificationDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	Category  string `json:"category"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

func toNotificationDTO(n sqlite.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Category:  n.Category,
		Read:      n.ReadAt != nil,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// AttendanceDTO is one employee's attendance record for one day.
type AttendanceDTO struct {
	Day      string `json:"day"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Note     string `json:"note,omitempty"`
	Open     bool   `json:"open"`
}

func toAttendanceDTO(rec *sqlite.AttendanceRecord) AttendanceDTO {
	dto := AttendanceDTO{
		Day:     rec.Day,
		CheckIn: rec.CheckIn.UTC().Format(time.RFC3339),
		Note:    rec.Note,
		Open:    rec.CheckOut == nil,
	}
	if rec.CheckOut != nil {
		dto.CheckOut = rec.CheckOut.UTC().Format(time.RFC3339)
	}
	return dto
}

// =============================================================================
// DOCUMENTS
// =============================================================================

// DocumentDTO is stored document metadata.
type DocumentDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	UploadedAt  string `json:"uploaded_at"`
}

func toDocumentDTO(d sqlite.Document) DocumentDTO {
	return DocumentDTO{
		ID:          d.ID,
		Name:        d.Name,
		ContentType: d.ContentType,
		Size:        d.Size,
		UploadedAt:  d.UploadedAt.UTC().Format(time.RFC3339),
	}
}
