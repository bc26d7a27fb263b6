/*
handlers.go - HTTP API handlers for the intranet service

PURPOSE:
  Exposes the intranet modules via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/auth/login                    Issue a JWT for valid credentials
    POST   /api/auth/change-password          Rotate the caller's password
    GET    /api/auth/me                       Caller's profile

  Employees:
    GET    /api/employees                     Directory listing
    GET    /api/employees/{id}                One profile
    PUT    /api/employees/me                  Update self-editable fields

  Vacation:
    GET    /api/vacation/balance              Per-year balance snapshot
    GET    /api/vacation/requests             Caller's requests
    POST   /api/vacation/requests             Submit a request
    GET    /api/vacation/requests/pending     Pending queue (admin)
    POST   /api/vacation/requests/{id}/approve  (admin)
    POST   /api/vacation/requests/{id}/reject   (admin)
    POST   /api/vacation/generate-document    Render + download request DOCX

  Payroll:
    GET    /api/payroll/receipts              Caller's receipts
    GET    /api/payroll/receipts/{id}/download  Stored artifact
    GET    /api/payroll/receipts/export       XLSX summary

  Org chart:
    GET    /api/orgchart                      Reporting tree

  Notifications:
    GET    /api/notifications                 Feed (?unread=true)
    GET    /api/notifications/unread-count
    POST   /api/notifications/{id}/read
    POST   /api/notifications/read-all

  Attendance:
    POST   /api/attendance                    Tagged-action endpoint (dispatch.go)
    GET    /api/attendance/today              Today's record

  Documents:
    GET    /api/documents                     Caller's stored files
    POST   /api/documents                     Multipart upload
    GET    /api/documents/{id}/download

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing/invalid/expired token, bad credentials
  - 403: Admin-only endpoint hit by a regular employee
  - 404: Resource not found
  - 409: Conflict (overlapping request, duplicate check-in)
  - 500: Internal errors (including template problems)

SEE ALSO:
  - dto.go: Request/response data structures
  - dispatch.go: Attendance action dispatch table
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coacharte/intranet/auth"
	"github.com/coacharte/intranet/docgen"
	"github.com/coacharte/intranet/orgchart"
	"github.com/coacharte/intranet/payroll"
	"github.com/coacharte/intranet/store/sqlite"
	"github.com/coacharte/intranet/vacation"
)

const (
	minPasswordLength = 8
	maxUploadBytes    = 10 << 20 // 10 MiB per stored document
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Tokens *auth.TokenIssuer
	Logger *zap.Logger
	Org    *orgchart.Builder
}

// NewHandler creates a new handler with the given store and token issuer.
func NewHandler(store *sqlite.Store, tokens *auth.TokenIssuer, logger *zap.Logger) *Handler {
	h := &Handler{
		Store:  store,
		Tokens: tokens,
		Logger: logger,
	}
	h.Org = orgchart.NewBuilder(h.orgMembers)
	return h
}

// Health answers liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login validates credentials and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	emp, err := h.Store.GetEmployeeByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			// same answer as a wrong password, no account probing
			writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to look up account", err)
		return
	}
	if !emp.Active || auth.CheckPassword(emp.PasswordHash, req.Password) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, expiresAt, err := h.Tokens.Issue(auth.Claims{
		EmployeeID: emp.ID,
		Email:      emp.Email,
		IsAdmin:    emp.IsAdmin,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		Employee:  toEmployeeDTO(emp),
	})
}

// ChangePassword rotates the caller's password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("New password must be at least %d characters", minPasswordLength), nil)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), claims.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up account", err)
		return
	}
	if auth.CheckPassword(emp.PasswordHash, req.CurrentPassword) != nil {
		writeError(w, http.StatusUnauthorized, "Current password is incorrect", nil)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}
	if err := h.Store.SetPasswordHash(r.Context(), emp.ID, hash); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update password", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// Me returns the caller's own profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	emp, err := h.Store.GetEmployee(r.Context(), claims.EmployeeID)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the directory of active employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i := range employees {
		dtos[i] = toEmployeeDTO(&employees[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single profile.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// UpdateProfile updates the caller's self-editable contact fields.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.UpdateEmployeeContact(r.Context(), claims.EmployeeID, req.Phone, req.DisplayName); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), claims.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload profile", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// GetVacationBalance returns the caller's balance for a year (default: current).
func (h *Handler) GetVacationBalance(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	year := time.Now().Year()
	if q := r.URL.Query().Get("year"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	bal, err := h.Store.GetBalance(r.Context(), claims.EmployeeID, year)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			// no snapshot yet means a zero balance, not an error
			writeJSON(w, http.StatusOK, BalanceDTO{Year: year})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get balance", err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceDTO{
		Year:      bal.Year,
		Available: bal.Available,
		Taken:     bal.Taken,
		Remaining: bal.Remaining,
	})
}

// ListMyVacationRequests returns the caller's requests, newest first.
func (h *Handler) ListMyVacationRequests(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	requests, err := h.Store.ListRequestsByEmployee(r.Context(), claims.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	dtos := make([]VacationRequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toVacationRequestDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SubmitVacationRequest validates and persists a new vacation request.
func (h *Handler) SubmitVacationRequest(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	req, err := h.buildRequest(w, r, claims.EmployeeID)
	if err != nil {
		return // response already written
	}

	overlap, err := h.Store.HasOverlappingRequest(r.Context(), claims.EmployeeID, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check overlapping requests", err)
		return
	}
	if overlap {
		writeError(w, http.StatusConflict, "An existing request already covers part of this range", vacation.ErrRequestOverlap)
		return
	}

	if err := h.Store.SaveRequest(r.Context(), *req); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save request", err)
		return
	}

	h.notifySubmission(r, *req)

	writeJSON(w, http.StatusCreated, toVacationRequestDTO(*req))
}

// buildRequest parses and validates the submit payload, writing the error
// response itself when validation fails.
func (h *Handler) buildRequest(w http.ResponseWriter, r *http.Request, employeeID string) (*vacation.Request, error) {
	var body SubmitVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, err
	}

	start, err := vacation.ParseDate(body.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD", err)
		return nil, err
	}
	end, err := vacation.ParseDate(body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD", err)
		return nil, err
	}

	req, err := vacation.NewRequest(employeeID, start, end, body.Reason)
	if err != nil {
		if vacation.IsValidation(err) {
			writeError(w, http.StatusBadRequest, "Invalid vacation request", err)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to build request", err)
		}
		return nil, err
	}
	return req, nil
}

// ListPendingVacationRequests returns the admin approval queue.
func (h *Handler) ListPendingVacationRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListPendingRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending requests", err)
		return
	}

	dtos := make([]VacationRequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toVacationRequestDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApproveVacationRequest approves a pending request and moves the balance.
func (h *Handler) ApproveVacationRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, func(req *vacation.Request, adminID string) error {
		return req.Approve(adminID)
	}, "Solicitud de vacaciones aprobada")
}

// RejectVacationRequest rejects a pending request with a reason.
func (h *Handler) RejectVacationRequest(w http.ResponseWriter, r *http.Request) {
	var body RejectVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Reason == "" {
		writeError(w, http.StatusBadRequest, "A rejection reason is required", nil)
		return
	}

	h.resolveRequest(w, r, func(req *vacation.Request, adminID string) error {
		return req.Reject(adminID, body.Reason)
	}, "Solicitud de vacaciones rechazada")
}

func (h *Handler) resolveRequest(w http.ResponseWriter, r *http.Request,
	resolve func(*vacation.Request, string) error, notifyTitle string) {

	claims, _ := claimsFrom(r.Context())
	id := chi.URLParam(r, "id")

	req, err := h.Store.GetRequest(r.Context(), id)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Request not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}

	if err := resolve(req, claims.EmployeeID); err != nil {
		if errors.Is(err, vacation.ErrRequestNotPending) {
			writeError(w, http.StatusConflict, "Request is no longer pending", err)
			return
		}
		writeError(w, http.StatusBadRequest, "Cannot resolve request", err)
		return
	}

	if err := h.Store.ResolveRequest(r.Context(), *req); err != nil {
		if errors.Is(err, vacation.ErrRequestNotPending) {
			writeError(w, http.StatusConflict, "Request is no longer pending", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to resolve request", err)
		return
	}

	h.notify(r, req.EmployeeID, notifyTitle,
		fmt.Sprintf("Del %s al %s (%d días hábiles)", req.StartDate, req.EndDate, req.WorkingDays))

	writeJSON(w, http.StatusOK, toVacationRequestDTO(*req))
}

// GenerateVacationDocument renders the request DOCX and streams it back.
// The request record is persisted after a successful render; if that write
// fails the document is still delivered, flagged with X-Persistence-Warning.
func (h *Handler) GenerateVacationDocument(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	req, err := h.buildRequest(w, r, claims.EmployeeID)
	if err != nil {
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), claims.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	profile := vacation.Profile{
		ID:          emp.ID,
		FirstName:   emp.FirstName,
		LastName:    emp.LastName,
		DisplayName: emp.DisplayName,
		Title:       emp.Title,
		Position:    emp.Position,
		RegistryID:  emp.RegistryID,
		Email:       emp.Email,
	}

	var balance vacation.Balance
	if bal, err := h.Store.GetBalance(r.Context(), emp.ID, req.StartDate.Year()); err == nil {
		balance.Taken = &bal.Taken
		balance.Remaining = &bal.Remaining
	}

	doc, err := docgen.RenderRequest(profile, balance, *req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render document", err)
		return
	}

	// best-effort persistence: the employee keeps their document even if
	// the write fails, the response just carries a warning
	if err := h.persistGeneratedRequest(r, *req); err != nil {
		h.Logger.Warn("generated document not persisted",
			zap.String("employee_id", emp.ID),
			zap.String("request_id", req.ID),
			zap.Error(err))
		w.Header().Set("X-Persistence-Warning", "document generated but request was not saved")
	}

	docgen.DeliverHTTP(w, doc)
}

func (h *Handler) persistGeneratedRequest(r *http.Request, req vacation.Request) error {
	overlap, err := h.Store.HasOverlappingRequest(r.Context(), req.EmployeeID, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	if overlap {
		return vacation.ErrRequestOverlap
	}
	if err := h.Store.SaveRequest(r.Context(), req); err != nil {
		return err
	}
	h.notifySubmission(r, req)
	return nil
}

// notifySubmission tells the requester's manager about a new request, or
// every admin when no manager is set.
func (h *Handler) notifySubmission(r *http.Request, req vacation.Request) {
	title := "Nueva solicitud de vacaciones"
	body := fmt.Sprintf("Solicitud del %s al %s (%d días hábiles)",
		req.StartDate, req.EndDate, req.WorkingDays)

	emp, err := h.Store.GetEmployee(r.Context(), req.EmployeeID)
	if err == nil && emp.ManagerID != "" {
		h.notify(r, emp.ManagerID, title, body)
		return
	}
	h.notifyAdmins(r, title, body)
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// ListReceipts returns the caller's payroll receipts.
func (h *Handler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	year := 0
	if q := r.URL.Query().Get("year"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}
	period := r.URL.Query().Get("period")

	receipts, err := h.Store.ListReceipts(r.Context(), claims.EmployeeID, year, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list receipts", err)
		return
	}

	dtos := make([]ReceiptDTO, len(receipts))
	for i, rec := range receipts {
		dtos[i] = ReceiptDTO{
			ID:         rec.ID,
			Year:       rec.Year,
			Period:     rec.Period,
			Gross:      rec.Gross.StringFixed(2),
			Deductions: rec.Deductions.StringFixed(2),
			Net:        rec.Net.StringFixed(2),
			IssuedAt:   rec.IssuedAt.UTC().Format(time.RFC3339),
			Filename:   rec.Filename,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// DownloadReceipt streams a stored receipt artifact, scoped to its owner.
func (h *Handler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id := chi.URLParam(r, "id")

	rec, data, err := h.Store.GetReceiptData(r.Context(), id)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Receipt not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get receipt", err)
		return
	}
	if rec.EmployeeID != claims.EmployeeID && !claims.IsAdmin {
		writeError(w, http.StatusNotFound, "Receipt not found", nil)
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusNotFound, "Receipt has no stored artifact", nil)
		return
	}

	docgen.DeliverHTTP(w, &docgen.RenderedDocument{
		Filename:    rec.Filename,
		ContentType: rec.ContentType,
		Data:        data,
	})
}

// ExportReceipts streams an XLSX summary of the caller's receipts.
func (h *Handler) ExportReceipts(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	year := time.Now().Year()
	if q := r.URL.Query().Get("year"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	receipts, err := h.Store.ListReceipts(r.Context(), claims.EmployeeID, year, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list receipts", err)
		return
	}

	data, err := payroll.ExportXLSX(receipts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export receipts", err)
		return
	}

	docgen.DeliverHTTP(w, &docgen.RenderedDocument{
		Filename:    fmt.Sprintf("recibos_nomina_%d.xlsx", year),
		ContentType: payroll.MIMEExcel,
		Data:        data,
	})
}

// =============================================================================
// ORG CHART HANDLERS
// =============================================================================

// GetOrgChart returns the reporting tree. Concurrent callers share one build.
func (h *Handler) GetOrgChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Org.Chart(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build org chart", err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (h *Handler) orgMembers(ctx context.Context) ([]orgchart.Member, error) {
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]orgchart.Member, len(employees))
	for i, e := range employees {
		name := e.DisplayName
		if name == "" {
			name = e.FirstName + " " + e.LastName
		}
		members[i] = orgchart.Member{
			ID:         e.ID,
			Name:       name,
			Title:      e.Title,
			Department: e.Department,
			Email:      e.Email,
			ManagerID:  e.ManagerID,
		}
	}
	return members, nil
}

// =============================================================================
// NOTIFICATION HANDLERS
// =============================================================================

// ListNotifications returns the caller's feed (?unread=true for unread only).
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.Store.ListNotifications(r.Context(), claims.EmployeeID, unreadOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list notifications", err)
		return
	}

	dtos := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		dtos[i] = toNotificationDTO(n)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CountUnreadNotifications returns the caller's unread badge count.
func (h *Handler) CountUnreadNotifications(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	count, err := h.Store.CountUnreadNotifications(r.Context(), claims.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// MarkNotificationRead marks one notification read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Store.MarkNotificationRead(r.Context(), id, claims.EmployeeID); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Notification not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to mark notification", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// MarkAllNotificationsRead marks the whole feed read.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	n, err := h.Store.MarkAllNotificationsRead(r.Context(), claims.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to mark notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"marked": n})
}

// notify saves a notification for one employee; failures are logged, never
// surfaced to the triggering request.
func (h *Handler) notify(r *http.Request, employeeID, title, body string) {
	err := h.Store.SaveNotification(r.Context(), sqlite.Notification{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Title:      title,
		Body:       body,
		Category:   "vacation",
	})
	if err != nil {
		h.Logger.Warn("failed to save notification",
			zap.String("employee_id", employeeID), zap.Error(err))
	}
}

// notifyAdmins fans a notification out to every admin.
func (h *Handler) notifyAdmins(r *http.Request, title, body string) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.Logger.Warn("failed to list admins for notification", zap.Error(err))
		return
	}
	for _, e := range employees {
		if e.IsAdmin {
			h.notify(r, e.ID, title, body)
		}
	}
}

// =============================================================================
// ATTENDANCE HANDLERS (actions live in dispatch.go)
// =============================================================================

// GetTodayAttendance returns the caller's record for today, if any.
func (h *Handler) GetTodayAttendance(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	day := vacation.Today().String()

	rec, err := h.Store.GetAttendance(r.Context(), claims.EmployeeID, day)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			writeJSON(w, http.StatusOK, AttendanceDTO{Day: day})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get attendance", err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceDTO(rec))
}

// =============================================================================
// DOCUMENT HANDLERS
// =============================================================================

// ListDocuments returns the caller's stored documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	docs, err := h.Store.ListDocuments(r.Context(), claims.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list documents", err)
		return
	}

	dtos := make([]DocumentDTO, len(docs))
	for i, d := range docs {
		dtos[i] = toDocumentDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UploadDocument stores a multipart file upload for the caller.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "A 'file' field is required", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read upload", err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc := sqlite.Document{
		ID:          uuid.NewString(),
		EmployeeID:  claims.EmployeeID,
		Name:        docgen.AttachmentFilename(header.Filename),
		ContentType: contentType,
	}
	if err := h.Store.SaveDocument(r.Context(), doc, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save document", err)
		return
	}

	doc.Size = int64(len(data))
	writeJSON(w, http.StatusCreated, toDocumentDTO(doc))
}

// DownloadDocument streams a stored document, scoped to its owner.
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id := chi.URLParam(r, "id")

	doc, data, err := h.Store.GetDocumentData(r.Context(), id, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get document", err)
		return
	}

	docgen.DeliverHTTP(w, &docgen.RenderedDocument{
		Filename:    doc.Name,
		ContentType: doc.ContentType,
		Data:        data,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
