package api

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coacharte/intranet/auth"
	"github.com/coacharte/intranet/payroll"
	"github.com/coacharte/intranet/store/sqlite"
)

// =============================================================================
// TEST HARNESS
// =============================================================================

type testServer struct {
	handler *Handler
	router  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	h := NewHandler(store, tokens, zap.NewNop())

	return &testServer{
		handler: h,
		router:  NewRouter(h, []string{"*"}),
	}
}

func (ts *testServer) seedEmployee(t *testing.T, email, password string, admin bool) sqlite.Employee {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	e := sqlite.Employee{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "José",
		LastName:     "Ñúñez",
		Title:        "Consultor Senior",
		RegistryID:   "EMP-042",
		Active:       true,
		IsAdmin:      admin,
	}
	require.NoError(t, ts.handler.Store.SaveEmployee(context.Background(), e))
	return e
}

func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := ts.do(t, "POST", "/api/auth/login", "", LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func seedReceipt(t *testing.T, ts *testServer, employeeID string, year int, period, filename string) string {
	t.Helper()

	r := payroll.Receipt{
		ID:          uuid.NewString(),
		EmployeeID:  employeeID,
		Year:        year,
		Period:      period,
		Gross:       decimal.NewFromInt(25000),
		Deductions:  decimal.NewFromInt(5000),
		Net:         decimal.NewFromInt(20000),
		IssuedAt:    time.Now(),
		Filename:    filename,
		ContentType: "application/pdf",
	}
	require.NoError(t, ts.handler.Store.SaveReceipt(context.Background(), r, []byte("pdf-bytes")))
	return r.ID
}

// =============================================================================
// HEALTH
// =============================================================================

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

// =============================================================================
// AUTH
// =============================================================================

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)

	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	rec := ts.do(t, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me EmployeeDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "jose@coacharte.mx", me.Email)
	assert.Equal(t, "José", me.FirstName)
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)

	rec := ts.do(t, "POST", "/api/auth/login", "",
		LoginRequest{Email: "jose@coacharte.mx", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// unknown account answers the same way
	rec = ts.do(t, "POST", "/api/auth/login", "",
		LoginRequest{Email: "nobody@coacharte.mx", Password: "whatever"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "GET", "/api/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "GET", "/api/employees", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	rec := ts.do(t, "POST", "/api/auth/change-password", token,
		ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "nuevaclave9"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "POST", "/api/auth/change-password", token,
		ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "corta"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, "POST", "/api/auth/change-password", token,
		ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "nuevaclave9"})
	require.Equal(t, http.StatusOK, rec.Code)

	ts.login(t, "jose@coacharte.mx", "nuevaclave9")
}

// =============================================================================
// VACATION LIFECYCLE
// =============================================================================

func TestVacationRequestLifecycle(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedEmployee(t, "admin@coacharte.mx", "adminclave1", true)
	emp := ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	adminToken := ts.login(t, "admin@coacharte.mx", "adminclave1")
	empToken := ts.login(t, "jose@coacharte.mx", "secreto123")

	require.NoError(t, ts.handler.Store.SaveBalance(context.Background(), sqlite.BalanceRecord{
		EmployeeID: emp.ID, Year: 2025, Available: 12, Taken: 0, Remaining: 12,
	}))

	// submit: Mon Jan 6 through Fri Jan 10 2025 is five working days
	rec := ts.do(t, "POST", "/api/vacation/requests", empToken, SubmitVacationRequest{
		StartDate: "2025-01-06", EndDate: "2025-01-10", Reason: "Vacaciones familiares",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created VacationRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 5, created.WorkingDays)
	assert.Equal(t, "pending", created.Status)

	// the pending queue is admin-only
	rec = ts.do(t, "GET", "/api/vacation/requests/pending", empToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, "GET", "/api/vacation/requests/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []VacationRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)

	// the submission notified the admin
	count, err := ts.handler.Store.CountUnreadNotifications(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// approve
	rec = ts.do(t, "POST", "/api/vacation/requests/"+created.ID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var approved VacationRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	assert.Equal(t, "approved", approved.Status)

	// balance moved with the approval
	rec = ts.do(t, "GET", "/api/vacation/balance?year=2025", empToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bal BalanceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bal))
	assert.Equal(t, 5.0, bal.Taken)
	assert.Equal(t, 7.0, bal.Remaining)

	// the requester was notified of the resolution
	count, err = ts.handler.Store.CountUnreadNotifications(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// a second approval attempt conflicts
	rec = ts.do(t, "POST", "/api/vacation/requests/"+created.ID+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitVacationRequest_Overlap(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	rec := ts.do(t, "POST", "/api/vacation/requests", token, SubmitVacationRequest{
		StartDate: "2025-01-06", EndDate: "2025-01-10", Reason: "Vacaciones",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, "POST", "/api/vacation/requests", token, SubmitVacationRequest{
		StartDate: "2025-01-10", EndDate: "2025-01-14", Reason: "Más vacaciones",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRejectVacationRequest_RequiresReason(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "admin@coacharte.mx", "adminclave1", true)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	adminToken := ts.login(t, "admin@coacharte.mx", "adminclave1")
	empToken := ts.login(t, "jose@coacharte.mx", "secreto123")

	rec := ts.do(t, "POST", "/api/vacation/requests", empToken, SubmitVacationRequest{
		StartDate: "2025-02-03", EndDate: "2025-02-07", Reason: "Viaje",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created VacationRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = ts.do(t, "POST", "/api/vacation/requests/"+created.ID+"/reject", adminToken,
		RejectVacationRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, "POST", "/api/vacation/requests/"+created.ID+"/reject", adminToken,
		RejectVacationRequest{Reason: "periodo bloqueado"})
	require.Equal(t, http.StatusOK, rec.Code)

	var rejected VacationRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rejected))
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "periodo bloqueado", rejected.RejectionReason)
}

// =============================================================================
// DOCUMENT GENERATION
// =============================================================================

func TestGenerateVacationDocument(t *testing.T) {
	ts := newTestServer(t)
	emp := ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	require.NoError(t, ts.handler.Store.SaveBalance(context.Background(), sqlite.BalanceRecord{
		EmployeeID: emp.ID, Year: 2025, Available: 12, Taken: 2, Remaining: 10,
	}))

	rec := ts.do(t, "POST", "/api/vacation/generate-document", token, SubmitVacationRequest{
		StartDate: "2025-01-06", EndDate: "2025-01-10", Reason: "Vacaciones familiares",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Solicitud_Vacaciones_")
	assert.Empty(t, rec.Header().Get("X-Persistence-Warning"))

	// the body is a well-formed DOCX with every placeholder resolved
	doc := readDocumentXML(t, rec.Body.Bytes())
	assert.NotContains(t, doc, "{{")
	assert.Contains(t, doc, "lunes 6 de enero de 2025")
	assert.Contains(t, doc, "Días hábiles solicitados: 5")

	// the request record landed alongside the download
	rec = ts.do(t, "GET", "/api/vacation/requests", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var requests []VacationRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &requests))
	require.Len(t, requests, 1)
	assert.Equal(t, 5, requests[0].WorkingDays)
}

func TestGenerateVacationDocument_WeekendOnly(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	// Sat Jan 11 through Sun Jan 12 2025 holds no working days, so the
	// request dies in validation before any rendering
	rec := ts.do(t, "POST", "/api/vacation/generate-document", token, SubmitVacationRequest{
		StartDate: "2025-01-11", EndDate: "2025-01-12", Reason: "Fin de semana",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestGenerateVacationDocument_PersistenceWarning(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	// an existing request makes the post-render save fail on overlap
	rec := ts.do(t, "POST", "/api/vacation/requests", token, SubmitVacationRequest{
		StartDate: "2025-01-06", EndDate: "2025-01-10", Reason: "Vacaciones",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, "POST", "/api/vacation/generate-document", token, SubmitVacationRequest{
		StartDate: "2025-01-08", EndDate: "2025-01-10", Reason: "Vacaciones otra vez",
	})

	// partial success: the document still downloads, flagged
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Persistence-Warning"))
	doc := readDocumentXML(t, rec.Body.Bytes())
	assert.NotContains(t, doc, "{{")
}

func readDocumentXML(t *testing.T, data []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			content, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(content)
		}
	}
	t.Fatal("word/document.xml not found in response")
	return ""
}

// =============================================================================
// ATTENDANCE DISPATCH
// =============================================================================

func attendanceBody(action string) map[string]string {
	return map[string]string{"action": action}
}

func TestAttendanceDispatch(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	// status before any check-in: empty record for today
	rec := ts.do(t, "POST", "/api/attendance", token, attendanceBody("status"))
	require.Equal(t, http.StatusOK, rec.Code)
	var status AttendanceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Empty(t, status.CheckIn)

	// check in with a note
	rec = ts.do(t, "POST", "/api/attendance", token, map[string]any{
		"action":  "check_in",
		"payload": map[string]string{"note": "home office"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var opened AttendanceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))
	assert.Equal(t, "home office", opened.Note)

	// a second check-in the same day conflicts
	rec = ts.do(t, "POST", "/api/attendance", token, attendanceBody("check_in"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// check out closes the record
	rec = ts.do(t, "POST", "/api/attendance", token, attendanceBody("check_out"))
	require.Equal(t, http.StatusOK, rec.Code)
	var closed AttendanceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &closed))
	assert.False(t, closed.Open)
	assert.NotEmpty(t, closed.CheckOut)

	// nothing left open to check out of
	rec = ts.do(t, "POST", "/api/attendance", token, attendanceBody("check_out"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// unknown actions fail before dispatch
	rec = ts.do(t, "POST", "/api/attendance", token, attendanceBody("take_nap"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// GET /today agrees with the dispatch view
	rec = ts.do(t, "GET", "/api/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var today AttendanceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &today))
	assert.False(t, today.Open)
	assert.Equal(t, "home office", today.Note)
}

// =============================================================================
// PAYROLL
// =============================================================================

func TestPayrollReceipts(t *testing.T) {
	ts := newTestServer(t)
	emp := ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	other := ts.seedEmployee(t, "otro@coacharte.mx", "secreto456", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	seedReceipt(t, ts, emp.ID, 2025, "2025-01", "recibo_enero.pdf")
	seedReceipt(t, ts, emp.ID, 2025, "2025-02", "recibo_febrero.pdf")
	otherID := seedReceipt(t, ts, other.ID, 2025, "2025-01", "ajeno.pdf")

	rec := ts.do(t, "GET", "/api/payroll/receipts?year=2025", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var receipts []ReceiptDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipts))
	assert.Len(t, receipts, 2)

	// download one
	rec = ts.do(t, "GET", "/api/payroll/receipts/"+receipts[0].ID+"/download", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "pdf-bytes", rec.Body.String())

	// someone else's receipt does not exist for this caller
	rec = ts.do(t, "GET", "/api/payroll/receipts/"+otherID+"/download", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// XLSX export
	rec = ts.do(t, "GET", "/api/payroll/receipts/export?year=2025", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

// =============================================================================
// ORG CHART
// =============================================================================

func TestOrgChartEndpoint(t *testing.T) {
	ts := newTestServer(t)
	boss := ts.seedEmployee(t, "directora@coacharte.mx", "clavejefa1", true)
	report := ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	report.ManagerID = boss.ID
	require.NoError(t, ts.handler.Store.SaveEmployee(context.Background(), report))
	token := ts.login(t, "directora@coacharte.mx", "clavejefa1")

	rec := ts.do(t, "GET", "/api/orgchart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var roots []struct {
		ID      string `json:"id"`
		Reports []struct {
			ID string `json:"id"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roots))
	require.Len(t, roots, 1)
	assert.Equal(t, boss.ID, roots[0].ID)
	require.Len(t, roots[0].Reports, 1)
	assert.Equal(t, report.ID, roots[0].Reports[0].ID)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func TestNotificationEndpoints(t *testing.T) {
	ts := newTestServer(t)
	emp := ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	for i := 0; i < 2; i++ {
		require.NoError(t, ts.handler.Store.SaveNotification(context.Background(), sqlite.Notification{
			ID: uuid.NewString(), EmployeeID: emp.ID, Title: "Aviso", Category: "general",
		}))
	}

	rec := ts.do(t, "GET", "/api/notifications/unread-count", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unread": 2}`, rec.Body.String())

	rec = ts.do(t, "GET", "/api/notifications?unread=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var feed []NotificationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 2)

	rec = ts.do(t, "POST", "/api/notifications/"+feed[0].ID+"/read", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, "POST", "/api/notifications/read-all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"marked": 1}`, rec.Body.String())
}

// =============================================================================
// DOCUMENTS
// =============================================================================

func TestDocumentUploadAndDownload(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	// multipart upload
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "contrato firmado.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("pdf-contents"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var uploaded DocumentDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	assert.Equal(t, "contrato_firmado.pdf", uploaded.Name)
	assert.Equal(t, int64(len("pdf-contents")), uploaded.Size)

	// list
	listRec := ts.do(t, "GET", "/api/documents", token, nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var docs []DocumentDTO
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &docs))
	require.Len(t, docs, 1)

	// download
	dlRec := ts.do(t, "GET", "/api/documents/"+uploaded.ID+"/download", token, nil)
	require.Equal(t, http.StatusOK, dlRec.Code)
	assert.Equal(t, "pdf-contents", dlRec.Body.String())
	assert.Contains(t, dlRec.Header().Get("Content-Disposition"), "contrato_firmado.pdf")

	// another employee cannot see it
	ts.seedEmployee(t, "otro@coacharte.mx", "secreto456", false)
	otherToken := ts.login(t, "otro@coacharte.mx", "secreto456")
	rec404 := ts.do(t, "GET", "/api/documents/"+uploaded.ID+"/download", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec404.Code)
}

// =============================================================================
// PROFILE UPDATES
// =============================================================================

func TestUpdateProfile(t *testing.T) {
	ts := newTestServer(t)
	ts.seedEmployee(t, "jose@coacharte.mx", "secreto123", false)
	token := ts.login(t, "jose@coacharte.mx", "secreto123")

	rec := ts.do(t, "PUT", "/api/employees/me", token, UpdateProfileRequest{
		Phone: "55 1234 5678", DisplayName: "Pepe Ñúñez",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated EmployeeDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "55 1234 5678", updated.Phone)
	assert.Equal(t, "Pepe Ñúñez", updated.DisplayName)
}
