/*
Package sqlite provides the SQLite-backed persistence layer for the intranet.

PURPOSE:
  Holds everything the intranet keeps server-side: employee rows (with
  credentials), vacation balances and requests, payroll receipt artifacts,
  notifications, attendance records and stored documents.

KEY TABLES:
  employees:          Profile + credentials + org placement
  vacation_balances:  Per-employee per-year balance snapshot
  vacation_requests:  Request lifecycle records
  payroll_receipts:   Structured amounts + stored artifact blob
  notifications:      Per-employee notification feed
  attendance_records: One row per employee per day (unique index)
  documents:          Per-employee stored files

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of go-sqlite3. SQLite runs in
  WAL mode with foreign keys on.

ERROR MAPPING:
  Unique-index violations surface as package sentinels (ErrDuplicateEmail,
  ErrDuplicateCheckIn) so handlers can answer 409 without string matching
  at the boundary.

USAGE:
  store, err := sqlite.New("./data/intranet.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/coacharte/intranet/payroll"
	"github.com/coacharte/intranet/vacation"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an employee email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateCheckIn is returned on a second check-in for the same day.
	ErrDuplicateCheckIn = errors.New("already checked in for this day")
)

// Store implements all persistence for the intranet service.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
/// Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		display_name TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT '',
		registry_id TEXT NOT NULL DEFAULT '',
		manager_id TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		hire_date TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_email ON employees(email);
	CREATE INDEX IF NOT EXISTS idx_employees_manager ON employees(manager_id);

	CREATE TABLE IF NOT EXISTS vacation_balances (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		available REAL NOT NULL DEFAULT 0,
		taken REAL NOT NULL DEFAULT 0,
		remaining REAL NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, year)
	);

	CREATE TABLE IF NOT EXISTS vacation_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		working_days INTEGER NOT NULL,
		reason TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		submitted_at TEXT NOT NULL,
		resolved_at TEXT,
		resolved_by TEXT,
		rejection_reason TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee ON vacation_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status ON vacation_requests(status);
	CREATE INDEX IF NOT EXISTS idx_requests_employee_dates
		ON vacation_requests(employee_id, start_date, end_date);

	CREATE TABLE IF NOT EXISTS payroll_receipts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		period TEXT NOT NULL,
		gross TEXT NOT NULL,
		deductions TEXT NOT NULL,
		net TEXT NOT NULL,
		issued_at TEXT NOT NULL,
		filename TEXT NOT NULL DEFAULT '',
		content_type TEXT NOT NULL DEFAULT '',
		data BLOB,
		UNIQUE (employee_id, year, period)
	);

	CREATE INDEX IF NOT EXISTS idx_receipts_employee_year
		ON payroll_receipts(employee_id, year);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'general',
		read_at TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_employee
		ON notifications(employee_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS attendance_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		day TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT,
		note TEXT NOT NULL DEFAULT ''
	);

	-- one attendance row per employee per day
	CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_employee_day
		ON attendance_records(employee_id, day);

	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		name TEXT NOT NULL,
		content_type TEXT NOT NULL DEFAULT 'application/octet-stream',
		size INTEGER NOT NULL DEFAULT 0,
		data BLOB,
		uploaded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_employee
		ON documents(employee_id, uploaded_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// Employee is an employee row.
type Employee struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	DisplayName  string
	Title        string
	Position     string
	RegistryID   string
	ManagerID    string
	Department   string
	Phone        string
	HireDate     string
	Active       bool
	IsAdmin      bool
	CreatedAt    time.Time
}

const employeeColumns = `id, email, password_hash, first_name, last_name, display_name,
	title, position, registry_id, manager_id, department, phone, hire_date,
	active, is_admin, created_at`

// SaveEmployee inserts or replaces an employee row.
func (s *Store) SaveEmployee(ctx context.Context, e Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	// upsert on id; a conflicting email still trips the unique index
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			password_hash = excluded.password_hash,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			display_name = excluded.display_name,
			title = excluded.title,
			position = excluded.position,
			registry_id = excluded.registry_id,
			manager_id = excluded.manager_id,
			department = excluded.department,
			phone = excluded.phone,
			hire_date = excluded.hire_date,
			active = excluded.active,
			is_admin = excluded.is_admin`,
		e.ID, e.Email, e.PasswordHash, e.FirstName, e.LastName, e.DisplayName,
		e.Title, e.Position, e.RegistryID, e.ManagerID, e.Department, e.Phone,
		e.HireDate, e.Active, e.IsAdmin, e.CreatedAt.Format(time.RFC3339),
	)
	if isUniqueConstraintError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func scanEmployee(row interface{ Scan(...any) error }) (*Employee, error) {
	var e Employee
	var createdAt string
	err := row.Scan(&e.ID, &e.Email, &e.PasswordHash, &e.FirstName, &e.LastName,
		&e.DisplayName, &e.Title, &e.Position, &e.RegistryID, &e.ManagerID,
		&e.Department, &e.Phone, &e.HireDate, &e.Active, &e.IsAdmin, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &e, nil
}

// GetEmployee returns an employee by id.
func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

// GetEmployeeByEmail returns an employee by email.
func (s *Store) GetEmployeeByEmail(ctx context.Context, email string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = ?`, email)
	return scanEmployee(row)
}

// ListEmployees returns all active employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE active ORDER BY first_name, last_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// UpdateEmployeeContact updates the self-editable contact fields.
func (s *Store) UpdateEmployeeContact(ctx context.Context, id, phone, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE employees SET phone = ?, display_name = ? WHERE id = ?`,
		phone, displayName, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetPasswordHash replaces an employee's stored password hash.
func (s *Store) SetPasswordHash(ctx context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE employees SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// =============================================================================
// VACATION BALANCES
// =============================================================================

// BalanceRecord is a per-year balance snapshot row.
type BalanceRecord struct {
	EmployeeID string
	Year       int
	Available  float64
	Taken      float64
	Remaining  float64
	UpdatedAt  time.Time
}

// SaveBalance inserts or replaces a balance snapshot.
func (s *Store) SaveBalance(ctx context.Context, b BalanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO vacation_balances
		(employee_id, year, available, taken, remaining, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.EmployeeID, b.Year, b.Available, b.Taken, b.Remaining,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetBalance returns the balance snapshot for an employee and year.
func (s *Store) GetBalance(ctx context.Context, employeeID string, year int) (*BalanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b BalanceRecord
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT employee_id, year, available, taken, remaining, updated_at
		FROM vacation_balances WHERE employee_id = ? AND year = ?`,
		employeeID, year,
	).Scan(&b.EmployeeID, &b.Year, &b.Available, &b.Taken, &b.Remaining, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &b, nil
}

// =============================================================================
// VACATION REQUESTS
// =============================================================================

const requestColumns = `id, employee_id, start_date, end_date, working_days,
	reason, status, submitted_at, resolved_at, resolved_by, rejection_reason`

// SaveRequest inserts a vacation request record.
func (s *Store) SaveRequest(ctx context.Context, r vacation.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vacation_requests (`+requestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.EmployeeID, r.StartDate.String(), r.EndDate.String(),
		r.WorkingDays, r.Reason, string(r.Status),
		r.SubmittedAt.UTC().Format(time.RFC3339),
		nullTime(r.ResolvedAt), nullString(r.ResolvedBy), nullString(r.RejectionReason))
	return err
}

func scanRequest(row interface{ Scan(...any) error }) (*vacation.Request, error) {
	var r vacation.Request
	var start, end, submitted, status string
	var resolvedAt, resolvedBy, rejection sql.NullString

	err := row.Scan(&r.ID, &r.EmployeeID, &start, &end, &r.WorkingDays,
		&r.Reason, &status, &submitted, &resolvedAt, &resolvedBy, &rejection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	r.Status = vacation.Status(status)
	if r.StartDate, err = vacation.ParseDate(start); err != nil {
		return nil, err
	}
	if r.EndDate, err = vacation.ParseDate(end); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, submitted); err == nil {
		r.SubmittedAt = t
		r.SubmittedOn = vacation.DateOf(t)
	}
	if resolvedAt.Valid {
		if t, err := time.Parse(time.RFC3339, resolvedAt.String); err == nil {
			r.ResolvedAt = &t
		}
	}
	r.ResolvedBy = resolvedBy.String
	r.RejectionReason = rejection.String
	return &r, nil
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]vacation.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []vacation.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// GetRequest returns a request by id.
func (s *Store) GetRequest(ctx context.Context, id string) (*vacation.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM vacation_requests WHERE id = ?`, id)
	return scanRequest(row)
}

// ListRequestsByEmployee returns an employee's requests, newest first.
func (s *Store) ListRequestsByEmployee(ctx context.Context, employeeID string) ([]vacation.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx, `
		SELECT `+requestColumns+` FROM vacation_requests
		WHERE employee_id = ? ORDER BY submitted_at DESC`, employeeID)
}

// ListPendingRequests returns all pending requests, oldest first.
func (s *Store) ListPendingRequests(ctx context.Context) ([]vacation.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx, `
		SELECT `+requestColumns+` FROM vacation_requests
		WHERE status = ? ORDER BY submitted_at ASC`, string(vacation.StatusPending))
}

// HasOverlappingRequest reports whether the employee already has a pending
// or approved request sharing a day with [start, end].
func (s *Store) HasOverlappingRequest(ctx context.Context, employeeID string, start, end vacation.Date) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vacation_requests
		WHERE employee_id = ? AND status IN ('pending', 'approved')
		  AND start_date <= ? AND end_date >= ?`,
		employeeID, end.String(), start.String(),
	).Scan(&count)
	return count > 0, err
}

// ResolveRequest persists an approval or rejection. For approvals the
// balance movement (taken += workingDays, remaining -= workingDays) happens
// in the same database transaction as the status flip.
func (s *Store) ResolveRequest(ctx context.Context, r vacation.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin resolve: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE vacation_requests
		SET status = ?, resolved_at = ?, resolved_by = ?, rejection_reason = ?
		WHERE id = ? AND status = 'pending'`,
		string(r.Status), nullTime(r.ResolvedAt), nullString(r.ResolvedBy),
		nullString(r.RejectionReason), r.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return vacation.ErrRequestNotPending
	}

	if r.Status == vacation.StatusApproved {
		// Upsert: an employee with no snapshot for the year still gets the
		// approved days recorded (taken goes up, remaining goes negative
		// until HR seeds the allowance).
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vacation_balances
			(employee_id, year, available, taken, remaining, updated_at)
			VALUES (?, ?, 0, ?, ?, ?)
			ON CONFLICT(employee_id, year) DO UPDATE SET
				taken = taken + excluded.taken,
				remaining = remaining - excluded.taken,
				updated_at = excluded.updated_at`,
			r.EmployeeID, r.StartDate.Year(),
			r.WorkingDays, -r.WorkingDays,
			time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// =============================================================================
// PAYROLL RECEIPTS
// =============================================================================

const receiptColumns = `r.id, r.employee_id,
	TRIM(e.first_name || ' ' || e.last_name),
	r.year, r.period, r.gross, r.deductions, r.net, r.issued_at,
	r.filename, r.content_type`

// SaveReceipt inserts a payroll receipt with its stored artifact.
func (s *Store) SaveReceipt(ctx context.Context, r payroll.Receipt, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payroll_receipts
		(id, employee_id, year, period, gross, deductions, net, issued_at,
		 filename, content_type, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.EmployeeID, r.Year, r.Period,
		r.Gross.String(), r.Deductions.String(), r.Net.String(),
		r.IssuedAt.UTC().Format(time.RFC3339),
		r.Filename, r.ContentType, data)
	return err
}

func decodeReceipt(r *payroll.Receipt, gross, deductions, net, issuedAt string) error {
	var err error
	if r.Gross, err = decimal.NewFromString(gross); err != nil {
		return fmt.Errorf("receipt %s gross: %w", r.ID, err)
	}
	if r.Deductions, err = decimal.NewFromString(deductions); err != nil {
		return fmt.Errorf("receipt %s deductions: %w", r.ID, err)
	}
	if r.Net, err = decimal.NewFromString(net); err != nil {
		return fmt.Errorf("receipt %s net: %w", r.ID, err)
	}
	r.IssuedAt, _ = time.Parse(time.RFC3339, issuedAt)
	return nil
}

// ListReceipts returns an employee's receipts, optionally filtered by year
// and period. Pass year 0 / period "" for no filter.
func (s *Store) ListReceipts(ctx context.Context, employeeID string, year int, period string) ([]payroll.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + receiptColumns + `
		FROM payroll_receipts r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id = ?`
	args := []any{employeeID}
	if year != 0 {
		query += ` AND r.year = ?`
		args = append(args, year)
	}
	if period != "" {
		query += ` AND r.period = ?`
		args = append(args, period)
	}
	query += ` ORDER BY r.issued_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []payroll.Receipt
	for rows.Next() {
		var r payroll.Receipt
		var gross, deductions, net, issuedAt string
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.Year, &r.Period,
			&gross, &deductions, &net, &issuedAt, &r.Filename, &r.ContentType); err != nil {
			return nil, err
		}
		if err := decodeReceipt(&r, gross, deductions, net, issuedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetReceiptData returns a receipt's metadata and stored artifact bytes.
func (s *Store) GetReceiptData(ctx context.Context, id string) (*payroll.Receipt, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r payroll.Receipt
	var gross, deductions, net, issuedAt string
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT `+receiptColumns+`, r.data
		FROM payroll_receipts r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = ?`, id,
	).Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.Year, &r.Period,
		&gross, &deductions, &net, &issuedAt, &r.Filename, &r.ContentType, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if err := decodeReceipt(&r, gross, deductions, net, issuedAt); err != nil {
		return nil, nil, err
	}
	return &r, data, nil
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// Notification is one feed entry for one employee.
type Notification struct {
	ID         string
	EmployeeID string
	Title      string
	Body       string
	Category   string
	ReadAt     *time.Time
	CreatedAt  time.Time
}

// SaveNotification inserts a notification.
func (s *Store) SaveNotification(ctx context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, employee_id, title, body, category, read_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.EmployeeID, n.Title, n.Body, n.Category,
		nullTime(n.ReadAt), n.CreatedAt.Format(time.RFC3339))
	return err
}

// ListNotifications returns an employee's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, title, body, category, read_at, created_at
		FROM notifications WHERE employee_id = ?`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var readAt sql.NullString
		var createdAt string
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Title, &n.Body, &n.Category, &readAt, &createdAt); err != nil {
			return nil, err
		}
		if readAt.Valid {
			if t, err := time.Parse(time.RFC3339, readAt.String); err == nil {
				n.ReadAt = &t
			}
		}
		n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountUnreadNotifications returns the unread count for an employee.
func (s *Store) CountUnreadNotifications(ctx context.Context, employeeID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE employee_id = ? AND read_at IS NULL`,
		employeeID).Scan(&count)
	return count, err
}

// MarkNotificationRead marks one notification read; scoped to the owner.
func (s *Store) MarkNotificationRead(ctx context.Context, id, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET read_at = ?
		WHERE id = ? AND employee_id = ? AND read_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id, employeeID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// MarkAllNotificationsRead marks every unread notification read and
// returns how many were flipped.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, employeeID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET read_at = ?
		WHERE employee_id = ? AND read_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), employeeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// AttendanceRecord is one employee's attendance for one day.
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Day        string // "2006-01-02"
	CheckIn    time.Time
	CheckOut   *time.Time
	Note       string
}

// CheckIn records the start of a working day. A second check-in for the
// same employee and day returns ErrDuplicateCheckIn.
func (s *Store) CheckIn(ctx context.Context, rec AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_records (id, employee_id, day, check_in, check_out, note)
		VALUES (?, ?, ?, ?, NULL, ?)`,
		rec.ID, rec.EmployeeID, rec.Day, rec.CheckIn.UTC().Format(time.RFC3339),
		rec.Note)
	if isUniqueConstraintError(err) {
		return ErrDuplicateCheckIn
	}
	return err
}

// CheckOut stamps the end of the day on an open attendance record.
func (s *Store) CheckOut(ctx context.Context, employeeID, day string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE attendance_records SET check_out = ?
		WHERE employee_id = ? AND day = ? AND check_out IS NULL`,
		at.UTC().Format(time.RFC3339), employeeID, day)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetAttendance returns the attendance record for an employee and day.
func (s *Store) GetAttendance(ctx context.Context, employeeID, day string) (*AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec AttendanceRecord
	var checkIn string
	var checkOut sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, day, check_in, check_out, note
		FROM attendance_records WHERE employee_id = ? AND day = ?`,
		employeeID, day,
	).Scan(&rec.ID, &rec.EmployeeID, &rec.Day, &checkIn, &checkOut, &rec.Note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec.CheckIn, _ = time.Parse(time.RFC3339, checkIn)
	if checkOut.Valid {
		if t, err := time.Parse(time.RFC3339, checkOut.String); err == nil {
			rec.CheckOut = &t
		}
	}
	return &rec, nil
}

// =============================================================================
// DOCUMENTS
// =============================================================================

// Document is stored file metadata; bytes live in the same row.
type Document struct {
	ID          string
	EmployeeID  string
	Name        string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

// SaveDocument stores a document with its bytes.
func (s *Store) SaveDocument(ctx context.Context, d Document, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, employee_id, name, content_type, size, data, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.EmployeeID, d.Name, d.ContentType, int64(len(data)), data,
		d.UploadedAt.Format(time.RFC3339))
	return err
}

// ListDocuments returns an employee's document metadata, newest first.
func (s *Store) ListDocuments(ctx context.Context, employeeID string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, name, content_type, size, uploaded_at
		FROM documents WHERE employee_id = ? ORDER BY uploaded_at DESC`,
		employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		var uploadedAt string
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Name, &d.ContentType, &d.Size, &uploadedAt); err != nil {
			return nil, err
		}
		d.UploadedAt, _ = time.Parse(time.RFC3339, uploadedAt)
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDocumentData returns a document's metadata and bytes, scoped to the owner.
func (s *Store) GetDocumentData(ctx context.Context, id, employeeID string) (*Document, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var d Document
	var uploadedAt string
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, name, content_type, size, data, uploaded_at
		FROM documents WHERE id = ? AND employee_id = ?`,
		id, employeeID,
	).Scan(&d.ID, &d.EmployeeID, &d.Name, &d.ContentType, &d.Size, &data, &uploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	d.UploadedAt, _ = time.Parse(time.RFC3339, uploadedAt)
	return &d, data, nil
}
