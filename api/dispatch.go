/*
dispatch.go - Tagged-action dispatch for the attendance endpoint

PURPOSE:
  POST /api/attendance accepts a small set of actions on one endpoint.
  Instead of a free-form action string feeding a switch, each action is a
  typed request variant registered in a dispatch table. Unknown actions
  fail before any parsing of the variant payload.

ACTIONS:
  check_in   Opens today's attendance record (one per employee per day)
  check_out  Closes today's open record
  status     Returns today's record without touching it
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coacharte/intranet/store/sqlite"
	"github.com/coacharte/intranet/vacation"
)

// attendanceEnvelope is the outer payload: the action tag plus the raw
// variant body, decoded only after the tag is recognized.
type attendanceEnvelope struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// attendanceAction executes one recognized action and returns the response
// body or an error already mapped to a status code.
type attendanceAction func(h *Handler, r *http.Request, payload json.RawMessage) (any, int, error)

// attendanceActions is the dispatch table. Adding an action means adding
// a variant type and one entry here.
var attendanceActions = map[string]attendanceAction{
	"check_in":  doCheckIn,
	"check_out": doCheckOut,
	"status":    doAttendanceStatus,
}

// AttendanceAction routes a tagged attendance action to its handler.
func (h *Handler) AttendanceAction(w http.ResponseWriter, r *http.Request) {
	var env attendanceEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	action, ok := attendanceActions[env.Action]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown action: "+env.Action, nil)
		return
	}

	body, status, err := action(h, r, env.Payload)
	if err != nil {
		writeError(w, status, err.Error(), nil)
		return
	}
	writeJSON(w, status, body)
}

// checkInPayload is the optional variant body for check_in.
type checkInPayload struct {
	Note string `json:"note,omitempty"`
}

func doCheckIn(h *Handler, r *http.Request, payload json.RawMessage) (any, int, error) {
	claims, _ := claimsFrom(r.Context())

	var p checkInPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, http.StatusBadRequest, errors.New("invalid check_in payload")
		}
	}

	now := time.Now()
	rec := sqlite.AttendanceRecord{
		ID:         uuid.NewString(),
		EmployeeID: claims.EmployeeID,
		Day:        vacation.DateOf(now).String(),
		CheckIn:    now,
		Note:       strings.TrimSpace(p.Note),
	}
	if err := h.Store.CheckIn(r.Context(), rec); err != nil {
		if errors.Is(err, sqlite.ErrDuplicateCheckIn) {
			return nil, http.StatusConflict, err
		}
		return nil, http.StatusInternalServerError, errors.New("failed to record check-in")
	}
	return toAttendanceDTO(&rec), http.StatusCreated, nil
}

func doCheckOut(h *Handler, r *http.Request, _ json.RawMessage) (any, int, error) {
	claims, _ := claimsFrom(r.Context())

	now := time.Now()
	day := vacation.DateOf(now).String()
	if err := h.Store.CheckOut(r.Context(), claims.EmployeeID, day, now); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return nil, http.StatusConflict, errors.New("no open check-in for today")
		}
		return nil, http.StatusInternalServerError, errors.New("failed to record check-out")
	}

	rec, err := h.Store.GetAttendance(r.Context(), claims.EmployeeID, day)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to reload attendance")
	}
	return toAttendanceDTO(rec), http.StatusOK, nil
}

func doAttendanceStatus(h *Handler, r *http.Request, _ json.RawMessage) (any, int, error) {
	claims, _ := claimsFrom(r.Context())

	day := vacation.Today().String()
	rec, err := h.Store.GetAttendance(r.Context(), claims.EmployeeID, day)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return AttendanceDTO{Day: day}, http.StatusOK, nil
		}
		return nil, http.StatusInternalServerError, errors.New("failed to get attendance")
	}
	return toAttendanceDTO(rec), http.StatusOK, nil
}
