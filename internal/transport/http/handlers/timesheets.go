package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"payclock/internal/domain/punch"
	"payclock/internal/domain/timesheet"
	"payclock/internal/transport/http/api"
	"payclock/internal/transport/http/middleware"
	"payclock/internal/transport/http/shared"
)

type TimesheetHandler struct {
	sheets   *timesheet.Service
	detector *punch.Detector
}

func NewTimesheetHandler(sheets *timesheet.Service, detector *punch.Detector) *TimesheetHandler {
	return &TimesheetHandler{sheets: sheets, detector: detector}
}

func (h *TimesheetHandler) List(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	sheets, err := h.sheets.List(r.Context())
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, sheets, reqID)
}

func (h *TimesheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	sheet, err := h.sheets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, sheet, reqID)
}

// MissingDays lists the sheet's workdays with neither a clock punch nor
// covering leave; the review UI asks before approving a short week.
func (h *TimesheetHandler) MissingDays(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	sheet, err := h.sheets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	missing, err := h.detector.MissingDays(r.Context(), sheet.EmployeeName, sheet.WeekEnding)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, missing, reqID)
}

type manualTimesheetRequest struct {
	EmployeeID      string  `json:"employeeId"`
	WeekEnding      string  `json:"weekEnding"`
	Hours           float64 `json:"hours"`
	Minutes         float64 `json:"minutes"`
	OvertimeHours   float64 `json:"overtimeHours"`
	OvertimeMinutes float64 `json:"overtimeMinutes"`
	Notes           string  `json:"notes"`
}

func (h *TimesheetHandler) CreateManual(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var req manualTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", reqID)
		return
	}
	weekEnding, err := shared.ParseDate(req.WeekEnding)
	if err != nil || weekEnding.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "weekEnding must be a date", reqID)
		return
	}
	sheet, err := h.sheets.CreateManual(r.Context(), req.EmployeeID, weekEnding,
		req.Hours, req.Minutes, req.OvertimeHours, req.OvertimeMinutes, req.Notes)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Created(w, sheet, reqID)
}

func (h *TimesheetHandler) Approve(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	reviewer, _ := middleware.GetReviewer(r.Context())
	result, err := h.sheets.Approve(r.Context(), chi.URLParam(r, "id"), reviewer.Name)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, result, reqID)
}

type approveWithLeaveRequest struct {
	MissingDays []string `json:"missingDays"`
	Reason      string   `json:"reason"`
	Notes       string   `json:"notes"`
}

func (h *TimesheetHandler) ApproveWithLeave(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var req approveWithLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", reqID)
		return
	}
	days := make([]time.Time, 0, len(req.MissingDays))
	for _, raw := range req.MissingDays {
		day, err := shared.ParseDate(raw)
		if err != nil || day.IsZero() {
			api.Fail(w, http.StatusBadRequest, "invalid_body", "missingDays must be dates", reqID)
			return
		}
		days = append(days, day)
	}

	reviewer, _ := middleware.GetReviewer(r.Context())
	result, err := h.sheets.ApproveWithLeaveBackfill(r.Context(), chi.URLParam(r, "id"),
		reviewer.Name, days, req.Reason, req.Notes)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, result, reqID)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *TimesheetHandler) Reject(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var req rejectRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	reviewer, _ := middleware.GetReviewer(r.Context())
	sheet, err := h.sheets.Reject(r.Context(), chi.URLParam(r, "id"), reviewer.Name, req.Reason)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, sheet, reqID)
}

func (h *TimesheetHandler) Lock(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	sheet, err := h.sheets.Lock(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, sheet, reqID)
}
