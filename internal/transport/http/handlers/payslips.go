package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"payclock/internal/domain/payroll"
	"payclock/internal/transport/http/api"
	"payclock/internal/transport/http/middleware"
)

type PayslipHandler struct {
	payslips   *payroll.Service
	payslipDir string
}

func NewPayslipHandler(payslips *payroll.Service, payslipDir string) *PayslipHandler {
	return &PayslipHandler{payslips: payslips, payslipDir: payslipDir}
}

func (h *PayslipHandler) List(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payslips, err := h.payslips.List(r.Context())
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, payslips, reqID)
}

func (h *PayslipHandler) Get(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	record, ok := h.recordNumber(w, r, reqID)
	if !ok {
		return
	}
	payslip, err := h.payslips.Get(r.Context(), record)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, payslip, reqID)
}

func (h *PayslipHandler) Create(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var in payroll.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", reqID)
		return
	}
	result, err := h.payslips.Create(r.Context(), in)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Created(w, result, reqID)
}

func (h *PayslipHandler) Update(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	record, ok := h.recordNumber(w, r, reqID)
	if !ok {
		return
	}
	var in payroll.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", reqID)
		return
	}
	result, err := h.payslips.Update(r.Context(), record, in)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, result, reqID)
}

// UpdateLoan changes only the loan movement fields of a payslip.
func (h *PayslipHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	record, ok := h.recordNumber(w, r, reqID)
	if !ok {
		return
	}
	var in payroll.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", reqID)
		return
	}
	result, err := h.payslips.UpdateLoan(r.Context(), record, in)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *PayslipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	record, ok := h.recordNumber(w, r, reqID)
	if !ok {
		return
	}
	if err := h.payslips.Delete(r.Context(), record); err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"deleted": record}, reqID)
}

// DownloadPDF renders the payslip to disk and streams the file back.
func (h *PayslipHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	record, ok := h.recordNumber(w, r, reqID)
	if !ok {
		return
	}
	payslip, err := h.payslips.Get(r.Context(), record)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	path, err := payroll.RenderPDF(payslip, h.payslipDir)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "could not render payslip pdf", reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=payslip-"+strconv.Itoa(record)+".pdf")
	http.ServeFile(w, r, path)
}

func (h *PayslipHandler) recordNumber(w http.ResponseWriter, r *http.Request, reqID string) (int, bool) {
	record, err := strconv.Atoi(chi.URLParam(r, "record"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_param", "record number must be an integer", reqID)
		return 0, false
	}
	return record, true
}
