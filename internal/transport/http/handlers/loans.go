package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"payclock/internal/domain/loan"
	"payclock/internal/transport/http/api"
	"payclock/internal/transport/http/middleware"
	"payclock/internal/transport/http/shared"
)

type LoanHandler struct {
	loans *loan.Service
}

func NewLoanHandler(loans *loan.Service) *LoanHandler {
	return &LoanHandler{loans: loans}
}

func (h *LoanHandler) History(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeId")

	var start, end *time.Time
	if from, err := shared.ParseDate(r.URL.Query().Get("from")); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_param", "from must be a date", reqID)
		return
	} else if !from.IsZero() {
		start = &from
	}
	if to, err := shared.ParseDate(r.URL.Query().Get("to")); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_param", "to must be a date", reqID)
		return
	} else if !to.IsZero() {
		end = &to
	}

	entries, err := h.loans.History(r.Context(), employeeID, start, end)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, entries, reqID)
}

func (h *LoanHandler) Balance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeId")

	asOf := time.Now()
	if parsed, err := shared.ParseDate(r.URL.Query().Get("asOf")); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_param", "asOf must be a date", reqID)
		return
	} else if !parsed.IsZero() {
		asOf = parsed
	}

	balance, err := h.loans.CurrentBalance(r.Context(), employeeID, asOf)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"employeeId": employeeID, "balance": balance}, reqID)
}
