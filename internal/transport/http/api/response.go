package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"payclock/internal/apperror"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

// FailFromError maps a domain error onto the envelope, preserving the
// taxonomy code and caller-actionable details when the error carries them.
func FailFromError(w http.ResponseWriter, err error, requestID string) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		Fail(w, http.StatusInternalServerError, "internal_error", err.Error(), requestID)
		return
	}
	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperror.KindValidation:
		status = http.StatusBadRequest
	case apperror.KindDuplicate:
		status = http.StatusConflict
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindEditWindow:
		status = http.StatusConflict
	case apperror.KindSync:
		status = http.StatusInternalServerError
	}
	WriteJSON(w, status, Envelope{
		Success:   false,
		Error:     &Error{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details},
		RequestID: requestID,
	})
}
