package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"payclock/internal/domain/auth"
	"payclock/internal/transport/http/api"
	"payclock/internal/transport/http/middleware"
)

type AuthHandler struct {
	secret       string
	operatorMail string
	operatorHash string
}

func NewAuthHandler(secret, operatorEmail, operatorHash string) *AuthHandler {
	return &AuthHandler{secret: secret, operatorMail: operatorEmail, operatorHash: operatorHash}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", reqID)
		return
	}

	token, err := auth.Login(h.secret, h.operatorMail, h.operatorHash, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "could not issue token", reqID)
		return
	}
	api.Success(w, loginResponse{Token: token}, reqID)
}
