package handlers

import (
	"net/http"

	"payclock/internal/domain/roster"
	"payclock/internal/transport/http/api"
	"payclock/internal/transport/http/middleware"
)

type HealthHandler struct {
	environment string
	roster      roster.StoreAPI
}

func NewHealthHandler(environment string, rosterStore roster.StoreAPI) *HealthHandler {
	return &HealthHandler{environment: environment, roster: rosterStore}
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "ok", "environment": h.environment}, middleware.GetRequestID(r.Context()))
}

// Ready exercises the backing store with a cheap read.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, err := h.roster.List(r.Context()); err != nil {
		api.Fail(w, http.StatusServiceUnavailable, "store_unavailable", "backing store is unreachable", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "ready"}, reqID)
}
