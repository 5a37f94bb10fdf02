package handlers

import (
	"net/http"

	"payclock/internal/domain/punch"
	"payclock/internal/transport/http/api"
	"payclock/internal/transport/http/middleware"
)

type PunchHandler struct {
	importer *punch.Importer
}

func NewPunchHandler(importer *punch.Importer) *PunchHandler {
	return &PunchHandler{importer: importer}
}

// Import accepts the raw punch export in the request body. The file is
// CSV or tab-separated; multipart uploads send it as the "file" part.
func (h *PunchHandler) Import(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	override := r.URL.Query().Get("override") == "true"

	body := r.Body
	if err := r.ParseMultipartForm(32 << 20); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_body", "multipart request is missing the file part", reqID)
			return
		}
		defer file.Close()
		body = file
	}

	result, err := h.importer.Import(r.Context(), body, override)
	if err != nil {
		api.FailFromError(w, err, reqID)
		return
	}
	api.Created(w, result, reqID)
}
