package http

import (
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/utils"
)

// getServerVersion answers with the bare version string as text/plain.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(serverVersion))
}

func (h *Handler) getServerInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}
