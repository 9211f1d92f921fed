package http

import (
	"net/http"

	"github.com/MKhiriev/crm-gateway/internal/utils"
	"github.com/MKhiriev/crm-gateway/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetBuildInfo(r.Context()), http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{Status: "ok"}, http.StatusOK)
}
