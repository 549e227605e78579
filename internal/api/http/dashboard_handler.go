package http

import (
	"database/sql"
	"net/http"
	"strconv"

	"gearflow-backend/internal/service"
)

type DashboardHandler struct {
	dashboardSvc    service.DashboardService
	announcementSvc service.AnnouncementService
}

func NewDashboardHandler(dashboardSvc service.DashboardService, announcementSvc service.AnnouncementService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc, announcementSvc: announcementSvc}
}

func (h *DashboardHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.dashboardSvc.Counts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, counts)
}

func (h *DashboardHandler) Announcements(w http.ResponseWriter, r *http.Request) {
	limit := int32(10)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 {
			limit = int32(n)
		}
	}
	announcements, err := h.announcementSvc.List(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"announcements": announcements})
}

// Healthz reports process liveness plus the database round trip.
func Healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]string{"status": status})
	}
}
