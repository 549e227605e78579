package http

import (
	"net/http"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/gorilla/mux"
)

// AdminHandler carries the admin-only maintenance surface: manual notification
// rows, announcements, and the reconciliation endpoints.
type AdminHandler struct {
	notifySvc       service.NotificationService
	reconcileSvc    service.ReconcileService
	announcementSvc service.AnnouncementService
}

func NewAdminHandler(notifySvc service.NotificationService, reconcileSvc service.ReconcileService, announcementSvc service.AnnouncementService) *AdminHandler {
	return &AdminHandler{
		notifySvc:       notifySvc,
		reconcileSvc:    reconcileSvc,
		announcementSvc: announcementSvc,
	}
}

// ListNotifications lets an admin inspect another user's notification feed.
func (h *AdminHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, domain.Errorf(domain.ErrValidation, "user_id query parameter is required"))
		return
	}
	page, pageSize := pageParams(r)
	notifications, total, err := h.notifySvc.GetNotifications(r.Context(), userID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"notifications": notifications, "total": total})
}

type adminNotificationBody struct {
	UserID   string            `json:"user_id" validate:"required"`
	Type     string            `json:"type"`
	Title    string            `json:"title" validate:"required"`
	Message  string            `json:"message" validate:"required"`
	Category string            `json:"category"`
	Priority string            `json:"priority"`
	Link     string            `json:"link"`
	Metadata map[string]string `json:"metadata"`
}

func (h *AdminHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var body adminNotificationBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	note := &domain.Notification{
		UserID:   body.UserID,
		Type:     body.Type,
		Title:    body.Title,
		Message:  body.Message,
		Category: body.Category,
		Priority: body.Priority,
		Link:     body.Link,
		Metadata: body.Metadata,
	}
	if err := h.notifySvc.AdminCreate(r.Context(), UserIDFromContext(r.Context()), note); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, note, nil)
}

func (h *AdminHandler) UpdateNotification(w http.ResponseWriter, r *http.Request) {
	var body adminNotificationBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	note := &domain.Notification{
		ID:       mux.Vars(r)["id"],
		UserID:   body.UserID,
		Type:     body.Type,
		Title:    body.Title,
		Message:  body.Message,
		Category: body.Category,
		Priority: body.Priority,
		Link:     body.Link,
		Metadata: body.Metadata,
	}
	if err := h.notifySvc.AdminUpdate(r.Context(), UserIDFromContext(r.Context()), note); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, note, nil)
}

func (h *AdminHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	err := h.notifySvc.AdminDelete(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, nil)
}

// FixGearQuantities recomputes available quantities and statuses from the
// outstanding requests and pending checkins. Safe to run repeatedly.
func (h *AdminHandler) FixGearQuantities(w http.ResponseWriter, r *http.Request) {
	fixes, err := h.reconcileSvc.UpdateGearAvailableQuantities(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"fixed": len(fixes), "changes": fixes}, nil)
}

func (h *AdminHandler) FixDashboardCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reconcileSvc.FixDashboardCounts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, counts, nil)
}

type announcementBody struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (h *AdminHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var body announcementBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	announcement, err := h.announcementSvc.Create(r.Context(), UserIDFromContext(r.Context()), body.Title, body.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, announcement, nil)
}

func (h *AdminHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	err := h.announcementSvc.Delete(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, nil)
}
