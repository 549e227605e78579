package http

import (
	"net/http"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/gorilla/mux"
)

type CheckinHandler struct {
	checkinSvc service.CheckinService
	notifySvc  service.NotificationService
}

func NewCheckinHandler(checkinSvc service.CheckinService, notifySvc service.NotificationService) *CheckinHandler {
	return &CheckinHandler{checkinSvc: checkinSvc, notifySvc: notifySvc}
}

type submitCheckinBody struct {
	GearID      string `json:"gear_id" validate:"required"`
	Quantity    int32  `json:"quantity" validate:"required,gt=0"`
	Condition   string `json:"condition" validate:"required"`
	Notes       string `json:"notes"`
	DamageNotes string `json:"damage_notes"`
}

func (h *CheckinHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body submitCheckinBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	checkin := &domain.Checkin{
		GearID:      body.GearID,
		Quantity:    body.Quantity,
		Condition:   domain.GearCondition(body.Condition),
		Notes:       body.Notes,
		DamageNotes: body.DamageNotes,
	}
	if err := h.checkinSvc.SubmitCheckin(r.Context(), UserIDFromContext(r.Context()), checkin); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, checkin, nil)
}

func (h *CheckinHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	checkins, total, err := h.checkinSvc.ListCheckins(r.Context(), UserIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"checkins": checkins, "total": total})
}

func (h *CheckinHandler) Approve(w http.ResponseWriter, r *http.Request) {
	checkin, err := h.checkinSvc.ApproveCheckin(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, checkin, nil)
}

// Notify re-pings the admins about a submitted checkin that is still waiting.
func (h *CheckinHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CheckinID string `json:"checkin_id"`
		GearName  string `json:"gear_name"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	message := "A check-in is waiting for admin approval"
	if body.GearName != "" {
		message = body.GearName + " is waiting for check-in approval"
	}
	result, err := h.notifySvc.Dispatch(r.Context(), service.Event{
		Kind:         domain.EventCheckinSubmitted,
		NotifyAdmins: true,
		Title:        "Check-in Reminder",
		Message:      message,
		Category:     "checkin",
		Priority:     "normal",
		Metadata:     map[string]string{"checkin_id": body.CheckinID},
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, result, result.Errors)
}
