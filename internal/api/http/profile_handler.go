package http

import (
	"net/http"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileSvc.GetProfile(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, profile)
}

type updatePreferencesBody struct {
	Preferences domain.NotificationPreferences `json:"notification_preferences" validate:"required"`
}

func (h *ProfileHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var body updatePreferencesBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	if err := h.profileSvc.UpdatePreferences(r.Context(), UserIDFromContext(r.Context()), body.Preferences); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, body.Preferences, nil)
}
