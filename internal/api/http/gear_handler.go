package http

import (
	"net/http"
	"strconv"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/gorilla/mux"
)

type GearHandler struct {
	gearSvc service.GearService
}

func NewGearHandler(gearSvc service.GearService) *GearHandler {
	return &GearHandler{gearSvc: gearSvc}
}

func pageParams(r *http.Request) (int32, int32) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return int32(page), int32(pageSize)
}

func (h *GearHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	gears, total, err := h.gearSvc.ListGears(r.Context(),
		r.URL.Query().Get("category"), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"gears": gears, "total": total})
}

func (h *GearHandler) Get(w http.ResponseWriter, r *http.Request) {
	gear, err := h.gearSvc.GetGear(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, gear)
}

type gearBody struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Quantity    int32  `json:"quantity" validate:"required,gt=0"`
	Condition   string `json:"condition"`
	ImageURL    string `json:"image_url"`
}

func (h *GearHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body gearBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	gear := &domain.Gear{
		Name:        body.Name,
		Category:    body.Category,
		Description: body.Description,
		Quantity:    body.Quantity,
		Condition:   domain.GearCondition(body.Condition),
		ImageURL:    body.ImageURL,
	}
	if err := h.gearSvc.AddGear(r.Context(), UserIDFromContext(r.Context()), gear); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, gear, nil)
}

func (h *GearHandler) Update(w http.ResponseWriter, r *http.Request) {
	var gear domain.Gear
	if err := decodeBody(r, &gear); err != nil {
		respondError(w, err)
		return
	}
	gear.ID = mux.Vars(r)["id"]
	if err := h.gearSvc.UpdateGear(r.Context(), UserIDFromContext(r.Context()), &gear); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, gear, nil)
}

// Delete takes the gear id in the body, {gearId}, matching the admin console.
func (h *GearHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GearID string `json:"gearId"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if body.GearID == "" {
		respondError(w, domain.Errorf(domain.ErrValidation, "gearId is required"))
		return
	}
	if err := h.gearSvc.DeleteGear(r.Context(), UserIDFromContext(r.Context()), body.GearID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, nil)
}

func (h *GearHandler) Retire(w http.ResponseWriter, r *http.Request) {
	if err := h.gearSvc.RetireGear(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, nil)
}
