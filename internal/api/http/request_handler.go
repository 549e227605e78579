package http

import (
	"net/http"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/gorilla/mux"
)

type RequestHandler struct {
	requestSvc service.RequestService
}

func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

type submitRequestBody struct {
	Lines []struct {
		GearID   string `json:"gear_id" validate:"required"`
		Quantity int32  `json:"quantity" validate:"required,gt=0"`
	} `json:"lines" validate:"required,min=1,dive"`
	DueDate *time.Time `json:"due_date"`
}

func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body submitRequestBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	lines := make([]domain.RequestLine, len(body.Lines))
	for i, l := range body.Lines {
		lines[i] = domain.RequestLine{GearID: l.GearID, Quantity: l.Quantity}
	}

	req, err := h.requestSvc.SubmitRequest(r.Context(), UserIDFromContext(r.Context()), lines, body.DueDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, req, nil)
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	requests, total, err := h.requestSvc.ListRequests(r.Context(), UserIDFromContext(r.Context()),
		r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"requests": requests, "total": total})
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestSvc.GetRequest(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, req)
}

func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DueDate *time.Time `json:"due_date"`
	}
	// Body is optional on approval.
	_ = decodeBody(r, &body)

	req, err := h.requestSvc.ApproveRequest(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"], body.DueDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, req, nil)
}

func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = decodeBody(r, &body)

	req, err := h.requestSvc.RejectRequest(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"], body.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, req, nil)
}

func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestSvc.CancelRequest(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, req, nil)
}
