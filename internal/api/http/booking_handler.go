package http

import (
	"net/http"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingBody struct {
	EmployeeName string `json:"employee_name" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
	Destination  string `json:"destination"`
	DateOfUse    string `json:"date_of_use" validate:"required"`
	TimeSlot     string `json:"time_slot" validate:"required"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createBookingBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}
	dateOfUse, err := time.Parse("2006-01-02", body.DateOfUse)
	if err != nil {
		respondError(w, domain.Errorf(domain.ErrValidation, "date_of_use must be YYYY-MM-DD"))
		return
	}

	booking := &domain.CarBooking{
		RequesterID:  UserIDFromContext(r.Context()),
		EmployeeName: body.EmployeeName,
		Reason:       body.Reason,
		Destination:  body.Destination,
		DateOfUse:    dateOfUse,
		TimeSlot:     body.TimeSlot,
	}
	if err := h.bookingSvc.CreateBooking(r.Context(), booking); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, booking, nil)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	bookings, total, err := h.bookingSvc.ListBookings(r.Context(), UserIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"bookings": bookings, "total": total})
}

type decideBookingBody struct {
	BookingID string `json:"booking_id" validate:"required"`
	Approve   bool   `json:"approve"`
	CarID     string `json:"car_id"`
	Reason    string `json:"reason"`
}

// Decide approves or rejects a booking. Approval assigns the named car and
// mirrors the booking into the request queue.
func (h *BookingHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var body decideBookingBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	var booking *domain.CarBooking
	var err error
	if body.Approve {
		booking, err = h.bookingSvc.ApproveBooking(r.Context(), UserIDFromContext(r.Context()), body.BookingID, body.CarID)
	} else {
		booking, err = h.bookingSvc.RejectBooking(r.Context(), UserIDFromContext(r.Context()), body.BookingID, body.Reason)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, booking, nil)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BookingID string `json:"booking_id" validate:"required"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.bookingSvc.CompleteBooking(r.Context(), UserIDFromContext(r.Context()), body.BookingID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, booking, nil)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bookingSvc.DeleteBooking(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, nil)
}
