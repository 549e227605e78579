package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	completionReadRetries = 3
	completionReadDelay   = 200 * time.Millisecond
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	requestRepo repository.RequestRepository
	profileRepo repository.ProfileRepository
	notifySvc   NotificationService
	emailSvc    EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	requestRepo repository.RequestRepository,
	profileRepo repository.ProfileRepository,
	notifySvc NotificationService,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		notifySvc:   notifySvc,
		emailSvc:    emailSvc,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, booking *domain.CarBooking) error {
	if booking.RequesterID == "" || booking.EmployeeName == "" {
		return domain.Errorf(domain.ErrValidation, "requester and employee name are required")
	}
	if booking.DateOfUse.IsZero() {
		return domain.Errorf(domain.ErrValidation, "date of use is required")
	}
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	booking.Status = domain.BookingStatusPending
	return s.bookingRepo.Create(ctx, booking)
}

// ApproveBooking optionally assigns a car and synthesizes a mirrored gear
// request so vehicle returns show up in the same check-in reporting as gear.
func (s *bookingService) ApproveBooking(ctx context.Context, adminID, bookingID, carID string) (*domain.CarBooking, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusApproved {
		return booking, nil
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, domain.Errorf(domain.ErrValidation, "booking is %s, not pending", booking.Status)
	}

	if carID != "" {
		if err := s.bookingRepo.AssignCar(ctx, bookingID, carID); err != nil {
			return nil, err
		}
		booking.AssignedCarID = &carID
	}

	mirror := &domain.GearRequest{
		ID:         uuid.NewString(),
		UserID:     booking.RequesterID,
		Status:     domain.RequestStatusApproved,
		DueDate:    &booking.DateOfUse,
		AdminNotes: fmt.Sprintf("Car booking %s (%s)", booking.ID, booking.TimeSlot),
	}
	now := time.Now()
	mirror.ApprovedAt = &now
	if err := s.requestRepo.Create(ctx, mirror); err != nil {
		logger.Warn("Failed to mirror booking into gear requests", "booking_id", booking.ID, "error", err)
	} else {
		booking.RequestID = &mirror.ID
	}

	booking.Status = domain.BookingStatusApproved
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if _, err := s.notifySvc.Dispatch(ctx, Event{
		Kind:         domain.EventBookingApproved,
		TargetUserID: booking.RequesterID,
		Title:        "Car Booking Approved",
		Message:      fmt.Sprintf("Your car booking for %s (%s) was approved", booking.DateOfUse.Format("2006-01-02"), booking.TimeSlot),
		Category:     "car_booking",
		Priority:     "high",
		Metadata:     map[string]string{"booking_id": booking.ID},
	}); err != nil {
		logger.Warn("Booking-approved fan-out failed", "booking_id", booking.ID, "error", err)
	}

	return booking, nil
}

func (s *bookingService) RejectBooking(ctx context.Context, adminID, bookingID, reason string) (*domain.CarBooking, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusRejected {
		return booking, nil
	}
	if booking.Status == domain.BookingStatusCompleted {
		return nil, domain.Errorf(domain.ErrValidation, "booking is already completed")
	}

	booking.Status = domain.BookingStatusRejected
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	message := "Your car booking was rejected"
	if reason != "" {
		message += ": " + reason
	}
	if _, err := s.notifySvc.Dispatch(ctx, Event{
		Kind:         domain.EventBookingCompleted,
		TargetUserID: booking.RequesterID,
		Title:        "Car Booking Rejected",
		Message:      message,
		Category:     "car_booking",
		Priority:     "normal",
		Metadata:     map[string]string{"booking_id": booking.ID},
	}); err != nil {
		logger.Warn("Booking-rejected fan-out failed", "booking_id", booking.ID, "error", err)
	}

	return booking, nil
}

// CompleteBooking is idempotent: completing an already-Completed booking
// returns success without re-mutating or re-sending email. The post-update
// read tolerates replica lag with a bounded poll before falling back to an
// assumed-success snapshot. The fallback can report success without confirmed
// persistence; see DESIGN.md.
func (s *bookingService) CompleteBooking(ctx context.Context, actorID, bookingID string) (*domain.CarBooking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RequesterID != actorID {
		if _, err := requireAdmin(ctx, s.profileRepo, actorID); err != nil {
			return nil, err
		}
	}
	if booking.Status == domain.BookingStatusCompleted {
		return booking, nil
	}
	if booking.Status != domain.BookingStatusApproved && booking.Status != domain.BookingStatusPending {
		return nil, domain.Errorf(domain.ErrValidation, "booking is %s and cannot be completed", booking.Status)
	}

	snapshot := *booking
	snapshot.Status = domain.BookingStatusCompleted

	booking.Status = domain.BookingStatusCompleted
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	confirmed := booking
	for attempt := 0; attempt < completionReadRetries; attempt++ {
		reread, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err == nil {
			confirmed = reread
			break
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		logger.Warn("Booking missing after completion update, retrying", "booking_id", bookingID, "attempt", attempt+1)
		time.Sleep(completionReadDelay)
		confirmed = nil
	}
	if confirmed == nil {
		logger.Warn("Booking completion unconfirmed after retries, returning snapshot", "booking_id", bookingID)
		confirmed = &snapshot
	}

	s.sendCompletionEmails(ctx, confirmed)

	if _, err := s.notifySvc.Dispatch(ctx, Event{
		Kind:         domain.EventBookingCompleted,
		TargetUserID: confirmed.RequesterID,
		Title:        "Car Booking Completed",
		Message:      fmt.Sprintf("Your car booking for %s is completed", confirmed.DateOfUse.Format("2006-01-02")),
		Category:     "car_booking",
		Priority:     "normal",
		Metadata:     map[string]string{"booking_id": confirmed.ID},
	}); err != nil {
		logger.Warn("Booking-completed fan-out failed", "booking_id", confirmed.ID, "error", err)
	}

	return confirmed, nil
}

func (s *bookingService) sendCompletionEmails(ctx context.Context, booking *domain.CarBooking) {
	carLabel := ""
	if car, err := s.bookingRepo.GetAssignedCar(ctx, booking.ID); err == nil {
		carLabel = car.Label
	} else if !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Failed to look up assigned car", "booking_id", booking.ID, "error", err)
	}

	dateOfUse := booking.DateOfUse.Format("2006-01-02")
	if requester, err := s.profileRepo.GetByID(ctx, booking.RequesterID); err == nil {
		if err := s.emailSvc.SendBookingReturnConfirmation(ctx, requester.Email, booking.EmployeeName, carLabel, dateOfUse); err != nil {
			logger.Warn("Booking confirmation email failed", "booking_id", booking.ID, "error", err)
		}
	}

	admins, err := s.profileRepo.ListActiveAdmins(ctx)
	if err != nil {
		logger.Warn("Failed to list admins for booking notice", "booking_id", booking.ID, "error", err)
		return
	}
	for _, admin := range admins {
		if err := s.emailSvc.SendAdminBookingNotice(ctx, admin.Email, booking.EmployeeName, dateOfUse); err != nil {
			logger.Warn("Admin booking notice failed", "booking_id", booking.ID, "admin_id", admin.ID, "error", err)
		}
	}
}

func (s *bookingService) DeleteBooking(ctx context.Context, actorID, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.RequesterID != actorID {
		if _, err := requireAdmin(ctx, s.profileRepo, actorID); err != nil {
			return err
		}
	}
	return s.bookingRepo.Delete(ctx, bookingID)
}

func (s *bookingService) ListBookings(ctx context.Context, requesterID string, page, pageSize int32) ([]domain.CarBooking, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookingRepo.ListByRequester(ctx, requesterID, page, pageSize)
}
