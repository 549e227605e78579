package service

import (
	"context"
	"fmt"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/repository"

	"github.com/google/uuid"
)

type checkinService struct {
	checkinRepo repository.CheckinRepository
	gearRepo    repository.GearRepository
	profileRepo repository.ProfileRepository
	notifySvc   NotificationService
	dashboard   DashboardService
}

func NewCheckinService(
	checkinRepo repository.CheckinRepository,
	gearRepo repository.GearRepository,
	profileRepo repository.ProfileRepository,
	notifySvc NotificationService,
	dashboard DashboardService,
) CheckinService {
	return &checkinService{
		checkinRepo: checkinRepo,
		gearRepo:    gearRepo,
		profileRepo: profileRepo,
		notifySvc:   notifySvc,
		dashboard:   dashboard,
	}
}

// SubmitCheckin records the return without freeing availability. Units stay
// unavailable until an admin approves the return, so a damaged item cannot be
// re-loaned in the gap.
func (s *checkinService) SubmitCheckin(ctx context.Context, userID string, checkin *domain.Checkin) error {
	gear, err := s.gearRepo.GetByID(ctx, checkin.GearID)
	if err != nil {
		return err
	}
	if checkin.Quantity <= 0 {
		return domain.Errorf(domain.ErrValidation, "quantity must be positive")
	}
	outstanding := gear.Quantity - gear.AvailableQuantity
	if checkin.Quantity > outstanding {
		return domain.Errorf(domain.ErrValidation, "%s has only %d unit(s) checked out", gear.Name, outstanding)
	}

	if checkin.ID == "" {
		checkin.ID = uuid.NewString()
	}
	checkin.UserID = userID
	checkin.Status = domain.CheckinStatusPendingApproval
	if checkin.CheckinDate.IsZero() {
		checkin.CheckinDate = time.Now()
	}
	if checkin.RequestID == nil {
		checkin.RequestID = gear.CurrentRequestID
	}
	if err := s.checkinRepo.Create(ctx, checkin); err != nil {
		return err
	}

	gear.Status = domain.GearStatusPendingCheckin
	if err := s.gearRepo.Update(ctx, gear); err != nil {
		logger.Error("Failed to flag gear pending check-in", "gear_id", gear.ID, "error", err)
	}
	s.dashboard.InvalidateCache(ctx)

	if _, err := s.notifySvc.Dispatch(ctx, Event{
		Kind:         domain.EventCheckinSubmitted,
		NotifyAdmins: true,
		Title:        "Check-in Awaiting Approval",
		Message:      fmt.Sprintf("%s was returned in %s condition and awaits approval", gear.Name, checkin.Condition),
		Category:     "checkin",
		Priority:     "normal",
		Metadata:     map[string]string{"checkin_id": checkin.ID, "gear_id": gear.ID},
	}); err != nil {
		logger.Warn("Checkin-submitted fan-out failed", "checkin_id", checkin.ID, "error", err)
	}
	return nil
}

// ApproveCheckin completes the return and mutates the gear. Re-approving an
// already-Completed checkin is a no-op: the gear must not be credited twice.
func (s *checkinService) ApproveCheckin(ctx context.Context, adminID, checkinID string) (*domain.Checkin, error) {
	admin, err := requireAdmin(ctx, s.profileRepo, adminID)
	if err != nil {
		return nil, err
	}

	checkin, err := s.checkinRepo.GetByID(ctx, checkinID)
	if err != nil {
		return nil, err
	}
	if checkin.Status == domain.CheckinStatusCompleted {
		return checkin, nil
	}

	gear, err := s.gearRepo.GetByID(ctx, checkin.GearID)
	if err != nil {
		return nil, err
	}

	if checkin.Condition == domain.GearConditionDamaged {
		gear.Status = domain.GearStatusNeedsRepair
		gear.AvailableQuantity = 0
		gear.CheckedOutTo = nil
		gear.CurrentRequestID = nil
		gear.DueDate = nil
	} else {
		gear.AvailableQuantity += checkin.Quantity
		if gear.AvailableQuantity > gear.Quantity {
			gear.AvailableQuantity = gear.Quantity
		}
		gear.Status = domain.GearStatusAvailable
		// Holder references clear only once every outstanding unit is back.
		if gear.AvailableQuantity == gear.Quantity {
			gear.CheckedOutTo = nil
			gear.CurrentRequestID = nil
			gear.DueDate = nil
		}
	}
	if err := s.gearRepo.Update(ctx, gear); err != nil {
		return nil, err
	}

	now := time.Now()
	checkin.Status = domain.CheckinStatusCompleted
	checkin.ApprovedAt = &now
	checkin.ApprovedBy = &admin.ID
	if err := s.checkinRepo.Update(ctx, checkin); err != nil {
		return nil, err
	}
	s.dashboard.InvalidateCache(ctx)

	if _, err := s.notifySvc.Dispatch(ctx, Event{
		Kind:         domain.EventCheckinApproved,
		TargetUserID: checkin.UserID,
		Title:        "Check-in Approved",
		Message:      fmt.Sprintf("Your return of %s was approved", gear.Name),
		Category:     "checkin",
		Priority:     "normal",
		Metadata:     map[string]string{"checkin_id": checkin.ID, "gear_id": gear.ID},
	}); err != nil {
		logger.Warn("Checkin-approved fan-out failed", "checkin_id", checkin.ID, "error", err)
	}

	return checkin, nil
}

func (s *checkinService) ListCheckins(ctx context.Context, userID string, page, pageSize int32) ([]domain.Checkin, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.checkinRepo.ListByUser(ctx, userID, page, pageSize)
}
