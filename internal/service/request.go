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

type requestService struct {
	requestRepo repository.RequestRepository
	gearRepo    repository.GearRepository
	profileRepo repository.ProfileRepository
	notifySvc   NotificationService
	dashboard   DashboardService
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	gearRepo repository.GearRepository,
	profileRepo repository.ProfileRepository,
	notifySvc NotificationService,
	dashboard DashboardService,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		gearRepo:    gearRepo,
		profileRepo: profileRepo,
		notifySvc:   notifySvc,
		dashboard:   dashboard,
	}
}

// SubmitRequest validates availability per line before insert. Admin approval
// remains the real gate; the check here stops obviously unfillable requests.
func (s *requestService) SubmitRequest(ctx context.Context, userID string, lines []domain.RequestLine, dueDate *time.Time) (*domain.GearRequest, error) {
	if len(lines) == 0 {
		return nil, domain.Errorf(domain.ErrValidation, "at least one gear line is required")
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.Errorf(domain.ErrValidation, "quantity must be positive for gear %s", line.GearID)
		}
		gear, err := s.gearRepo.GetByID(ctx, line.GearID)
		if err != nil {
			return nil, err
		}
		if gear.Status.OutOfService() {
			return nil, domain.Errorf(domain.ErrValidation, "%s is %s", gear.Name, gear.Status)
		}
		if gear.AvailableQuantity < line.Quantity {
			return nil, domain.Errorf(domain.ErrValidation, "%s has only %d of %d requested units available", gear.Name, gear.AvailableQuantity, line.Quantity)
		}
	}

	req := &domain.GearRequest{
		ID:      uuid.NewString(),
		UserID:  userID,
		Lines:   lines,
		Status:  domain.RequestStatusPending,
		DueDate: dueDate,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	requester, err := s.profileRepo.GetByID(ctx, userID)
	requesterName := userID
	if err == nil {
		requesterName = requester.FullName
	}
	if _, err := s.notifySvc.Dispatch(ctx, Event{
		Kind:         domain.EventRequestCreated,
		NotifyAdmins: true,
		Title:        "New Gear Request",
		Message:      fmt.Sprintf("%s requested %d item(s)", requesterName, len(lines)),
		Category:     "gear_request",
		Priority:     "normal",
		Metadata:     map[string]string{"request_id": req.ID},
	}); err != nil {
		logger.Warn("Request-created fan-out failed", "request_id", req.ID, "error", err)
	}

	return req, nil
}

// ApproveRequest decrements gear availability per line and marks the gear
// checked out. Approving an already-approved request is a no-op success so
// client retries and double-submits do not double-decrement.
func (s *requestService) ApproveRequest(ctx context.Context, adminID, requestID string, dueDate *time.Time) (*domain.GearRequest, error) {
	admin, err := requireAdmin(ctx, s.profileRepo, adminID)
	if err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status == domain.RequestStatusApproved {
		return req, nil
	}
	if req.Status != domain.RequestStatusPending && req.Status != domain.RequestStatusNew {
		return nil, domain.Errorf(domain.ErrValidation, "request is %s, not pending", req.Status)
	}

	if dueDate == nil {
		dueDate = req.DueDate
	}

	for _, line := range req.Lines {
		gear, err := s.gearRepo.GetByID(ctx, line.GearID)
		if err != nil {
			return nil, err
		}
		if gear.AvailableQuantity < line.Quantity {
			return nil, domain.Errorf(domain.ErrValidation, "%s has only %d of %d approved units available", gear.Name, gear.AvailableQuantity, line.Quantity)
		}

		gear.AvailableQuantity -= line.Quantity
		if gear.AvailableQuantity == 0 {
			gear.Status = domain.GearStatusCheckedOut
		} else {
			gear.Status = domain.GearStatusPartiallyCheckedOut
		}
		gear.CheckedOutTo = &req.UserID
		gear.DueDate = dueDate
		gear.CurrentRequestID = &req.ID

		if err := s.gearRepo.Update(ctx, gear); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	req.Status = domain.RequestStatusApproved
	req.ApprovedAt = &now
	req.DueDate = dueDate
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	s.dashboard.InvalidateCache(ctx)

	if _, err := s.notifySvc.Dispatch(ctx, Event{
		Kind:         domain.EventRequestApproved,
		TargetUserID: req.UserID,
		Title:        "Gear Request Approved",
		Message:      fmt.Sprintf("Your gear request was approved by %s", admin.FullName),
		Category:     "gear_request",
		Priority:     "high",
		Metadata:     map[string]string{"request_id": req.ID},
	}); err != nil {
		logger.Warn("Request-approved fan-out failed", "request_id", req.ID, "error", err)
	}

	return req, nil
}

func (s *requestService) RejectRequest(ctx context.Context, adminID, requestID, reason string) (*domain.GearRequest, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status == domain.RequestStatusRejected {
		return req, nil
	}
	if req.Status != domain.RequestStatusPending && req.Status != domain.RequestStatusNew {
		return nil, domain.Errorf(domain.ErrValidation, "request is %s, not pending", req.Status)
	}

	req.Status = domain.RequestStatusRejected
	req.AdminNotes = reason
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	message := "Your gear request was rejected"
	if reason != "" {
		message += ": " + reason
	}
	if _, err := s.notifySvc.Dispatch(ctx, Event{
		Kind:         domain.EventRequestRejected,
		TargetUserID: req.UserID,
		Title:        "Gear Request Rejected",
		Message:      message,
		Category:     "gear_request",
		Priority:     "normal",
		Metadata:     map[string]string{"request_id": req.ID},
	}); err != nil {
		logger.Warn("Request-rejected fan-out failed", "request_id", req.ID, "error", err)
	}

	return req, nil
}

// CancelRequest is allowed for the owner or an admin while the request is not
// terminal. Approved requests release their held units.
func (s *requestService) CancelRequest(ctx context.Context, actorID, requestID string) (*domain.GearRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.UserID != actorID {
		if _, err := requireAdmin(ctx, s.profileRepo, actorID); err != nil {
			return nil, err
		}
	}
	if req.Status == domain.RequestStatusCancelled {
		return req, nil
	}
	if req.Status.Terminal() || req.Status == domain.RequestStatusCompleted {
		return nil, domain.Errorf(domain.ErrValidation, "request is %s and cannot be cancelled", req.Status)
	}

	if req.Status == domain.RequestStatusApproved || req.Status == domain.RequestStatusCheckedOut {
		for _, line := range req.Lines {
			gear, err := s.gearRepo.GetByID(ctx, line.GearID)
			if err != nil {
				continue
			}
			gear.AvailableQuantity += line.Quantity
			if gear.AvailableQuantity >= gear.Quantity {
				gear.AvailableQuantity = gear.Quantity
				gear.Status = domain.GearStatusAvailable
				gear.CheckedOutTo = nil
				gear.CurrentRequestID = nil
				gear.DueDate = nil
			} else {
				gear.Status = domain.GearStatusPartiallyCheckedOut
			}
			if err := s.gearRepo.Update(ctx, gear); err != nil {
				logger.Error("Failed to release gear on cancel", "gear_id", gear.ID, "error", err)
			}
		}
		s.dashboard.InvalidateCache(ctx)
	}

	req.Status = domain.RequestStatusCancelled
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *requestService) GetRequest(ctx context.Context, actorID, requestID string) (*domain.GearRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.UserID != actorID {
		if _, err := requireAdmin(ctx, s.profileRepo, actorID); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (s *requestService) ListRequests(ctx context.Context, actorID, status string, page, pageSize int32) ([]domain.GearRequest, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, 0, domain.ErrUnauthorized
	}
	if actor.IsAdmin() {
		return s.requestRepo.ListAll(ctx, status, page, pageSize)
	}
	return s.requestRepo.ListByUser(ctx, actorID, status, page, pageSize)
}
