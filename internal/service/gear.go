package service

import (
	"context"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"

	"github.com/google/uuid"
)

type gearService struct {
	gearRepo    repository.GearRepository
	profileRepo repository.ProfileRepository
	dashboard   DashboardService
}

func NewGearService(gearRepo repository.GearRepository, profileRepo repository.ProfileRepository, dashboard DashboardService) GearService {
	return &gearService{
		gearRepo:    gearRepo,
		profileRepo: profileRepo,
		dashboard:   dashboard,
	}
}

func (s *gearService) AddGear(ctx context.Context, adminID string, gear *domain.Gear) error {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return err
	}
	if gear.Name == "" {
		return domain.Errorf(domain.ErrValidation, "name is required")
	}
	if gear.Quantity <= 0 {
		return domain.Errorf(domain.ErrValidation, "quantity must be positive")
	}

	if gear.ID == "" {
		gear.ID = uuid.NewString()
	}
	if gear.Status == "" {
		gear.Status = domain.GearStatusAvailable
	}
	gear.AvailableQuantity = gear.Quantity
	if err := s.gearRepo.Create(ctx, gear); err != nil {
		return err
	}
	s.dashboard.InvalidateCache(ctx)
	return nil
}

func (s *gearService) GetGear(ctx context.Context, id string) (*domain.Gear, error) {
	return s.gearRepo.GetByID(ctx, id)
}

func (s *gearService) UpdateGear(ctx context.Context, adminID string, gear *domain.Gear) error {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return err
	}
	current, err := s.gearRepo.GetByID(ctx, gear.ID)
	if err != nil {
		return err
	}
	if gear.Quantity <= 0 {
		return domain.Errorf(domain.ErrValidation, "quantity must be positive")
	}
	// Never let an edit push the counter out of range.
	if gear.AvailableQuantity > gear.Quantity {
		gear.AvailableQuantity = gear.Quantity
	}
	if gear.AvailableQuantity < 0 {
		gear.AvailableQuantity = 0
	}
	gear.CheckedOutTo = current.CheckedOutTo
	gear.CurrentRequestID = current.CurrentRequestID
	if err := s.gearRepo.Update(ctx, gear); err != nil {
		return err
	}
	s.dashboard.InvalidateCache(ctx)
	return nil
}

func (s *gearService) RetireGear(ctx context.Context, adminID, gearID string) error {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return err
	}
	gear, err := s.gearRepo.GetByID(ctx, gearID)
	if err != nil {
		return err
	}
	gear.Status = domain.GearStatusRetired
	gear.AvailableQuantity = 0
	if err := s.gearRepo.Update(ctx, gear); err != nil {
		return err
	}
	s.dashboard.InvalidateCache(ctx)
	return nil
}

func (s *gearService) DeleteGear(ctx context.Context, adminID, gearID string) error {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return err
	}
	if err := s.gearRepo.Delete(ctx, gearID); err != nil {
		return err
	}
	s.dashboard.InvalidateCache(ctx)
	return nil
}

func (s *gearService) ListGears(ctx context.Context, category, status string, page, pageSize int32) ([]domain.Gear, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.gearRepo.List(ctx, category, status, page, pageSize)
}
