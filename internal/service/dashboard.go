package service

import (
	"context"
	"errors"
	"time"

	"gearflow-backend/internal/cache"
	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/repository"
)

const (
	dashboardCacheKey = "dashboard:counts"
	dashboardCacheTTL = 30 * time.Second
)

type dashboardService struct {
	gearRepo    repository.GearRepository
	checkinRepo repository.CheckinRepository
	cache       *cache.Cache
}

func NewDashboardService(gearRepo repository.GearRepository, checkinRepo repository.CheckinRepository, c *cache.Cache) DashboardService {
	return &dashboardService{
		gearRepo:    gearRepo,
		checkinRepo: checkinRepo,
		cache:       c,
	}
}

// Counts recomputes the equipment summary from the gears and checkins tables
// rather than trusting the per-gear cached counters. Any gear referenced by a
// pending checkin is counted as pending check-in and excluded from available,
// regardless of its stored status or available_quantity.
func (s *dashboardService) Counts(ctx context.Context) (*DashboardCounts, error) {
	if s.cache != nil {
		var cached DashboardCounts
		err := s.cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("Dashboard cache read failed", "error", err)
		}
	}

	counts, err := s.recompute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, dashboardCacheKey, counts, dashboardCacheTTL); err != nil {
			logger.Warn("Dashboard cache write failed", "error", err)
		}
	}
	return counts, nil
}

func (s *dashboardService) recompute(ctx context.Context) (*DashboardCounts, error) {
	gears, err := s.gearRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.checkinRepo.PendingGearIDs(ctx)
	if err != nil {
		return nil, err
	}

	counts := &DashboardCounts{}
	for _, gear := range gears {
		counts.TotalEquipment++

		if _, hasPending := pending[gear.ID]; hasPending {
			counts.PendingCheckinEquipment++
			continue
		}

		switch {
		case gear.Status.OutOfService():
			if gear.Status != domain.GearStatusRetired && gear.Status != domain.GearStatusLost {
				counts.UnderRepairEquipment++
			}
		case gear.Status.CheckedOutFamily():
			counts.CheckedOutEquipment++
		case gear.Loanable():
			counts.AvailableEquipment++
		}
	}
	return counts, nil
}

func (s *dashboardService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		logger.Warn("Dashboard cache invalidation failed", "error", err)
	}
}
