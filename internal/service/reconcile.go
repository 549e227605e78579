package service

import (
	"context"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/metrics"
	"gearflow-backend/internal/repository"
)

type reconcileService struct {
	gearRepo    repository.GearRepository
	checkinRepo repository.CheckinRepository
	dashboard   DashboardService
}

func NewReconcileService(gearRepo repository.GearRepository, checkinRepo repository.CheckinRepository, dashboard DashboardService) ReconcileService {
	return &reconcileService{
		gearRepo:    gearRepo,
		checkinRepo: checkinRepo,
		dashboard:   dashboard,
	}
}

// UpdateGearAvailableQuantities walks every gear and overwrites the cached
// available_quantity (and the status, where it is plainly wrong) with the
// value derived from the status truth table and the current set of pending
// checkins. No transaction enforces these invariants on the write paths, so
// drift is expected; this pass is the corrective. Running it twice in a row
// must produce no changes on the second run.
func (s *reconcileService) UpdateGearAvailableQuantities(ctx context.Context) ([]GearQuantityFix, error) {
	gears, err := s.gearRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.checkinRepo.PendingGearIDs(ctx)
	if err != nil {
		return nil, err
	}

	var fixes []GearQuantityFix
	for i := range gears {
		gear := gears[i]
		newStatus, newAvailable := deriveGearTruth(&gear, pending)
		if newStatus == gear.Status && newAvailable == gear.AvailableQuantity {
			continue
		}

		fix := GearQuantityFix{
			GearID:       gear.ID,
			Name:         gear.Name,
			OldAvailable: gear.AvailableQuantity,
			NewAvailable: newAvailable,
			OldStatus:    gear.Status,
			NewStatus:    newStatus,
		}

		gear.Status = newStatus
		gear.AvailableQuantity = newAvailable
		if err := s.gearRepo.Update(ctx, &gear); err != nil {
			logger.Error("Reconcile update failed", "gear_id", gear.ID, "error", err)
			continue
		}
		metrics.ReconcileChanges.Inc()
		fixes = append(fixes, fix)
		logger.Info("Reconciled gear quantities", "gear_id", gear.ID,
			"old_available", fix.OldAvailable, "new_available", fix.NewAvailable,
			"old_status", fix.OldStatus, "new_status", fix.NewStatus)
	}

	if len(fixes) > 0 {
		s.dashboard.InvalidateCache(ctx)
	}
	return fixes, nil
}

// deriveGearTruth maps a gear's stored state plus the pending-checkin set to
// the availability the check-in rules in the approval path would produce.
func deriveGearTruth(gear *domain.Gear, pending map[string]int32) (domain.GearStatus, int32) {
	// A pending return holds its units out of circulation whatever the row says.
	if _, hasPending := pending[gear.ID]; hasPending {
		return domain.GearStatusPendingCheckin, clampQuantity(gear.AvailableQuantity, gear.Quantity)
	}

	switch gear.Status {
	case domain.GearStatusDamaged, domain.GearStatusUnderRepair, domain.GearStatusNeedsRepair,
		domain.GearStatusRetired, domain.GearStatusLost:
		return gear.Status, 0
	case domain.GearStatusCheckedOut:
		return gear.Status, 0
	case domain.GearStatusAvailable, domain.GearStatusNew:
		return gear.Status, gear.Quantity
	case domain.GearStatusPartiallyCheckedOut:
		available := clampQuantity(gear.AvailableQuantity, gear.Quantity)
		// Fully stocked or fully drained rows are mislabeled as partial.
		if available == gear.Quantity {
			return domain.GearStatusAvailable, available
		}
		if available == 0 {
			return domain.GearStatusCheckedOut, 0
		}
		return gear.Status, available
	case domain.GearStatusPendingCheckin:
		// Flagged pending but no pending checkin remains; the return was
		// approved or abandoned, so the row falls back to available.
		return domain.GearStatusAvailable, gear.Quantity
	}
	return gear.Status, clampQuantity(gear.AvailableQuantity, gear.Quantity)
}

func clampQuantity(available, quantity int32) int32 {
	if available < 0 {
		return 0
	}
	if available > quantity {
		return quantity
	}
	return available
}

// FixDashboardCounts drops the cached summary and recomputes it from scratch.
func (s *reconcileService) FixDashboardCounts(ctx context.Context) (*DashboardCounts, error) {
	s.dashboard.InvalidateCache(ctx)
	return s.dashboard.Counts(ctx)
}
