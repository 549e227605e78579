package jobs

import (
	"context"

	"gearflow-backend/internal/logger"
)

// FixGearQuantities reconciles gear available quantities and statuses against
// the outstanding requests and pending checkins
func (jr *JobRunner) FixGearQuantities() {
	jr.runWithRecovery("FixGearQuantities", func() {
		ctx := context.Background()

		fixes, err := jr.services.Reconcile.UpdateGearAvailableQuantities(ctx)
		if err != nil {
			logger.Error("Failed to reconcile gear quantities", "error", err)
			return
		}

		logger.Info("Reconciled gear quantities", "fixed", len(fixes))
		for _, fix := range fixes {
			logger.Debug("Fixed gear row",
				"gear_id", fix.GearID,
				"name", fix.Name,
				"old_available", fix.OldAvailable,
				"new_available", fix.NewAvailable,
				"old_status", fix.OldStatus,
				"new_status", fix.NewStatus)
		}
	})
}
