package jobs

import (
	"context"
	"time"

	"gearflow-backend/internal/logger"
)

// PurgeExpiredNotifications deletes in-app notifications past their expiry
func (jr *JobRunner) PurgeExpiredNotifications() {
	jr.runWithRecovery("PurgeExpiredNotifications", func() {
		ctx := context.Background()

		deleted, err := jr.store.DeleteExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to purge expired notifications", "error", err)
			return
		}

		if deleted > 0 {
			logger.Info("Purged expired notifications", "deleted", deleted)
		}
	})
}
