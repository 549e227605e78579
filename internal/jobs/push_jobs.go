package jobs

import (
	"context"

	"gearflow-backend/internal/logger"
)

// ProcessPushQueue drains a batch of queued web push notifications
func (jr *JobRunner) ProcessPushQueue() {
	jr.runWithRecovery("ProcessPushQueue", func() {
		ctx := context.Background()

		batchSize := int32(jr.config.Push.BatchSize)
		sent, failed, err := jr.services.Push.ProcessQueue(ctx, batchSize)
		if err != nil {
			logger.Error("Failed to process push queue", "error", err)
			return
		}

		if sent > 0 || failed > 0 {
			logger.Info("Processed push queue", "sent", sent, "failed", failed)
		}
	})
}
