package jobs

import (
	"database/sql"
	"fmt"

	"gearflow-backend/internal/config"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/repository/postgres"
	"gearflow-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reconcile service.ReconcileService
	Push      service.PushService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunOnce runs a single named job, for manual execution from the cronjob binary
func (jr *JobRunner) RunOnce(name string) error {
	switch name {
	case "fix-gear-quantities":
		jr.FixGearQuantities()
	case "process-push-queue":
		jr.ProcessPushQueue()
	case "purge-expired-notifications":
		jr.PurgeExpiredNotifications()
	case "all":
		jr.FixGearQuantities()
		jr.ProcessPushQueue()
		jr.PurgeExpiredNotifications()
	default:
		return fmt.Errorf("unknown job %q", name)
	}
	return nil
}
