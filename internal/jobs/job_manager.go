package jobs

import (
	"fmt"
	"log/slog"

	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	draftCleanupJob *DraftCleanupJob
	queueResetJob   *QueueResetJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	registry *services.DraftOrderRegistry,
	storage ports.ObjectStorage,
	sequencer *services.OrderNumberSequencer,
	settings ports.SettingsRepository,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		draftCleanupJob: NewDraftCleanupJob(registry, storage, logger),
		queueResetJob:   NewQueueResetJob(sequencer, settings, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.draftCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start draft cleanup job: %w", err)
	}

	if err := jm.queueResetJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.draftCleanupJob.Stop()
		return fmt.Errorf("failed to start queue reset job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.queueResetJob.Stop()
	jm.draftCleanupJob.Stop()
}
