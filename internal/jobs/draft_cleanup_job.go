package jobs

import (
	"context"
	"log/slog"

	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DraftCleanupJob sweeps expired drafts out of the registry. Runs every
// minute; each removed draft has its uploaded objects deleted from storage.
type DraftCleanupJob struct {
	registry *services.DraftOrderRegistry
	storage  ports.ObjectStorage
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDraftCleanupJob creates a job that expires abandoned drafts.
func NewDraftCleanupJob(
	registry *services.DraftOrderRegistry,
	storage ports.ObjectStorage,
	logger *slog.Logger,
) *DraftCleanupJob {
	return &DraftCleanupJob{
		registry: registry,
		storage:  storage,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "draft_cleanup_job"),
	}
}

// Start begins the cleanup job to run every minute.
func (j *DraftCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft cleanup job started (running every minute)")
	return nil
}

func (j *DraftCleanupJob) run(ctx context.Context) {
	removed := j.registry.ClearExpired(ctx, j.storage)
	if removed > 0 {
		j.logger.InfoContext(ctx, "Expired drafts removed", "count", removed)
	}
}

// Stop stops the cleanup job.
func (j *DraftCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Draft cleanup job stopped")
}
