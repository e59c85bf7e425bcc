package jobs

import (
	"context"
	"log/slog"

	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// QueueResetJob rewinds the order number sequence at midnight, so each day's
// orders start again at A-001, and persists the rewound position.
type QueueResetJob struct {
	sequencer *services.OrderNumberSequencer
	settings  ports.SettingsRepository
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewQueueResetJob creates a job that resets the order number sequence daily.
func NewQueueResetJob(
	sequencer *services.OrderNumberSequencer,
	settings ports.SettingsRepository,
	logger *slog.Logger,
) *QueueResetJob {
	return &QueueResetJob{
		sequencer: sequencer,
		settings:  settings,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "queue_reset_job"),
	}
}

// Start begins the reset job to run daily at midnight.
func (j *QueueResetJob) Start() error {
	_, err := j.cron.AddFunc("0 0 0 * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue reset job started (running daily at midnight)")
	return nil
}

func (j *QueueResetJob) run(ctx context.Context) {
	j.sequencer.Reset()

	if err := j.settings.SaveQueueSeq(ctx, j.sequencer.Current()); err != nil {
		j.logger.ErrorContext(ctx, "Failed to persist reset sequence position", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Order number sequence reset")
}

// Stop stops the reset job.
func (j *QueueResetJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Queue reset job stopped")
}
