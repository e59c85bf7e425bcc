package cmd

import (
	"context"
	"log/slog"

	apphttp "printshop/internal/adapters/in/http"
	"printshop/internal/adapters/out/objectstorage"
	"printshop/internal/adapters/out/postgres"
	"printshop/internal/adapters/out/postgres/settingsrepo"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the domain services, adapters and use case handlers
// together. The draft registry and the sequencer are shared singletons; unit
// of work instances are created per command.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	registry  *services.DraftOrderRegistry
	sequencer *services.OrderNumberSequencer
	storage   ports.ObjectStorage
	settings  ports.SettingsRepository
}

// NewCompositionRoot builds the object graph. The sequencer resumes from the
// persisted queue position so a restart does not reissue order numbers.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	storage, err := objectstorage.NewClient(config.StorageBaseURL, nil)
	if err != nil {
		return nil, err
	}

	settings := settingsrepo.NewGormSettingsRepository(gormDB)

	seq, err := settings.LoadQueueSeq(ctx)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   services.NewDraftOrderRegistry(config.DraftTTL, logger),
		sequencer:  services.NewOrderNumberSequencer(seq),
		storage:    storage,
		settings:   settings,
	}, nil
}

// SaveQueueSeq persists the sequencer's current position. Called on
// shutdown so the next start resumes the numbering.
func (c *CompositionRoot) SaveQueueSeq(ctx context.Context) error {
	return c.settings.SaveQueueSeq(ctx, c.sequencer.Current())
}

// CreateHTTPServer wires every endpoint handler into the inbound adapter.
func (c *CompositionRoot) CreateHTTPServer() *apphttp.Server {
	return apphttp.NewServer(
		c.CreateCreateDraftCommandHandler(),
		c.CreateStageFileCommandHandler(),
		c.CreateRemoveDraftFileCommandHandler(),
		c.CreateBuildOrderCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateTerminateOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateOrdersGlanceQueryHandler(),
		c.CreateOrderHistoryQueryHandler(),
		c.config.StorageBaseURL,
	)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.registry, c.storage, c.sequencer, c.settings, c.logger)
}

func (c *CompositionRoot) CreateCreateDraftCommandHandler() commands.CreateDraftCommandHandler {
	return commands.NewCreateDraftCommandHandler(c.registry)
}

func (c *CompositionRoot) CreateStageFileCommandHandler() commands.StageFileCommandHandler {
	return commands.NewStageFileCommandHandler(c.registry)
}

func (c *CompositionRoot) CreateRemoveDraftFileCommandHandler() commands.RemoveDraftFileCommandHandler {
	return commands.NewRemoveDraftFileCommandHandler(c.registry, c.storage)
}

func (c *CompositionRoot) CreateBuildOrderCommandHandler() commands.BuildOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewBuildOrderCommandHandler(c.registry, c.sequencer, c.storage, f)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTerminateOrderCommandHandler() commands.TerminateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTerminateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateOrdersGlanceQueryHandler() queries.OrdersGlanceQueryHandler {
	return queries.NewOrdersGlanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderHistoryQueryHandler() queries.OrderHistoryQueryHandler {
	return queries.NewOrderHistoryQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
