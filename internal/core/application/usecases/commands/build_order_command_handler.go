package commands

import (
	"context"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// BuildOrderCommandHandler promotes drafts into persisted orders. The
// promotion happens in two stages: the registry atomically validates the
// request and consumes the draft under the owner's lock, then the resulting
// aggregate and the advanced sequence position are persisted in a single
// transaction.
type BuildOrderCommandHandler struct {
	registry   *services.DraftOrderRegistry
	sequencer  *services.OrderNumberSequencer
	storage    ports.ObjectStorage
	uowFactory UoWFactory
}

// NewBuildOrderCommandHandler creates a handler for draft promotion.
func NewBuildOrderCommandHandler(
	registry *services.DraftOrderRegistry,
	sequencer *services.OrderNumberSequencer,
	storage ports.ObjectStorage,
	uowFactory UoWFactory,
) BuildOrderCommandHandler {
	return BuildOrderCommandHandler{
		registry:   registry,
		sequencer:  sequencer,
		storage:    storage,
		uowFactory: uowFactory,
	}
}

// Handle builds the caller's draft into an order in reviewing status and
// persists it together with its files, services and first history row.
// On any validation or storage failure the draft is left untouched so the
// client can correct the request and retry.
func (h *BuildOrderCommandHandler) Handle(ctx context.Context, cmd BuildOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ownerID := cmd.Session().UserID()

	if err := h.registry.Exists(ownerID, cmd.OrderID()); err != nil {
		return nil, err
	}

	built, err := h.registry.Build(ctx, h.storage, h.sequencer, ownerID, cmd.Request())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, built); err != nil {
		return nil, err
	}

	if err = uow.SettingsRepository().SaveQueueSeq(ctx, h.sequencer.Current()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return built, nil
}
