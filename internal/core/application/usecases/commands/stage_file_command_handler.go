package commands

import (
	"context"

	"printshop/internal/core/domain/model/draft"
	"printshop/internal/core/domain/services"
)

// StageFileCommandHandler reserves upload slots on draft orders. The handler
// verifies the order id in the request actually identifies the caller's
// draft before staging, so a stale client cannot stage onto a newer draft.
type StageFileCommandHandler struct {
	registry *services.DraftOrderRegistry
}

// NewStageFileCommandHandler creates a handler for file staging operations.
func NewStageFileCommandHandler(registry *services.DraftOrderRegistry) StageFileCommandHandler {
	return StageFileCommandHandler{
		registry: registry,
	}
}

// Handle stages a file slot on the caller's draft and returns it, including
// the object key reserved for the upload.
func (h *StageFileCommandHandler) Handle(_ context.Context, cmd StageFileCommand) (draft.File, error) {
	if err := cmd.Validate(); err != nil {
		return draft.File{}, err
	}

	ownerID := cmd.Session().UserID()

	if err := h.registry.Exists(ownerID, cmd.OrderID()); err != nil {
		return draft.File{}, err
	}

	return h.registry.StageFile(ownerID, cmd.Filetype(), cmd.Filesize())
}
