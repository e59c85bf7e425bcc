package commands

import (
	"context"
	"errors"

	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

// RemoveDraftFileCommandHandler unstages files from draft orders. The
// uploaded object is deleted from storage before the slot is released, so a
// client can re-stage the same file immediately afterwards.
type RemoveDraftFileCommandHandler struct {
	registry *services.DraftOrderRegistry
	storage  ports.ObjectStorage
}

// NewRemoveDraftFileCommandHandler creates a handler for file unstaging
// operations.
func NewRemoveDraftFileCommandHandler(
	registry *services.DraftOrderRegistry,
	storage ports.ObjectStorage,
) RemoveDraftFileCommandHandler {
	return RemoveDraftFileCommandHandler{
		registry: registry,
		storage:  storage,
	}
}

// Handle removes the staged file from the caller's draft. A file that was
// already unstaged is not an error; a missing draft is.
func (h *RemoveDraftFileCommandHandler) Handle(ctx context.Context, cmd RemoveDraftFileCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ownerID := cmd.Session().UserID()

	if err := h.registry.Exists(ownerID, cmd.OrderID()); err != nil {
		return err
	}

	file, err := h.registry.GetFile(ownerID, cmd.FileID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil // already removed
		}
		return err
	}

	if err := h.storage.DeleteObject(ctx, file.StoredObject()); err != nil {
		return err
	}

	return h.registry.RemoveFile(ownerID, cmd.FileID())
}
