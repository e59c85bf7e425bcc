package commands

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/services"
)

// CreateDraftCommandHandler opens draft orders in the in-memory registry.
// Drafts never touch the database; they become persistent only when built.
type CreateDraftCommandHandler struct {
	registry *services.DraftOrderRegistry
}

// NewCreateDraftCommandHandler creates a handler for draft creation.
func NewCreateDraftCommandHandler(registry *services.DraftOrderRegistry) CreateDraftCommandHandler {
	return CreateDraftCommandHandler{
		registry: registry,
	}
}

// Handle opens a draft for the caller and returns its order id, which is
// also the id the order will keep once built. Repeated calls return the id
// of the existing draft.
func (h *CreateDraftCommandHandler) Handle(_ context.Context, cmd CreateDraftCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	return h.registry.CreateDraft(cmd.Session().UserID())
}
