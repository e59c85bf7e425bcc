package commands_test

import (
	"testing"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/draft"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDraftCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should open a draft and return its id", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		session := clientSession(user.RoleStudent)
		cmd, err := commands.NewCreateDraftCommand(session)
		require.NoError(t, err)

		h := commands.NewCreateDraftCommandHandler(registry)

		id, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.NoError(t, registry.Exists(session.UserID(), id))
	})

	t.Run("should return the existing draft id on repeat", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		cmd, err := commands.NewCreateDraftCommand(clientSession(user.RoleTeacher))
		require.NoError(t, err)

		h := commands.NewCreateDraftCommandHandler(registry)

		first, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		second, err := h.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
	})

	t.Run("should reject a command built without the constructor", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		h := commands.NewCreateDraftCommandHandler(registry)

		_, err := h.Handle(ctx, commands.CreateDraftCommand{})

		require.ErrorIs(t, err, commands.ErrCreateDraftCommandIsNotConstructed)
	})
}

func TestNewCreateDraftCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateDraftCommand(user.Session{})
	require.Error(t, err)
}
