package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"printshop/internal/core/domain/model/draft"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStorage struct {
	mu          sync.Mutex
	missing     map[string]bool
	existsErr   error
	deleteErr   error
	existsCalls int
	deleted     []draft.StoredObject
}

func (s *stubStorage) Exists(_ context.Context, object draft.StoredObject) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.existsCalls++
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return !s.missing[object.Key], nil
}

func (s *stubStorage) DeleteObjects(_ context.Context, objects []draft.StoredObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, objects...)
	return nil
}

func stageFiles(t *testing.T, registry *services.DraftOrderRegistry, ownerID kernel.UUID, n int) []draft.File {
	t.Helper()

	files := make([]draft.File, 0, n)
	for range n {
		f, err := registry.StageFile(ownerID, order.FileTypePDF, 2048)
		require.NoError(t, err)
		files = append(files, f)
	}
	return files
}

func buildRequestFor(t *testing.T, staged []draft.File) services.BuildRequest {
	t.Helper()

	specs := make([]services.BuildFileSpec, 0, len(staged))
	for _, f := range staged {
		r, err := order.NewFileRange(kernel.NewUUID(), 1, "", nil, order.OrientationPortrait, false, false)
		require.NoError(t, err)

		specs = append(specs, services.BuildFileSpec{
			ID:       f.ID(),
			Filename: "document.pdf",
			Ranges:   []order.FileRange{r},
		})
	}

	return services.BuildRequest{Notes: "front desk pickup", Files: specs}
}

func TestDraftOrderRegistry_CreateDraft(t *testing.T) {
	t.Run("should create a draft and return its id", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		ownerID := kernel.NewUUID()

		id, err := registry.CreateDraft(ownerID)

		require.NoError(t, err)
		assert.NoError(t, id.Validate())
		assert.NoError(t, registry.Exists(ownerID, id))
	})

	t.Run("should be idempotent for an owner with a live draft", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		ownerID := kernel.NewUUID()

		first, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		stageFiles(t, registry, ownerID, 2)

		second, err := registry.CreateDraft(ownerID)

		require.NoError(t, err)
		assert.True(t, first.IsEqual(second))

		view, err := registry.GetOrder(ownerID)
		require.NoError(t, err)
		assert.Len(t, view.Files, 2, "staged files must survive a repeated create")
	})
}

func TestDraftOrderRegistry_CreatedAt(t *testing.T) {
	t.Run("should fail when the owner has no draft", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)

		_, err := registry.CreatedAt(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should report the draft's creation time", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		ownerID := kernel.NewUUID()

		before := time.Now().UTC()
		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)

		createdAt, err := registry.CreatedAt(ownerID)

		require.NoError(t, err)
		assert.False(t, createdAt.Before(before))
		assert.False(t, createdAt.After(time.Now().UTC()))
	})
}

func TestDraftOrderRegistry_StageFile(t *testing.T) {
	t.Run("should fail when the owner has no draft", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)

		_, err := registry.StageFile(kernel.NewUUID(), order.FileTypePDF, 100)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject the file beyond the limit", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		ownerID := kernel.NewUUID()
		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)

		stageFiles(t, registry, ownerID, order.MaxFileLimit)

		_, err = registry.StageFile(ownerID, order.FileTypePDF, 100)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should issue distinct object keys", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		ownerID := kernel.NewUUID()
		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)

		files := stageFiles(t, registry, ownerID, 3)

		keys := make(map[string]struct{})
		for _, f := range files {
			assert.Len(t, f.ObjectKey(), 32)
			keys[f.ObjectKey()] = struct{}{}
		}
		assert.Len(t, keys, 3)
	})
}

func TestDraftOrderRegistry_RemoveFile(t *testing.T) {
	registry := services.NewDraftOrderRegistry(draft.TTL, nil)
	ownerID := kernel.NewUUID()
	_, err := registry.CreateDraft(ownerID)
	require.NoError(t, err)
	files := stageFiles(t, registry, ownerID, 2)

	require.NoError(t, registry.RemoveFile(ownerID, files[0].ID()))

	_, err = registry.GetFile(ownerID, files[0].ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	// removal is idempotent
	require.NoError(t, registry.RemoveFile(ownerID, files[0].ID()))

	view, err := registry.GetOrder(ownerID)
	require.NoError(t, err)
	assert.Len(t, view.Files, 1)
}

func TestDraftOrderRegistry_Build(t *testing.T) {
	ctx := context.Background()

	t.Run("should promote the draft into a reviewing order", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		sequencer := services.NewOrderNumberSequencer(1)
		storage := &stubStorage{}
		ownerID := kernel.NewUUID()

		draftID, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		staged := stageFiles(t, registry, ownerID, 2)

		built, err := registry.Build(ctx, storage, sequencer, ownerID, buildRequestFor(t, staged))

		require.NoError(t, err)
		assert.True(t, built.ID().IsEqual(draftID), "built order keeps the draft id")
		assert.True(t, built.OwnerID().IsEqual(ownerID))
		assert.Equal(t, "A-002", built.OrderNumber())
		assert.Equal(t, order.StatusReviewing, built.Status())
		assert.Len(t, built.Files(), 2)
		require.Len(t, built.StatusHistory(), 1)
		assert.Equal(t, order.StatusReviewing, built.StatusHistory()[0].Status())

		// draft is consumed
		require.ErrorIs(t, registry.Exists(ownerID, draftID), errs.ErrObjectNotFound)
	})

	t.Run("should leave the draft untouched when an object is missing", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		sequencer := services.NewOrderNumberSequencer(1)
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		staged := stageFiles(t, registry, ownerID, 2)

		storage := &stubStorage{missing: map[string]bool{staged[1].ObjectKey(): true}}

		_, err = registry.Build(ctx, storage, sequencer, ownerID, buildRequestFor(t, staged))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		view, viewErr := registry.GetOrder(ownerID)
		require.NoError(t, viewErr)
		assert.Len(t, view.Files, 2, "failed build must not consume staged files")
		assert.Equal(t, uint16(1), sequencer.Current(), "failed build must not advance the sequence")
	})

	t.Run("should check objects of staged files the request leaves out", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		sequencer := services.NewOrderNumberSequencer(1)
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		staged := stageFiles(t, registry, ownerID, 2)

		// the second staged file is not in the request and its upload
		// never happened
		storage := &stubStorage{missing: map[string]bool{staged[1].ObjectKey(): true}}

		_, err = registry.Build(ctx, storage, sequencer, ownerID, buildRequestFor(t, staged[:1]))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 2, storage.existsCalls, "both staged objects must be checked")

		view, viewErr := registry.GetOrder(ownerID)
		require.NoError(t, viewErr)
		assert.Len(t, view.Files, 2)
	})

	t.Run("should reject a request referencing an unknown file", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		sequencer := services.NewOrderNumberSequencer(1)
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		staged := stageFiles(t, registry, ownerID, 1)

		req := buildRequestFor(t, staged)
		req.Files[0].ID = kernel.NewUUID()

		storage := &stubStorage{}
		_, err = registry.Build(ctx, storage, sequencer, ownerID, req)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Zero(t, storage.existsCalls, "a malformed request must not reach storage")

		view, viewErr := registry.GetOrder(ownerID)
		require.NoError(t, viewErr)
		assert.Len(t, view.Files, 1)
	})

	t.Run("should reject an out-of-range ranges count before touching storage", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		sequencer := services.NewOrderNumberSequencer(1)
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		staged := stageFiles(t, registry, ownerID, 1)

		req := buildRequestFor(t, staged)
		req.Files[0].Ranges = nil

		storage := &stubStorage{}
		_, err = registry.Build(ctx, storage, sequencer, ownerID, req)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Zero(t, storage.existsCalls)
	})

	t.Run("should reject a request with no files", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		sequencer := services.NewOrderNumberSequencer(1)
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		stageFiles(t, registry, ownerID, 1)

		_, err = registry.Build(ctx, &stubStorage{}, sequencer, ownerID, services.BuildRequest{})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject a build on an empty draft", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		sequencer := services.NewOrderNumberSequencer(1)
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)

		_, err = registry.Build(ctx, &stubStorage{}, sequencer, ownerID, services.BuildRequest{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should attach services referencing built files", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		sequencer := services.NewOrderNumberSequencer(1)
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		staged := stageFiles(t, registry, ownerID, 2)

		req := buildRequestFor(t, staged)
		req.Services = []services.BuildServiceSpec{{
			Kind:    order.ServiceTypeLaminate,
			FileIDs: []kernel.UUID{staged[0].ID(), staged[1].ID()},
		}}

		built, err := registry.Build(ctx, &stubStorage{}, sequencer, ownerID, req)

		require.NoError(t, err)
		require.Len(t, built.Services(), 1)
		assert.Equal(t, order.ServiceTypeLaminate, built.Services()[0].Kind())
	})
}

func TestDraftOrderRegistry_ClearExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("should sweep expired drafts and delete their objects", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(time.Nanosecond, nil)
		storage := &stubStorage{}
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		staged := stageFiles(t, registry, ownerID, 2)

		time.Sleep(5 * time.Millisecond)

		removed := registry.ClearExpired(ctx, storage)

		assert.Equal(t, 1, removed)
		require.Len(t, storage.deleted, 2)
		assert.Equal(t, staged[0].ObjectKey(), storage.deleted[0].Key)

		_, err = registry.GetOrder(ownerID)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should keep fresh drafts", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(time.Hour, nil)
		storage := &stubStorage{}
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)
		stageFiles(t, registry, ownerID, 1)

		removed := registry.ClearExpired(ctx, storage)

		assert.Equal(t, 0, removed)
		assert.Empty(t, storage.deleted)

		_, err = registry.GetOrder(ownerID)
		require.NoError(t, err)
	})
}

func TestDraftOrderRegistry_Concurrency(t *testing.T) {
	t.Run("should isolate owners from each other", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		owners := make([]kernel.UUID, 32)
		for i := range owners {
			owners[i] = kernel.NewUUID()
		}

		var wg sync.WaitGroup
		for _, ownerID := range owners {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := registry.CreateDraft(ownerID); err != nil {
					t.Error(err)
					return
				}
				for range 3 {
					if _, err := registry.StageFile(ownerID, order.FileTypePDF, 100); err != nil {
						t.Error(err)
					}
				}
			}()
		}
		wg.Wait()

		for _, ownerID := range owners {
			view, err := registry.GetOrder(ownerID)
			require.NoError(t, err)
			assert.Len(t, view.Files, 3)
		}
	})

	t.Run("should enforce the file limit under contention", func(t *testing.T) {
		registry := services.NewDraftOrderRegistry(draft.TTL, nil)
		ownerID := kernel.NewUUID()

		_, err := registry.CreateDraft(ownerID)
		require.NoError(t, err)

		var wg sync.WaitGroup
		var staged atomic.Int32
		for range order.MaxFileLimit * 3 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := registry.StageFile(ownerID, order.FileTypePDF, 100); err == nil {
					staged.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(order.MaxFileLimit), staged.Load())

		view, err := registry.GetOrder(ownerID)
		require.NoError(t, err)
		assert.Len(t, view.Files, order.MaxFileLimit)
	})
}
