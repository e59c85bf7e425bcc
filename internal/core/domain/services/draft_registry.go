package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"printshop/internal/core/domain/model/draft"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
)

// draftShardCount is the number of lock shards the registry spreads owners
// across. Must be a power of two.
const draftShardCount = 32

// ObjectChecker verifies that a staged object was actually uploaded to the
// object store. Implemented by the object storage adapter.
type ObjectChecker interface {
	Exists(ctx context.Context, object draft.StoredObject) (bool, error)
}

// ObjectDeleter removes staged objects from the object store. Implemented by
// the object storage adapter; used by the expiry sweep.
type ObjectDeleter interface {
	DeleteObjects(ctx context.Context, objects []draft.StoredObject) error
}

// BuildFileSpec is the client-supplied print specification for one staged
// file: which staged upload it refers to, the display filename, and the
// page ranges to print.
type BuildFileSpec struct {
	ID       kernel.UUID
	Filename string
	Ranges   []order.FileRange
}

// BuildServiceSpec is the client-supplied specification for one finishing
// service on the order being built.
type BuildServiceSpec struct {
	Kind            order.ServiceType
	BindingColourID *int32
	Notes           string
	FileIDs         []kernel.UUID
}

// BuildRequest carries everything a client submits to promote its draft
// into a confirmed order.
type BuildRequest struct {
	Notes    string
	Files    []BuildFileSpec
	Services []BuildServiceSpec
}

// draftEntry is one owner's slot in the registry. Its mutex serializes all
// operations on the owner's draft, including the storage round-trips a build
// performs, so a build can never interleave with a concurrent stage or
// remove on the same draft.
//
// removed marks an entry that has been taken out of its shard while a waiter
// was blocked on the mutex; such waiters must retry the shard lookup.
type draftEntry struct {
	mu      sync.Mutex
	removed bool
	order   *draft.Order
}

type draftShard struct {
	mu     sync.Mutex
	drafts map[kernel.UUID]*draftEntry
}

// DraftView is a read-only snapshot of an owner's draft.
type DraftView struct {
	ID        kernel.UUID
	CreatedAt time.Time
	Files     []draft.File
}

// DraftOrderRegistry is the in-memory staging area for draft orders, keyed
// by owner. Each owner holds at most one draft at a time. The registry is
// safe for concurrent use: lookups take a short shard lock, mutations take
// the per-owner entry lock, and promotion of a draft into an order is atomic
// with respect to every other operation on the same owner.
//
// Drafts are never persisted. A draft either gets promoted by Build or is
// reclaimed by ClearExpired once its TTL elapses.
type DraftOrderRegistry struct {
	shards [draftShardCount]*draftShard
	ttl    time.Duration
	logger *slog.Logger
}

// NewDraftOrderRegistry creates an empty registry. A non-positive ttl falls
// back to draft.TTL.
func NewDraftOrderRegistry(ttl time.Duration, logger *slog.Logger) *DraftOrderRegistry {
	if ttl <= 0 {
		ttl = draft.TTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &DraftOrderRegistry{ttl: ttl, logger: logger}
	for i := range r.shards {
		r.shards[i] = &draftShard{drafts: make(map[kernel.UUID]*draftEntry)}
	}
	return r
}

func (r *DraftOrderRegistry) shardFor(ownerID kernel.UUID) *draftShard {
	h := fnv.New32a()
	raw := ownerID.Bytes()
	_, _ = h.Write(raw[:])
	return r.shards[h.Sum32()&(draftShardCount-1)]
}

// lockEntry locks and returns the owner's entry. Because an entry can be
// removed between the shard lookup and acquiring its mutex, callers that
// lose that race retry the lookup until they either lock a live entry or
// find none.
func (r *DraftOrderRegistry) lockEntry(ownerID kernel.UUID) (*draftEntry, error) {
	shard := r.shardFor(ownerID)
	for {
		shard.mu.Lock()
		entry, ok := shard.drafts[ownerID]
		shard.mu.Unlock()

		if !ok {
			return nil, errs.NewObjectNotFoundError("draft", ownerID.String())
		}

		entry.mu.Lock()
		if entry.removed {
			entry.mu.Unlock()
			continue
		}
		return entry, nil
	}
}

// removeEntry takes a locked entry out of its shard. The caller must hold
// entry.mu; waiters blocked on it observe removed and retry.
func (r *DraftOrderRegistry) removeEntry(ownerID kernel.UUID, entry *draftEntry) {
	shard := r.shardFor(ownerID)
	shard.mu.Lock()
	delete(shard.drafts, ownerID)
	shard.mu.Unlock()
	entry.removed = true
}

// CreateDraft opens a new draft for the owner and returns its order id. The
// operation is idempotent: when the owner already holds a live draft, the
// existing draft's id is returned and nothing changes.
func (r *DraftOrderRegistry) CreateDraft(ownerID kernel.UUID) (kernel.UUID, error) {
	if err := ownerID.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	shard := r.shardFor(ownerID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if entry, ok := shard.drafts[ownerID]; ok {
		return entry.order.ID(), nil
	}

	draftOrder, err := draft.NewOrder(kernel.NewUUID())
	if err != nil {
		return kernel.UUID{}, err
	}
	shard.drafts[ownerID] = &draftEntry{order: draftOrder}

	return draftOrder.ID(), nil
}

// Exists reports whether the owner holds a live draft with the given order
// id. A draft belonging to the owner but carrying a different id is treated
// as not found.
func (r *DraftOrderRegistry) Exists(ownerID, orderID kernel.UUID) error {
	entry, err := r.lockEntry(ownerID)
	if err != nil {
		return err
	}
	defer entry.mu.Unlock()

	if !entry.order.ID().IsEqual(orderID) {
		return errs.NewObjectNotFoundError("draft", orderID.String())
	}
	return nil
}

// GetOrder returns a snapshot of the owner's draft.
func (r *DraftOrderRegistry) GetOrder(ownerID kernel.UUID) (DraftView, error) {
	entry, err := r.lockEntry(ownerID)
	if err != nil {
		return DraftView{}, err
	}
	defer entry.mu.Unlock()

	return DraftView{
		ID:        entry.order.ID(),
		CreatedAt: entry.order.CreatedAt(),
		Files:     entry.order.Files(),
	}, nil
}

// CreatedAt returns when the owner's draft was started.
func (r *DraftOrderRegistry) CreatedAt(ownerID kernel.UUID) (time.Time, error) {
	entry, err := r.lockEntry(ownerID)
	if err != nil {
		return time.Time{}, err
	}
	defer entry.mu.Unlock()

	return entry.order.CreatedAt(), nil
}

// GetFile returns the staged file with the given id from the owner's draft.
func (r *DraftOrderRegistry) GetFile(ownerID, fileID kernel.UUID) (draft.File, error) {
	entry, err := r.lockEntry(ownerID)
	if err != nil {
		return draft.File{}, err
	}
	defer entry.mu.Unlock()

	return entry.order.GetFile(fileID)
}

// StageFile reserves a new upload slot on the owner's draft and returns it.
// Fails when the owner has no draft, the file limit is reached, or the
// declared metadata is invalid.
func (r *DraftOrderRegistry) StageFile(
	ownerID kernel.UUID,
	filetype order.FileType,
	filesize int64,
) (draft.File, error) {
	entry, err := r.lockEntry(ownerID)
	if err != nil {
		return draft.File{}, err
	}
	defer entry.mu.Unlock()

	return entry.order.AddFile(filetype, filesize)
}

// RemoveFile unstages a file from the owner's draft. Removing a file that
// is not staged is not an error.
func (r *DraftOrderRegistry) RemoveFile(ownerID, fileID kernel.UUID) error {
	entry, err := r.lockEntry(ownerID)
	if err != nil {
		return err
	}
	defer entry.mu.Unlock()

	entry.order.RemoveFile(fileID)
	return nil
}

// Build promotes the owner's draft into a confirmed order. Under the
// owner's entry lock it validates the request against the staged files,
// verifies every staged object actually exists in storage, assembles
// the order aggregate, and only then removes the draft. On any failure the
// draft is left exactly as it was, so the client can correct the request
// and retry.
//
// The sequencer is advanced only on the success path, right before the
// aggregate is assembled.
func (r *DraftOrderRegistry) Build(
	ctx context.Context,
	storage ObjectChecker,
	sequencer *OrderNumberSequencer,
	ownerID kernel.UUID,
	req BuildRequest,
) (*order.Order, error) {
	entry, err := r.lockEntry(ownerID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()

	staged, err := r.resolveRequestedFiles(entry.order, req)
	if err != nil {
		return nil, err
	}

	// Every staged file is checked, not just the requested ones: a draft
	// holding a file whose upload never happened must not promote, or the
	// dangling object key would be dropped without anyone noticing.
	if err := r.checkObjectsExist(ctx, storage, entry.order.Files()); err != nil {
		return nil, err
	}

	files := make([]order.File, 0, len(req.Files))
	for i, spec := range req.Files {
		file, err := order.NewFile(
			spec.ID,
			spec.Filename,
			staged[i].Filetype(),
			staged[i].Filesize(),
			staged[i].ObjectKey(),
			spec.Ranges,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	services := make([]order.Service, 0, len(req.Services))
	for _, spec := range req.Services {
		service, err := order.NewService(spec.Kind, spec.BindingColourID, spec.Notes, spec.FileIDs)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	orderNumber := OrderNumber(sequencer.Next())

	built, err := order.NewOrder(
		entry.order.ID(),
		entry.order.CreatedAt(),
		ownerID,
		orderNumber,
		req.Notes,
		files,
		services,
	)
	if err != nil {
		return nil, err
	}

	r.removeEntry(ownerID, entry)

	return built, nil
}

// resolveRequestedFiles maps every file spec in the request to its staged
// counterpart, rejecting empty, oversized and duplicated specs. A spec
// referencing a file that was never staged is a malformed request, not a
// missing resource, and fails as such.
func (r *DraftOrderRegistry) resolveRequestedFiles(
	draftOrder *draft.Order,
	req BuildRequest,
) ([]draft.File, error) {
	if draftOrder.FilesLen() == 0 {
		return nil, errs.NewValueIsInvalidError("draft has no staged files")
	}

	if len(req.Files) < 1 || len(req.Files) > order.MaxFileLimit {
		return nil, errs.NewValueIsOutOfRangeError(
			"requested files", len(req.Files), 1, order.MaxFileLimit,
		)
	}

	seen := make(map[kernel.UUID]struct{}, len(req.Files))
	staged := make([]draft.File, 0, len(req.Files))
	for _, spec := range req.Files {
		if _, ok := seen[spec.ID]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"requested files are invalid",
				fmt.Errorf("file %s is referenced twice", spec.ID),
			)
		}
		seen[spec.ID] = struct{}{}

		if len(spec.Ranges) < 1 || len(spec.Ranges) > order.MaxFileRanges {
			return nil, errs.NewValueIsOutOfRangeError(
				"file ranges", len(spec.Ranges), 1, order.MaxFileRanges,
			)
		}

		if !draftOrder.ContainsFile(spec.ID) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"requested files are invalid",
				fmt.Errorf("file %s is not staged", spec.ID),
			)
		}

		file, err := draftOrder.GetFile(spec.ID)
		if err != nil {
			return nil, err
		}
		staged = append(staged, file)
	}

	return staged, nil
}

// checkObjectsExist verifies every staged object on the draft was actually
// uploaded, with at most order.MaxFileLimit concurrent checks. An absent
// object means the client confirmed a build before finishing (or after
// abandoning) an upload, so it is reported as an invalid request.
func (r *DraftOrderRegistry) checkObjectsExist(
	ctx context.Context,
	storage ObjectChecker,
	staged []draft.File,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(order.MaxFileLimit)

	for _, file := range staged {
		g.Go(func() error {
			ok, err := storage.Exists(gctx, file.StoredObject())
			if err != nil {
				return fmt.Errorf("checking stored object %s: %w", file.ObjectKey(), err)
			}
			if !ok {
				return errs.NewValueIsInvalidErrorWithCause(
					"staged object is missing",
					fmt.Errorf("object %s was never uploaded", file.ObjectKey()),
				)
			}
			return nil
		})
	}

	return g.Wait()
}

// ClearExpired removes every draft whose TTL elapsed before now and issues a
// single best-effort delete for all their stored objects. A failed delete is
// logged, not propagated: the objects become orphans, which is acceptable
// for ephemeral staging data. Returns the number of drafts removed.
func (r *DraftOrderRegistry) ClearExpired(ctx context.Context, storage ObjectDeleter) int {
	now := time.Now().UTC()

	var doomed []draft.StoredObject
	removed := 0

	for _, shard := range r.shards {
		shard.mu.Lock()
		owners := make([]kernel.UUID, 0, len(shard.drafts))
		for ownerID := range shard.drafts {
			owners = append(owners, ownerID)
		}
		shard.mu.Unlock()

		for _, ownerID := range owners {
			entry, err := r.lockEntry(ownerID)
			if err != nil {
				continue // promoted or already swept
			}
			if entry.order.ExpiredAt(now, r.ttl) {
				doomed = append(doomed, entry.order.StoredObjects()...)
				r.removeEntry(ownerID, entry)
				removed++
			}
			entry.mu.Unlock()
		}
	}

	if len(doomed) > 0 {
		if err := storage.DeleteObjects(ctx, doomed); err != nil {
			r.logger.Warn("failed to delete expired draft objects",
				slog.Int("objects", len(doomed)),
				slog.Any("error", err))
		}
	}

	return removed
}
