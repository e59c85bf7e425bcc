package orderrepo

import (
	"context"
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a freshly built order to the database, with its files, ranges,
// services and first status history row in one create.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its complete object graph.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Files.Ranges").
		Preload("Services.Files").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_updates.id ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStatusForUpdate reads the order's status under a row-level lock.
// The surrounding transaction holds the lock until commit or rollback.
func (r *GormOrderRepository) GetStatusForUpdate(ctx context.Context, id kernel.UUID) (order.Status, error) {
	if err := id.Validate(); err != nil {
		return order.StatusUnknown, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "status").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.StatusUnknown, errs.NewObjectNotFoundError("order", id.String())
		}
		return order.StatusUnknown, err
	}

	return order.StatusFromString(dto.Status)
}

// UpdateStatus sets the order's status and appends the matching history row.
// Must run inside the transaction that acquired the row lock.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, update order.StatusUpdate) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Update("status", update.Status().String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	row := StatusUpdateDTO{
		OrderID:   id.Bytes(),
		Status:    update.Status().String(),
		Timestamp: update.Timestamp(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// IsOwnedBy reports whether the order exists and belongs to the owner.
func (r *GormOrderRepository) IsOwnedBy(ctx context.Context, id, ownerID kernel.UUID) (bool, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND owner_id = ?", id.Bytes(), ownerID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
