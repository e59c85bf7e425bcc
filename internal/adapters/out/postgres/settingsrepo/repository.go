// Package settingsrepo persists the single shop-wide settings row. It backs
// the order number sequencer: the last issued position is written here and
// restored on startup.
package settingsrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRowID is the fixed primary key of the only settings row.
const settingsRowID = 1

// SettingsDTO represents the settings table. A single row keyed by
// settingsRowID holds the sequence position and when it was saved.
type SettingsDTO struct {
	ID        uint `gorm:"primaryKey"`
	QueueSeq  int32
	UpdatedAt time.Time
}

// TableName maps the settings row to the settings table.
func (SettingsDTO) TableName() string {
	return "settings"
}

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// LoadQueueSeq reads the persisted sequence position. A missing row means a
// fresh installation: the sequence starts at its initial position.
func (r *GormSettingsRepository) LoadQueueSeq(ctx context.Context) (uint16, error) {
	var dto SettingsDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", settingsRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 1, nil
		}
		return 0, err
	}

	return uint16(dto.QueueSeq), nil
}

// SaveQueueSeq upserts the sequence position.
func (r *GormSettingsRepository) SaveQueueSeq(ctx context.Context, seq uint16) error {
	dto := SettingsDTO{
		ID:        settingsRowID,
		QueueSeq:  int32(seq),
		UpdatedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"queue_seq", "updated_at"}),
		}).
		Create(&dto).Error
}
