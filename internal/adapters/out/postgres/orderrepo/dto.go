// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The aggregate spans five tables: orders, their files, the print ranges per
// file, finishing services with their file references, and the append-only
// status history.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time `gorm:"index"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber string    `gorm:"size:8"`
	Status      string    `gorm:"size:16;index"`
	Notes       string
	Price       *int64

	Files         []FileDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Services      []ServiceDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory []StatusUpdateDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// FileDTO represents one finalized print file on an order.
type FileDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Filename  string
	Filetype  string `gorm:"size:8"`
	Filesize  int64
	ObjectKey string `gorm:"size:32;uniqueIndex"`

	Ranges []RangeDTO `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
}

// TableName maps file rows to order_files.
func (FileDTO) TableName() string {
	return "order_files"
}

// RangeDTO represents one print range of a file.
type RangeDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	FileID         uuid.UUID `gorm:"type:uuid;index"`
	Copies         int
	PageRange      string
	PaperVariantID *int32
	Orientation    string `gorm:"size:16"`
	IsColour       bool
	IsDoubleSided  bool
}

// TableName maps range rows to file_ranges.
func (RangeDTO) TableName() string {
	return "file_ranges"
}

// ServiceDTO represents one finishing service on an order. The service row
// itself carries no domain identity; the id exists only for persistence.
type ServiceDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	Kind            string    `gorm:"size:32"`
	BindingColourID *int32
	Notes           string

	Files []ServiceFileDTO `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
}

// TableName maps service rows to order_services.
func (ServiceDTO) TableName() string {
	return "order_services"
}

// ServiceFileDTO links a service to one of its order's files.
type ServiceFileDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ServiceID uuid.UUID `gorm:"type:uuid;index"`
	FileID    uuid.UUID `gorm:"type:uuid"`
}

// TableName maps service file links to order_service_files.
func (ServiceFileDTO) TableName() string {
	return "order_service_files"
}

// StatusUpdateDTO represents one row of an order's append-only status
// history. Rows are never updated or deleted; insertion order is the
// transition order.
type StatusUpdateDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    string    `gorm:"size:16"`
	Timestamp time.Time
}

// TableName maps history rows to order_status_updates.
func (StatusUpdateDTO) TableName() string {
	return "order_status_updates"
}

// fromDomain converts an order domain aggregate to its database
// representation, including all nested collections.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	files := make([]FileDTO, 0, len(aggregate.Files()))
	for _, f := range aggregate.Files() {
		ranges := make([]RangeDTO, 0, len(f.Ranges()))
		for _, r := range f.Ranges() {
			ranges = append(ranges, RangeDTO{
				ID:             r.ID().Bytes(),
				FileID:         f.ID().Bytes(),
				Copies:         r.Copies(),
				PageRange:      r.PageRange(),
				PaperVariantID: r.PaperVariantID(),
				Orientation:    r.Orientation().String(),
				IsColour:       r.IsColour(),
				IsDoubleSided:  r.IsDoubleSided(),
			})
		}

		files = append(files, FileDTO{
			ID:        f.ID().Bytes(),
			OrderID:   orderID,
			Filename:  f.Filename(),
			Filetype:  f.Filetype().String(),
			Filesize:  f.Filesize(),
			ObjectKey: f.ObjectKey(),
			Ranges:    ranges,
		})
	}

	services := make([]ServiceDTO, 0, len(aggregate.Services()))
	for _, s := range aggregate.Services() {
		serviceID := uuid.New()

		links := make([]ServiceFileDTO, 0, len(s.FileIDs()))
		for _, fileID := range s.FileIDs() {
			links = append(links, ServiceFileDTO{
				ServiceID: serviceID,
				FileID:    fileID.Bytes(),
			})
		}

		services = append(services, ServiceDTO{
			ID:              serviceID,
			OrderID:         orderID,
			Kind:            s.Kind().String(),
			BindingColourID: s.BindingColourID(),
			Notes:           s.Notes(),
			Files:           links,
		})
	}

	history := make([]StatusUpdateDTO, 0, len(aggregate.StatusHistory()))
	for _, u := range aggregate.StatusHistory() {
		history = append(history, StatusUpdateDTO{
			OrderID:   orderID,
			Status:    u.Status().String(),
			Timestamp: u.Timestamp(),
		})
	}

	return OrderDTO{
		ID:            orderID,
		CreatedAt:     aggregate.CreatedAt(),
		OwnerID:       aggregate.OwnerID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		Status:        aggregate.Status().String(),
		Notes:         aggregate.Notes(),
		Price:         aggregate.Price(),
		Files:         files,
		Services:      services,
		StatusHistory: history,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	files := make([]order.File, 0, len(dto.Files))
	for _, f := range dto.Files {
		file, fileErr := fileToDomain(f)
		if fileErr != nil {
			return nil, fileErr
		}
		files = append(files, file)
	}

	services := make([]order.Service, 0, len(dto.Services))
	for _, s := range dto.Services {
		service, serviceErr := serviceToDomain(s)
		if serviceErr != nil {
			return nil, serviceErr
		}
		services = append(services, service)
	}

	history := make([]order.StatusUpdate, 0, len(dto.StatusHistory))
	for _, u := range dto.StatusHistory {
		rowStatus, rowErr := order.StatusFromString(u.Status)
		if rowErr != nil {
			return nil, rowErr
		}

		update, rowErr := order.NewStatusUpdate(u.Timestamp, rowStatus)
		if rowErr != nil {
			return nil, rowErr
		}
		history = append(history, update)
	}

	return order.RestoreOrder(
		id,
		dto.CreatedAt,
		ownerID,
		dto.OrderNumber,
		status,
		dto.Notes,
		dto.Price,
		files,
		services,
		history,
	)
}

func fileToDomain(dto FileDTO) (order.File, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.File{}, err
	}

	filetype, err := order.FileTypeFromString(dto.Filetype)
	if err != nil {
		return order.File{}, err
	}

	ranges := make([]order.FileRange, 0, len(dto.Ranges))
	for _, r := range dto.Ranges {
		rangeID, rangeErr := kernel.UUIDFromBytes(r.ID[:])
		if rangeErr != nil {
			return order.File{}, rangeErr
		}

		orientation, rangeErr := order.PaperOrientationFromString(r.Orientation)
		if rangeErr != nil {
			return order.File{}, rangeErr
		}

		fileRange, rangeErr := order.NewFileRange(
			rangeID,
			r.Copies,
			r.PageRange,
			r.PaperVariantID,
			orientation,
			r.IsColour,
			r.IsDoubleSided,
		)
		if rangeErr != nil {
			return order.File{}, rangeErr
		}
		ranges = append(ranges, fileRange)
	}

	return order.NewFile(id, dto.Filename, filetype, dto.Filesize, dto.ObjectKey, ranges)
}

func serviceToDomain(dto ServiceDTO) (order.Service, error) {
	kind, err := order.ServiceTypeFromString(dto.Kind)
	if err != nil {
		return order.Service{}, err
	}

	fileIDs := make([]kernel.UUID, 0, len(dto.Files))
	for _, link := range dto.Files {
		fileID, linkErr := kernel.UUIDFromBytes(link.FileID[:])
		if linkErr != nil {
			return order.Service{}, linkErr
		}
		fileIDs = append(fileIDs, fileID)
	}

	return order.NewService(kind, dto.BindingColourID, dto.Notes, fileIDs)
}
