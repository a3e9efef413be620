// Package taskrepo provides data transfer objects and mapping functions for
// scan task persistence. This package implements the repository pattern for
// the scan task domain aggregate and its append-only scan event trail,
// handling the conversion between domain entities and database
// representations.
package taskrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/scantask"

	"github.com/google/uuid"
)

// ScanTaskDTO represents the database structure for persisting scan task
// aggregates. The version column backs optimistic concurrency control for
// version-checked updates.
type ScanTaskDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	Name      string        `gorm:"type:varchar(255);not null"`
	Status    int           `gorm:"type:int;not null"`
	CreatedAt time.Time     `gorm:"not null"`
	Version   int64         `gorm:"type:bigint;not null"`
	Items     []TaskItemDTO `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for scan task entities.
// Overrides GORM's default naming convention to use "scan_tasks".
func (ScanTaskDTO) TableName() string {
	return "scan_tasks"
}

// TaskItemDTO represents the database structure for persisting task lines.
// Links to the scan task via foreign key and references the ordered line it
// was planned from.
type TaskItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null"`
	Barcode     string    `gorm:"type:varchar(64);not null"`
	ExpectedQty float64   `gorm:"not null"`
	ScannedQty  float64   `gorm:"not null"`
}

// TableName specifies the database table name for task line entities.
// Overrides GORM's default naming convention to use "scan_task_items".
func (TaskItemDTO) TableName() string {
	return "scan_task_items"
}

// ScanEventDTO represents the database structure for the append-only scan
// event trail. The seq column is a bigserial assigned by the database at
// insert, giving events a global total order for cursor pagination.
type ScanEventDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq        int64      `gorm:"autoIncrement;uniqueIndex"`
	TaskID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemID     *uuid.UUID `gorm:"type:uuid"`
	Barcode    string     `gorm:"type:varchar(64)"`
	Quantity   float64    `gorm:"not null"`
	Source     int        `gorm:"type:int;not null"`
	Message    string     `gorm:"type:varchar(255)"`
	IsError    bool       `gorm:"not null"`
	OccurredAt time.Time  `gorm:"not null"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null"`
}

// TableName specifies the database table name for scan event entities.
// Overrides GORM's default naming convention to use "scan_events".
func (ScanEventDTO) TableName() string {
	return "scan_events"
}

// fromDomain converts a scan task domain aggregate to its database
// representation. Maps all task lines and their running scanned totals.
func fromDomain(aggregate *scantask.ScanTask) ScanTaskDTO {
	taskID := aggregate.ID().Bytes()
	items := make([]TaskItemDTO, 0, len(aggregate.Items()))

	for _, item := range aggregate.Items() {
		items = append(items, TaskItemDTO{
			ID:          item.ID().Bytes(),
			TaskID:      taskID,
			OrderItemID: item.OrderItemID().Bytes(),
			Barcode:     item.Barcode().String(),
			ExpectedQty: item.ExpectedQty(),
			ScannedQty:  item.ScannedQty(),
		})
	}

	return ScanTaskDTO{
		ID:        taskID,
		OrderID:   aggregate.OrderID().Bytes(),
		Name:      aggregate.Name(),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
		Version:   aggregate.Version(),
		Items:     items,
	}
}

// eventFromDomain converts a scan event to its database representation.
// The seq column stays zero so the database assigns it at insert.
func eventFromDomain(event *scantask.ScanEvent) ScanEventDTO {
	var itemID *uuid.UUID
	if id := event.ItemID(); id != nil {
		raw := id.Bytes()
		itemID = &raw
	}

	return ScanEventDTO{
		ID:         event.ID().Bytes(),
		TaskID:     event.TaskID().Bytes(),
		ItemID:     itemID,
		Barcode:    event.Barcode(),
		Quantity:   event.Quantity(),
		Source:     int(event.Source()),
		Message:    event.Message(),
		IsError:    event.IsError(),
		OccurredAt: event.OccurredAt(),
		ActorID:    event.Actor().Bytes(),
	}
}

// toDomain converts a database DTO to a scan task domain aggregate.
// Reconstructs the complete aggregate including all task lines using
// RestoreScanTask.
func toDomain(dto ScanTaskDTO) (*scantask.ScanTask, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*scantask.TaskItem, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return scantask.RestoreScanTask(
		id,
		orderID,
		dto.Name,
		scantask.Status(dto.Status),
		items,
		dto.CreatedAt,
		dto.Version,
	)
}

// itemToDomain converts a task line DTO to its domain entity.
// Uses RestoreTaskItem to reconstruct the entity with its persisted state.
func itemToDomain(dto TaskItemDTO) (*scantask.TaskItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}

	barcode, err := kernel.NewBarcode(dto.Barcode)
	if err != nil {
		return nil, err
	}

	return scantask.RestoreTaskItem(id, orderItemID, barcode, dto.ExpectedQty, dto.ScannedQty)
}
