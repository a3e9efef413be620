// Package orderrepo provides data transfer objects and mapping functions for
// stock order persistence. This package implements the repository pattern for
// the stock order domain aggregate, handling the conversion between domain
// entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StockOrderDTO represents the database structure for persisting stock order
// aggregates. The version column backs optimistic concurrency control for
// version-checked updates.
type StockOrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ExternalRef    string     `gorm:"type:varchar(255);not null"`
	RecipientName  string     `gorm:"type:varchar(255)"`
	Status         int        `gorm:"type:int;not null;index"`
	CreatedAt      time.Time  `gorm:"not null"`
	LastHandoverAt *time.Time
	LastHandoverBy *uuid.UUID `gorm:"type:uuid"`
	DeliveredAt    *time.Time
	DeliveredBy    *uuid.UUID `gorm:"type:uuid"`
	Version        int64      `gorm:"type:bigint;not null"`
	Items          []ItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for stock order entities.
// Overrides GORM's default naming convention to use "stock_orders".
func (StockOrderDTO) TableName() string {
	return "stock_orders"
}

// ItemDTO represents the database structure for persisting ordered lines.
// Links to the stock order via foreign key.
type ItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductCode       string    `gorm:"type:varchar(64);not null"`
	ProductName       string    `gorm:"type:varchar(255);not null"`
	Unit              string    `gorm:"type:varchar(32)"`
	QuantityOrdered   float64   `gorm:"not null"`
	QuantityDelivered float64   `gorm:"not null"`
}

// TableName specifies the database table name for ordered line entities.
// Overrides GORM's default naming convention to use "stock_order_items".
func (ItemDTO) TableName() string {
	return "stock_order_items"
}

// fromDomain converts a stock order domain aggregate to its database
// representation. Maps all ordered lines and handover bookkeeping.
func fromDomain(aggregate *order.StockOrder) StockOrderDTO {
	orderID := aggregate.ID().Bytes()
	items := make([]ItemDTO, 0, len(aggregate.Items()))

	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:                item.ID().Bytes(),
			OrderID:           orderID,
			ProductCode:       item.ProductCode(),
			ProductName:       item.ProductName(),
			Unit:              item.Unit(),
			QuantityOrdered:   item.QuantityOrdered(),
			QuantityDelivered: item.QuantityDelivered(),
		})
	}

	return StockOrderDTO{
		ID:             orderID,
		ExternalRef:    aggregate.ExternalRef(),
		RecipientName:  aggregate.RecipientName(),
		Status:         int(aggregate.Status()),
		CreatedAt:      aggregate.CreatedAt(),
		LastHandoverAt: aggregate.LastHandoverAt(),
		LastHandoverBy: uuidPtr(aggregate.LastHandoverBy()),
		DeliveredAt:    aggregate.DeliveredAt(),
		DeliveredBy:    uuidPtr(aggregate.DeliveredBy()),
		Version:        aggregate.Version(),
		Items:          items,
	}
}

// toDomain converts a database DTO to a stock order domain aggregate.
// Reconstructs the complete aggregate including all ordered lines using
// RestoreStockOrder.
func toDomain(dto StockOrderDTO) (*order.StockOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	lastHandoverBy, err := kernelUUIDPtr(dto.LastHandoverBy)
	if err != nil {
		return nil, err
	}

	deliveredBy, err := kernelUUIDPtr(dto.DeliveredBy)
	if err != nil {
		return nil, err
	}

	return order.RestoreStockOrder(
		id,
		dto.ExternalRef,
		dto.RecipientName,
		order.Status(dto.Status),
		items,
		dto.CreatedAt,
		dto.LastHandoverAt,
		lastHandoverBy,
		dto.DeliveredAt,
		deliveredBy,
		dto.Version,
	)
}

// itemToDomain converts an ordered line DTO to its domain entity.
// Uses RestoreItem to reconstruct the entity with its persisted state.
func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id,
		dto.ProductCode,
		dto.ProductName,
		dto.Unit,
		dto.QuantityOrdered,
		dto.QuantityDelivered,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	kID, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &kID, nil
}
