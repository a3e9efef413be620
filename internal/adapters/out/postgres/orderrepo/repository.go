package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStockOrderRepository implements OrderRepository using GORM.
type GormStockOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStockOrderRepository creates a new GORM stock order repository.
func NewGormStockOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormStockOrderRepository {
	return &GormStockOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stock order with its lines to the database.
// A freshly created aggregate is stored with version 1.
func (r *GormStockOrderRepository) Add(ctx context.Context, aggregate *order.StockOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing stock order to the database. The parent row is
// updated only when the stored version still matches the version the
// aggregate was loaded with; otherwise a ConcurrencyConflictError is
// returned and nothing is written.
func (r *GormStockOrderRepository) Update(ctx context.Context, aggregate *order.StockOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&StockOrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"recipient_name":   dto.RecipientName,
			"status":           dto.Status,
			"last_handover_at": dto.LastHandoverAt,
			"last_handover_by": dto.LastHandoverBy,
			"delivered_at":     dto.DeliveredAt,
			"delivered_by":     dto.DeliveredBy,
			"version":          aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("stockOrder", aggregate.ID().String())
	}

	// Lines carry the delivered totals; their identity never changes.
	for i := range dto.Items {
		if err := r.db.WithContext(ctx).Save(&dto.Items[i]).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a stock order by ID, including all of its lines.
func (r *GormStockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.StockOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StockOrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stockOrder", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves all orders that have not reached the Delivered
// status. Used by the status reconciliation job.
func (r *GormStockOrderRepository) GetAllActive(ctx context.Context) ([]*order.StockOrder, error) {
	var dtos []StockOrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Find(&dtos, "status <> ?", int(order.Delivered)).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.StockOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
