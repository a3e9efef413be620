// Package ports defines repository and service interfaces for the
// fulfillment domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for stock order
// aggregates.
type OrderRepository interface {
	// Add persists a new stock order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.StockOrder) error

	// Update persists changes to an existing stock order aggregate.
	// The update is version-checked: a ConcurrencyConflictError is
	// returned when the stored version no longer matches the one the
	// aggregate was loaded with.
	Update(ctx context.Context, aggregate *order.StockOrder) error

	// Get retrieves a stock order aggregate by its unique identifier,
	// including all of its items.
	Get(ctx context.Context, id kernel.UUID) (*order.StockOrder, error)

	// GetAllActive retrieves all orders that have not reached the
	// Delivered status. Used by the status reconciliation job.
	GetAllActive(ctx context.Context) ([]*order.StockOrder, error)
}
