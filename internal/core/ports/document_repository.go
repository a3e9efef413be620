package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
)

// DocumentRepository defines the persistence contract for handover document
// aggregates.
type DocumentRepository interface {
	// Add persists a new handover document aggregate to storage.
	Add(ctx context.Context, aggregate *document.HandoverDocument) error

	// Update persists changes to an existing handover document.
	// The update is version-checked: a ConcurrencyConflictError is
	// returned when the stored version no longer matches the one the
	// aggregate was loaded with.
	Update(ctx context.Context, aggregate *document.HandoverDocument) error

	// Get retrieves a handover document by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*document.HandoverDocument, error)

	// GetAllForOrder retrieves every handover document of a stock order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*document.HandoverDocument, error)

	// NextNumber returns the next per-order document number, starting
	// at 1 for an order without documents.
	NextNumber(ctx context.Context, orderID kernel.UUID) (int, error)
}
