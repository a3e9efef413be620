package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/scantask"
)

// ScanTaskRepository defines the persistence contract for scan task
// aggregates and their append-only event trail.
type ScanTaskRepository interface {
	// Add persists a new scan task aggregate to storage.
	Add(ctx context.Context, aggregate *scantask.ScanTask) error

	// Update persists changes to an existing scan task aggregate.
	// The update is version-checked: a ConcurrencyConflictError is
	// returned when the stored version no longer matches the one the
	// aggregate was loaded with.
	Update(ctx context.Context, aggregate *scantask.ScanTask) error

	// Get retrieves a scan task aggregate by its unique identifier,
	// including all of its items.
	Get(ctx context.Context, id kernel.UUID) (*scantask.ScanTask, error)

	// GetAllForOrder retrieves every scan task of a stock order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*scantask.ScanTask, error)

	// AppendEvent inserts one immutable scan event. Storage assigns the
	// global sequence number at insert; events are never updated or
	// deleted afterwards.
	AppendEvent(ctx context.Context, event *scantask.ScanEvent) error
}
