package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/scantask"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListScanHistoryQueryHandler retrieves the scan event trail of an order
// from the database, joining events through the order's tasks.
type ListScanHistoryQueryHandler struct {
	db *gorm.DB
}

// NewListScanHistoryQueryHandler creates a handler for scan history
// queries. Requires a GORM database connection for query execution.
func NewListScanHistoryQueryHandler(db *gorm.DB) ListScanHistoryQueryHandler {
	return ListScanHistoryQueryHandler{db: db}
}

// Handle executes the history query. Events come back in sequence order so
// the trail reads as it happened; an order without events yields an empty
// page, not an error.
func (h ListScanHistoryQueryHandler) Handle(
	ctx context.Context,
	query ListScanHistoryQuery,
) ([]ScanHistoryEventResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			e.id,
			e.seq,
			e.task_id,
			e.item_id,
			e.barcode,
			e.quantity,
			e.source,
			e.message,
			e.is_error,
			e.occurred_at,
			e.actor_id
		FROM scan_events e
		JOIN scan_tasks t ON t.id = e.task_id
		WHERE t.order_id = ? AND e.seq > ?
		ORDER BY e.seq
		LIMIT ?
	`, query.OrderID().String(), query.Since(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]ScanHistoryEventResponse, 0)
	for rows.Next() {
		var event ScanHistoryEventResponse
		var id, taskID, actorID uuid.UUID
		var itemID *uuid.UUID
		var source int

		if err = rows.Scan(
			&id,
			&event.Sequence,
			&taskID,
			&itemID,
			&event.Barcode,
			&event.Quantity,
			&source,
			&event.Message,
			&event.IsError,
			&event.OccurredAt,
			&actorID,
		); err != nil {
			return nil, err
		}

		if event.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if event.TaskID, err = kernel.UUIDFromBytes(taskID[:]); err != nil {
			return nil, err
		}
		if event.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		if itemID != nil {
			eventItemID, idErr := kernel.UUIDFromBytes(itemID[:])
			if idErr != nil {
				return nil, idErr
			}
			event.ItemID = &eventItemID
		}
		event.Source = scantask.Source(source).String()
		events = append(events, event)
	}

	return events, rows.Err()
}
