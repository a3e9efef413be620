package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListScanHistoryQueryIsNotConstructed = errors.New(
	"ListScanHistoryQuery must be created via NewListScanHistoryQuery constructor",
)

// listScanHistoryDefaultLimit bounds one history page when the caller does
// not ask for a specific size.
const listScanHistoryDefaultLimit = 100

// ListScanHistoryQuery retrieves the scan event trail of an order across
// all of its tasks, in insert order. The since cursor makes incremental
// polling cheap: pass the highest sequence seen so far to get only newer
// events.
type ListScanHistoryQuery struct {
	orderID kernel.UUID
	since   int64
	limit   int

	guard guard.ConstructorGuard
}

// NewListScanHistoryQuery creates a query for an order's scan history.
// A zero since returns the trail from the beginning; a non-positive limit
// falls back to the default page size.
func NewListScanHistoryQuery(orderID kernel.UUID, since int64, limit int) (ListScanHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListScanHistoryQuery{}, err
	}
	if limit <= 0 {
		limit = listScanHistoryDefaultLimit
	}

	return ListScanHistoryQuery{
		orderID: orderID,
		since:   since,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListScanHistoryQuery) Validate() error {
	return q.guard.Validate(ErrListScanHistoryQueryIsNotConstructed)
}

// OrderID returns the stock order whose history is requested.
func (q ListScanHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Since returns the sequence cursor; only events after it are returned.
func (q ListScanHistoryQuery) Since() int64 {
	return q.since
}

// Limit returns the page size.
func (q ListScanHistoryQuery) Limit() int {
	return q.limit
}

// ScanHistoryEventResponse represents one scan event in the read model.
type ScanHistoryEventResponse struct {
	ID         kernel.UUID
	Sequence   int64
	TaskID     kernel.UUID
	ItemID     *kernel.UUID
	Barcode    string
	Quantity   float64
	Source     string
	Message    string
	IsError    bool
	OccurredAt time.Time
	ActorID    kernel.UUID
}
