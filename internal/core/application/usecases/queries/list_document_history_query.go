package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListDocumentHistoryQueryIsNotConstructed = errors.New(
	"ListDocumentHistoryQuery must be created via NewListDocumentHistoryQuery constructor",
)

// ListDocumentHistoryQuery retrieves every handover document of an order in
// the order they were produced, so repeated handovers read as history.
type ListDocumentHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListDocumentHistoryQuery creates a query for an order's document
// history.
func NewListDocumentHistoryQuery(orderID kernel.UUID) (ListDocumentHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListDocumentHistoryQuery{}, err
	}

	return ListDocumentHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDocumentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrListDocumentHistoryQueryIsNotConstructed)
}

// OrderID returns the stock order whose documents are requested.
func (q ListDocumentHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}
