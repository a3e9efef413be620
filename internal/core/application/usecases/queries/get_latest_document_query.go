package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetLatestDocumentQueryIsNotConstructed = errors.New(
	"GetLatestDocumentQuery must be created via NewGetLatestDocumentQuery constructor",
)

// GetLatestDocumentQuery retrieves the current handover document of an
// order: the signed document when one exists, otherwise the most recent
// draft.
type GetLatestDocumentQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLatestDocumentQuery creates a query for an order's current
// document.
func NewGetLatestDocumentQuery(orderID kernel.UUID) (GetLatestDocumentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetLatestDocumentQuery{}, err
	}

	return GetLatestDocumentQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLatestDocumentQuery) Validate() error {
	return q.guard.Validate(ErrGetLatestDocumentQueryIsNotConstructed)
}

// OrderID returns the stock order whose document is requested.
func (q GetLatestDocumentQuery) OrderID() kernel.UUID {
	return q.orderID
}

// DocumentResponse represents one handover document in the read model.
// The snapshot is included as stored, so consumers see exactly what the
// document attests.
type DocumentResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	Number         int
	ExternalID     string
	Status         string
	Snapshot       document.Snapshot
	DraftArtifact  string
	SignedArtifact string
	CreatedAt      time.Time
	SignedAt       *time.Time
}
