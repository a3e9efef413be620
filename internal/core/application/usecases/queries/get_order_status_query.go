// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery retrieves the fulfillment state of one stock order:
// its projected status, per-item progress and the tasks working on it.
//
// Example:
//
//	query, _ := NewGetOrderStatusQuery(orderID)
//	handler := NewGetOrderStatusQueryHandler(db)
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", status.ExternalRef, status.Status)
type GetOrderStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for one order's fulfillment state.
func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return GetOrderStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the stock order to look up.
func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemStatusResponse is the per-item progress of an order in the read
// model.
type OrderItemStatusResponse struct {
	ID                kernel.UUID
	ProductCode       string
	ProductName       string
	Unit              string
	QuantityOrdered   float64
	QuantityDelivered float64
}

// OrderTaskStatusResponse summarizes one scan task of the order.
type OrderTaskStatusResponse struct {
	ID     kernel.UUID
	Name   string
	Status string
}

// GetOrderStatusQueryResponse represents an order's fulfillment state in
// the read model.
type GetOrderStatusQueryResponse struct {
	ID             kernel.UUID
	ExternalRef    string
	Status         string
	RecipientName  string
	CreatedAt      time.Time
	LastHandoverAt *time.Time
	DeliveredAt    *time.Time
	Items          []OrderItemStatusResponse
	Tasks          []OrderTaskStatusResponse
}
