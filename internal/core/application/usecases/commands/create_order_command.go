package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrExternalRefIsRequired = errs.NewValueIsRequiredError("externalRef")
	ErrOrderItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// CreateOrderItem is one requested line of a new stock order.
type CreateOrderItem struct {
	ID              kernel.UUID
	ProductCode     string
	ProductName     string
	Unit            string
	QuantityOrdered float64
}

// CreateOrderCommand represents a request to register a new stock order for
// fulfillment. The order starts in the Created status with no scan tasks.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "SO-2024-001", items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	externalRef string
	items       []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new stock order.
// Validates that the order ID is valid, the external reference is not empty
// and at least one item is requested. Item contents are validated by the
// domain constructors when the handler runs.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	externalRef string,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setExternalRef(externalRef),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ExternalRef returns the upstream order reference.
func (c CreateOrderCommand) ExternalRef() string {
	return c.externalRef
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setExternalRef(externalRef string) error {
	if externalRef == "" {
		return ErrExternalRefIsRequired
	}

	c.externalRef = externalRef
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrOrderItemsAreRequired
	}

	c.items = make([]CreateOrderItem, len(items))
	copy(c.items, items)
	return nil
}
