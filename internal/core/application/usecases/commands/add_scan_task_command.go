package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAddScanTaskCommandIsNotConstructed = errors.New(
		"AddScanTaskCommand must be created via NewAddScanTaskCommand constructor",
	)
	ErrTaskNameIsRequired  = errs.NewValueIsRequiredError("name")
	ErrTaskItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// AddScanTaskItem is one requested line of a new scan task.
type AddScanTaskItem struct {
	ID          kernel.UUID
	OrderItemID kernel.UUID
	Barcode     string
	ExpectedQty float64
}

// AddScanTaskCommand represents a request to attach a new picking checklist
// to a stock order. Adding a task moves the order into Preparing, reopening
// preparation when the order was already ready for handover.
type AddScanTaskCommand struct { //nolint:recvcheck //using for validation
	taskID  kernel.UUID
	orderID kernel.UUID
	name    string
	items   []AddScanTaskItem

	guard guard.ConstructorGuard
}

// NewAddScanTaskCommand creates a command to attach a scan task to an order.
func NewAddScanTaskCommand(
	taskID, orderID kernel.UUID,
	name string,
	items []AddScanTaskItem,
) (AddScanTaskCommand, error) {
	cmd := AddScanTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setOrderID(orderID),
		cmd.setName(name),
		cmd.setItems(items),
	); err != nil {
		return AddScanTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddScanTaskCommand) Validate() error {
	return c.guard.Validate(ErrAddScanTaskCommandIsNotConstructed)
}

// TaskID returns the unique identifier for the new task.
func (c AddScanTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// OrderID returns the stock order the task prepares.
func (c AddScanTaskCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Name returns the human-readable label of the task.
func (c AddScanTaskCommand) Name() string {
	return c.name
}

// Items returns the requested checklist lines.
func (c AddScanTaskCommand) Items() []AddScanTaskItem {
	return c.items
}

func (c *AddScanTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *AddScanTaskCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddScanTaskCommand) setName(name string) error {
	if name == "" {
		return ErrTaskNameIsRequired
	}

	c.name = name
	return nil
}

func (c *AddScanTaskCommand) setItems(items []AddScanTaskItem) error {
	if len(items) == 0 {
		return ErrTaskItemsAreRequired
	}

	c.items = make([]AddScanTaskItem, len(items))
	copy(c.items, items)
	return nil
}
