package scantask

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrTaskItemIsNotConstructed is returned when using an improperly
// initialized TaskItem.
var ErrTaskItemIsNotConstructed = errors.New(
	"TaskItem must be created via NewTaskItem or RestoreTaskItem constructor")

// TaskItem is one line of a scan task: a barcode bound to an order item with
// an expected quantity and a running scanned total. The scanned total is
// advanced only through the owning ScanTask so every change leaves an event.
type TaskItem struct {
	// id uniquely identifies the task item
	id kernel.UUID
	// orderItemID links the line to an item of the stock order
	orderItemID kernel.UUID
	// barcode is the code staff scan for this line
	barcode kernel.Barcode
	// expectedQty is the quantity the task wants picked
	expectedQty float64
	// scannedQty is the running total of applied scan quantities
	scannedQty float64

	isConstructed bool
}

// NewTaskItem creates a task item with a zero scanned total.
func NewTaskItem(id, orderItemID kernel.UUID, barcode kernel.Barcode, expectedQty float64) (*TaskItem, error) {
	item := &TaskItem{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setOrderItemID(orderItemID),
		item.setBarcode(barcode),
		item.setExpectedQty(expectedQty),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreTaskItem reconstructs a task item from persistence, including its
// scanned total. Unlike new items the scanned total may already exceed the
// expected quantity (over-scans are applied and flagged, never discarded).
func RestoreTaskItem(
	id, orderItemID kernel.UUID,
	barcode kernel.Barcode,
	expectedQty, scannedQty float64,
) (*TaskItem, error) {
	item, err := NewTaskItem(id, orderItemID, barcode, expectedQty)
	if err != nil {
		return nil, err
	}

	if scannedQty < 0 {
		return nil, errs.NewValueIsOutOfRangeError("scannedQty", scannedQty, 0.0, expectedQty)
	}
	item.scannedQty = scannedQty
	return item, nil
}

// Validate checks if the TaskItem was created through a constructor.
func (i *TaskItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrTaskItemIsNotConstructed
	}
	return nil
}

// ID returns the unique identifier of the task item.
func (i *TaskItem) ID() kernel.UUID {
	return i.id
}

// OrderItemID returns the identifier of the linked order item.
func (i *TaskItem) OrderItemID() kernel.UUID {
	return i.orderItemID
}

// Barcode returns the barcode staff scan for this line.
func (i *TaskItem) Barcode() kernel.Barcode {
	return i.barcode
}

// ExpectedQty returns the quantity the task wants picked.
func (i *TaskItem) ExpectedQty() float64 {
	return i.expectedQty
}

// ScannedQty returns the running total of applied scan quantities.
func (i *TaskItem) ScannedQty() float64 {
	return i.scannedQty
}

// IsSatisfied reports whether the scanned total reached the expected
// quantity.
func (i *TaskItem) IsSatisfied() bool {
	return i.scannedQty >= i.expectedQty
}

// addScanned applies a quantity delta to the scanned total. Negative deltas
// are allowed for compensations but the total can never drop below zero.
func (i *TaskItem) addScanned(qty float64) error {
	if i.scannedQty+qty < 0 {
		return errs.NewValueIsOutOfRangeError(
			"scanned quantity", i.scannedQty+qty, 0.0, i.expectedQty)
	}

	i.scannedQty += qty
	return nil
}

func (i *TaskItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *TaskItem) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.orderItemID = id
	return nil
}

func (i *TaskItem) setBarcode(barcode kernel.Barcode) error {
	if err := barcode.Validate(); err != nil {
		return err
	}
	i.barcode = barcode
	return nil
}

func (i *TaskItem) setExpectedQty(qty float64) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("expectedQty",
			fmt.Errorf("%v is not greater than 0", qty))
	}
	i.expectedQty = qty
	return nil
}
