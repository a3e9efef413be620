package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem constructor.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is an ordered line of a stock order: a product reference with the
// quantity the client ordered and the quantity physically handed over so far.
//
// The ordered quantity is fixed at construction. Only the delivered quantity
// advances, and only through the owning StockOrder when a signed handover
// commits; corrections happen as compensating scan events, never by editing
// the ordered amount.
type Item struct {
	// id is the unique identifier of the line
	id kernel.UUID

	// productCode references the catalog product (item number or barcode key)
	productCode string

	// productName is the display name frozen into handover snapshots
	productName string

	// unit is the measurement unit of the quantities (optional)
	unit string

	// quantityOrdered is how much the client ordered; immutable
	quantityOrdered float64

	// quantityDelivered is how much was handed over across signed handovers
	quantityDelivered float64

	// isConstructed ensures the item was created via a constructor
	isConstructed bool
}

// NewItem creates an ordered line for a new stock order.
//
// Parameters:
//   - id: unique line identifier
//   - productCode: catalog reference, required
//   - productName: display name, required
//   - unit: measurement unit, may be empty
//   - quantityOrdered: must be positive
func NewItem(id kernel.UUID, productCode, productName, unit string, quantityOrdered float64) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProduct(productCode, productName),
		item.setQuantityOrdered(quantityOrdered),
	); err != nil {
		return nil, err
	}

	item.unit = unit
	return item, nil
}

// RestoreItem reconstructs an ordered line from persistence, including the
// delivered quantity accumulated by past handovers.
func RestoreItem(
	id kernel.UUID,
	productCode, productName, unit string,
	quantityOrdered, quantityDelivered float64,
) (*Item, error) {
	item, err := NewItem(id, productCode, productName, unit, quantityOrdered)
	if err != nil {
		return nil, err
	}

	if quantityDelivered < 0 || quantityDelivered > quantityOrdered {
		return nil, errs.NewValueIsOutOfRangeError(
			"quantityDelivered", quantityDelivered, 0, quantityOrdered)
	}

	item.quantityDelivered = quantityDelivered
	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductCode returns the catalog reference of the line.
func (i *Item) ProductCode() string {
	return i.productCode
}

// ProductName returns the display name of the product.
func (i *Item) ProductName() string {
	return i.productName
}

// Unit returns the measurement unit, possibly empty.
func (i *Item) Unit() string {
	return i.unit
}

// QuantityOrdered returns the immutable ordered quantity.
func (i *Item) QuantityOrdered() float64 {
	return i.quantityOrdered
}

// QuantityDelivered returns the quantity handed over so far.
func (i *Item) QuantityDelivered() float64 {
	return i.quantityDelivered
}

// RemainingToDeliver returns how much of the line is still undelivered.
func (i *Item) RemainingToDeliver() float64 {
	remaining := i.quantityOrdered - i.quantityDelivered
	if remaining < 0 {
		return 0
	}
	return remaining
}

// addDelivered advances the delivered quantity. Called by the owning order
// when a signed handover commits. Delivering beyond the ordered quantity is
// rejected.
func (i *Item) addDelivered(qty float64) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivered quantity",
			fmt.Errorf("%v is negative", qty))
	}
	if i.quantityDelivered+qty > i.quantityOrdered {
		return errs.NewValueIsOutOfRangeError(
			"delivered quantity", i.quantityDelivered+qty, 0, i.quantityOrdered)
	}

	i.quantityDelivered += qty
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProduct(code, name string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("productCode")
	}
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productCode = code
	i.productName = name
	return nil
}

func (i *Item) setQuantityOrdered(qty float64) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityOrdered",
			fmt.Errorf("%v is not greater than 0", qty))
	}
	i.quantityOrdered = qty
	return nil
}
