package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrStockOrderIsNotConstructed is returned when a StockOrder instance was
	// not created through NewStockOrder or RestoreStockOrder. This ensures all
	// orders are properly validated.
	ErrStockOrderIsNotConstructed = errors.New(
		"StockOrder must be created via NewStockOrder or RestoreStockOrder constructor")
)

// StockOrder is the aggregate root of the fulfillment lifecycle. It owns the
// ordered line items and carries the projected lifecycle status; scan tasks
// and handover documents reference it by identifier.
//
// StockOrder follows these invariants:
//   - Must have a valid unique identifier and a non-empty external reference
//   - Must own at least one line item with a positive ordered quantity
//   - Status transitions follow the rules encoded in Status
//   - Delivered is terminal: no mutation is accepted afterwards
//   - Delivered quantities only advance when a signed handover commits
//
// Status here is a projection: the services package recomputes it from scan
// task and document state, and the signing transaction is the only path to
// Delivered. The struct uses private fields so invariants survive.
type StockOrder struct {
	// id is the unique identifier of the order
	id kernel.UUID

	// externalRef is the client-facing order reference; handover document
	// identifiers derive from it
	externalRef string

	// recipientName is who receives the goods, captured at handover
	recipientName string

	// status is the projected lifecycle state
	status Status

	// items are the ordered lines, fixed at creation
	items []*Item

	// createdAt is when the order was registered
	createdAt time.Time

	// lastHandoverAt / lastHandoverBy record the most recent handover attempt
	lastHandoverAt *time.Time
	lastHandoverBy *kernel.UUID

	// deliveredAt / deliveredBy are set atomically with document signing
	deliveredAt *time.Time
	deliveredBy *kernel.UUID

	// version guards optimistic concurrency on the order row
	version int64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewStockOrder creates a StockOrder in Created status.
//
// Parameters:
//   - id: unique identifier, must be valid
//   - externalRef: client-facing reference, required
//   - items: ordered lines, at least one
//   - createdAt: registration timestamp
//
// Returns an aggregated validation error if any parameter is invalid.
func NewStockOrder(id kernel.UUID, externalRef string, items []*Item, createdAt time.Time) (*StockOrder, error) {
	o := &StockOrder{
		status:        Created,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setExternalRef(externalRef),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreStockOrder reconstructs a StockOrder from persistence, including its
// projected status, handover bookkeeping, and optimistic-lock version.
func RestoreStockOrder(
	id kernel.UUID,
	externalRef string,
	recipientName string,
	status Status,
	items []*Item,
	createdAt time.Time,
	lastHandoverAt *time.Time,
	lastHandoverBy *kernel.UUID,
	deliveredAt *time.Time,
	deliveredBy *kernel.UUID,
	version int64,
) (*StockOrder, error) {
	o, err := NewStockOrder(id, externalRef, items, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.recipientName = recipientName
	o.status = status
	o.lastHandoverAt = lastHandoverAt
	o.lastHandoverBy = lastHandoverBy
	o.deliveredAt = deliveredAt
	o.deliveredBy = deliveredBy
	o.version = version
	return o, nil
}

// Validate ensures the StockOrder was created through a constructor.
// Call it when reconstructing orders from persistence.
func (o *StockOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrStockOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *StockOrder) IsEqual(other *StockOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *StockOrder) ID() kernel.UUID {
	return o.id
}

// ExternalRef returns the client-facing order reference.
func (o *StockOrder) ExternalRef() string {
	return o.externalRef
}

// RecipientName returns who received (or will receive) the goods.
func (o *StockOrder) RecipientName() string {
	return o.recipientName
}

// Status returns the projected lifecycle state.
func (o *StockOrder) Status() Status {
	return o.status
}

// Items returns the ordered lines.
func (o *StockOrder) Items() []*Item {
	return o.items
}

// CreatedAt returns the registration timestamp.
func (o *StockOrder) CreatedAt() time.Time {
	return o.createdAt
}

// LastHandoverAt returns when the most recent handover attempt started,
// nil if none.
func (o *StockOrder) LastHandoverAt() *time.Time {
	return o.lastHandoverAt
}

// LastHandoverBy returns who started the most recent handover attempt,
// nil if none.
func (o *StockOrder) LastHandoverBy() *kernel.UUID {
	return o.lastHandoverBy
}

// DeliveredAt returns the delivery timestamp, nil until delivered.
func (o *StockOrder) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// DeliveredBy returns who completed the delivery, nil until delivered.
func (o *StockOrder) DeliveredBy() *kernel.UUID {
	return o.deliveredBy
}

// Version returns the optimistic-lock version loaded from persistence.
func (o *StockOrder) Version() int64 {
	return o.version
}

// ItemByID finds an ordered line by identifier.
// Returns an ObjectNotFoundError if no line matches.
func (o *StockOrder) ItemByID(id kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderItem", id.String())
}

// DeliverableQuantity returns the total quantity still awaiting handover
// across all lines.
func (o *StockOrder) DeliverableQuantity() float64 {
	var total float64
	for _, item := range o.items {
		total += item.RemainingToDeliver()
	}
	return total
}

// HasDeliverableQuantity reports whether anything remains to hand over.
func (o *StockOrder) HasDeliverableQuantity() bool {
	return o.DeliverableQuantity() > 0
}

// EnterPreparation moves the order into Preparing. Triggered by scan task
// creation: the first task moves a created order forward, a later task pulls
// a ready order back into preparation. Fails with an InvalidStateError once
// the order is delivered.
func (o *StockOrder) EnterPreparation() error {
	newStatus, err := o.status.EnterPreparation()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MakeReady moves the order into ReadyForHandover. Triggered when the last
// open scan task of the order completes.
func (o *StockOrder) MakeReady() error {
	newStatus, err := o.status.MakeReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// RecordHandover notes that a handover attempt started: who opened it and
// when, and which recipient was named. Fails with an InvalidStateError if the
// order is already delivered.
func (o *StockOrder) RecordHandover(recipientName string, by kernel.UUID, at time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order is already delivered")
	}
	if err := by.Validate(); err != nil {
		return err
	}
	if recipientName != "" {
		o.recipientName = recipientName
	}

	o.lastHandoverAt = &at
	o.lastHandoverBy = &by
	return nil
}

// Deliver marks the order delivered as part of the signing transaction.
// Valid only from ReadyForHandover; sets deliveredAt and deliveredBy
// atomically with the status change.
func (o *StockOrder) Deliver(by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &at
	o.deliveredBy = &by
	return nil
}

// AddDeliveredQuantity advances a line's delivered quantity from a handover
// snapshot. Delivering beyond the ordered quantity is rejected.
func (o *StockOrder) AddDeliveredQuantity(itemID kernel.UUID, qty float64) error {
	item, err := o.ItemByID(itemID)
	if err != nil {
		return err
	}
	return item.addDelivered(qty)
}

// ApplyProjection forces the status to a freshly recomputed value. Used by
// the reconciliation path that re-derives order state from scan tasks and
// documents after a crash. A delivered order never leaves Delivered; moving
// to Delivered through projection backfills deliveredAt if it is missing.
func (o *StockOrder) ApplyProjection(target Status, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status == target {
		return nil
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidStateErrorWithCause("order is already delivered",
			fmt.Errorf("cannot reproject to %s", target.String()))
	}

	o.status = target
	if target == Delivered && o.deliveredAt == nil {
		o.deliveredAt = &at
	}
	return nil
}

func (o *StockOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *StockOrder) setExternalRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("externalRef")
	}
	o.externalRef = ref
	return nil
}

func (o *StockOrder) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
