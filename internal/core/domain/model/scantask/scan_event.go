package scantask

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrScanEventIsNotConstructed is returned when using an improperly
// initialized ScanEvent.
var ErrScanEventIsNotConstructed = errors.New(
	"ScanEvent must be created via a ScanTask operation or RestoreScanEvent")

// ScanEvent is one immutable record in the audit trail of a scan task.
// Events are never updated or deleted; mistakes are fixed with compensating
// events. The sequence number is assigned by storage at insert and is zero
// on events that have not been persisted yet.
type ScanEvent struct {
	// id uniquely identifies the event
	id kernel.UUID
	// sequence is the global, monotonically increasing insert order
	sequence int64
	// taskID is the scan task the event belongs to
	taskID kernel.UUID
	// itemID is the matched task item, nil for unmatched barcodes and
	// task-level events such as short-pick overrides
	itemID *kernel.UUID
	// barcode is the raw code as scanned or entered
	barcode string
	// quantity is the delta applied to the item's scanned total
	quantity float64
	// source tells whether the event came from a scanner or manual entry
	source Source
	// message carries human-readable context for error and override events
	message string
	// isError flags attempts that went wrong (unknown barcode, over-scan)
	isError bool
	// occurredAt is when the attempt happened
	occurredAt time.Time
	// actor is the user who made the attempt
	actor kernel.UUID

	isConstructed bool
}

func newScanEvent(
	taskID kernel.UUID,
	itemID *kernel.UUID,
	barcode string,
	quantity float64,
	source Source,
	message string,
	isError bool,
	actor kernel.UUID,
	occurredAt time.Time,
) *ScanEvent {
	return &ScanEvent{
		id:            kernel.NewUUID(),
		taskID:        taskID,
		itemID:        itemID,
		barcode:       barcode,
		quantity:      quantity,
		source:        source,
		message:       message,
		isError:       isError,
		occurredAt:    occurredAt,
		actor:         actor,
		isConstructed: true,
	}
}

// RestoreScanEvent reconstructs a persisted event, including the sequence
// number storage assigned at insert.
func RestoreScanEvent(
	id kernel.UUID,
	sequence int64,
	taskID kernel.UUID,
	itemID *kernel.UUID,
	barcode string,
	quantity float64,
	source Source,
	message string,
	isError bool,
	actor kernel.UUID,
	occurredAt time.Time,
) (*ScanEvent, error) {
	if err := errors.Join(id.Validate(), taskID.Validate(), source.Validate()); err != nil {
		return nil, err
	}
	if itemID != nil {
		if err := itemID.Validate(); err != nil {
			return nil, err
		}
	}

	e := newScanEvent(taskID, itemID, barcode, quantity, source, message, isError, actor, occurredAt)
	e.id = id
	e.sequence = sequence
	return e, nil
}

// Validate checks if the ScanEvent was created through a constructor.
func (e *ScanEvent) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrScanEventIsNotConstructed
	}
	return nil
}

// ID returns the unique identifier of the event.
func (e *ScanEvent) ID() kernel.UUID {
	return e.id
}

// Sequence returns the storage-assigned insert order, zero before the event
// has been persisted.
func (e *ScanEvent) Sequence() int64 {
	return e.sequence
}

// AssignSequence records the sequence storage assigned at insert. An event
// that already carries a sequence keeps it; the insert order of a persisted
// event never changes.
func (e *ScanEvent) AssignSequence(seq int64) {
	if e.sequence == 0 {
		e.sequence = seq
	}
}

// TaskID returns the scan task the event belongs to.
func (e *ScanEvent) TaskID() kernel.UUID {
	return e.taskID
}

// ItemID returns the matched task item, nil when no item matched.
func (e *ScanEvent) ItemID() *kernel.UUID {
	return e.itemID
}

// Barcode returns the raw code as scanned or entered.
func (e *ScanEvent) Barcode() string {
	return e.barcode
}

// Quantity returns the delta applied to the item's scanned total.
func (e *ScanEvent) Quantity() float64 {
	return e.quantity
}

// Source returns the origin of the event.
func (e *ScanEvent) Source() Source {
	return e.source
}

// Message returns human-readable context for error and override events.
func (e *ScanEvent) Message() string {
	return e.message
}

// IsError reports whether the attempt went wrong.
func (e *ScanEvent) IsError() bool {
	return e.isError
}

// OccurredAt returns when the attempt happened.
func (e *ScanEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Actor returns the user who made the attempt.
func (e *ScanEvent) Actor() kernel.UUID {
	return e.actor
}
