package scantask

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for scan task operations.
var (
	// ErrNameIsRequired is returned when attempting to create a task without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrItemsAreRequired is returned when attempting to create a task without items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrScanTaskIsNotConstructed is returned when using an improperly initialized ScanTask.
	ErrScanTaskIsNotConstructed = errors.New("ScanTask must be created via NewScanTask constructor")
)

// ScanTask is the aggregate root for one picking checklist of a stock order.
//
// Every scan attempt goes through Record, which matches the barcode against
// the task's items, applies the quantity to the matched item's running total
// and returns an immutable ScanEvent describing what happened. Attempts that
// go wrong (unknown barcode, over-scan) still produce an event so the audit
// trail is complete; they are flagged rather than rejected.
//
// Business rules:
//   - scanner events must carry a positive quantity, manual events may be
//     negative to compensate earlier mistakes
//   - a scanned total never drops below zero
//   - over-scans are applied and flagged, never silently capped
//   - the first matched scan moves the task from Open to InProgress
//   - Complete requires every item to reach its expected quantity, unless a
//     short-pick override with a reason is used
//   - a completed task still accepts compensating events but its status is
//     final
type ScanTask struct {
	// id uniquely identifies the task
	id kernel.UUID
	// orderID is the stock order the task prepares
	orderID kernel.UUID
	// name is the human-readable label of the task
	name string
	// status is the Open -> InProgress -> Completed state machine
	status Status
	// items are the barcode lines of the checklist
	items []*TaskItem
	// createdAt is when the task was registered
	createdAt time.Time
	// version is the optimistic concurrency token
	version int64
	// guard ensures the task was properly constructed
	guard guard.ConstructorGuard
}

// NewScanTask creates a new ScanTask in the Open status.
func NewScanTask(
	id, orderID kernel.UUID,
	name string,
	items []*TaskItem,
	createdAt time.Time,
) (*ScanTask, error) {
	task := &ScanTask{
		status:    StatusOpen,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		task.setID(id),
		task.setOrderID(orderID),
		task.setName(name),
		task.setItems(items),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// RestoreScanTask reconstructs a ScanTask from persistence, including its
// status and optimistic-lock version.
func RestoreScanTask(
	id, orderID kernel.UUID,
	name string,
	status Status,
	items []*TaskItem,
	createdAt time.Time,
	version int64,
) (*ScanTask, error) {
	task, err := NewScanTask(id, orderID, name, items, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	task.status = status
	task.version = version
	return task, nil
}

// Validate checks if the ScanTask was created through a constructor. The
// zero value is invalid and fails this validation.
func (t *ScanTask) Validate() error {
	if t == nil {
		return ErrScanTaskIsNotConstructed
	}
	return t.guard.Validate(ErrScanTaskIsNotConstructed)
}

// IsEqual compares two tasks by their unique identifiers.
func (t *ScanTask) IsEqual(other *ScanTask) bool {
	if other == nil {
		return false
	}
	return t.id.IsEqual(other.id)
}

// ID returns the unique identifier of the task.
func (t *ScanTask) ID() kernel.UUID {
	return t.id
}

// OrderID returns the stock order the task prepares.
func (t *ScanTask) OrderID() kernel.UUID {
	return t.orderID
}

// Name returns the human-readable label of the task.
func (t *ScanTask) Name() string {
	return t.name
}

// Status returns the current lifecycle state of the task.
func (t *ScanTask) Status() Status {
	return t.status
}

// Items returns the barcode lines of the checklist. The returned slice is a
// copy to prevent external modification.
func (t *ScanTask) Items() []*TaskItem {
	out := make([]*TaskItem, len(t.items))
	copy(out, t.items)
	return out
}

// CreatedAt returns when the task was registered.
func (t *ScanTask) CreatedAt() time.Time {
	return t.createdAt
}

// Version returns the optimistic concurrency token loaded from storage.
func (t *ScanTask) Version() int64 {
	return t.version
}

// IsSatisfied reports whether every item reached its expected quantity.
func (t *ScanTask) IsSatisfied() bool {
	for _, item := range t.items {
		if !item.IsSatisfied() {
			return false
		}
	}
	return true
}

// ShortItems returns the items whose scanned total is still below the
// expected quantity.
func (t *ScanTask) ShortItems() []*TaskItem {
	var short []*TaskItem
	for _, item := range t.items {
		if !item.IsSatisfied() {
			short = append(short, item)
		}
	}
	return short
}

// Record processes one scan attempt and returns the event describing it.
//
// A barcode that matches no item of the task produces a flagged event and no
// state change; this is a successful call, not an error. A matched scan that
// pushes the total past the expected quantity is applied and flagged as an
// over-scan. Scanner events must carry a positive quantity; manual events
// may be negative, but a total can never drop below zero.
//
// Recording on a completed task is allowed so mistakes found late can still
// be compensated; the status stays Completed.
func (t *ScanTask) Record(
	barcode string,
	quantity float64,
	source Source,
	actor kernel.UUID,
	at time.Time,
) (*ScanEvent, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := errors.Join(actor.Validate(), source.Validate()); err != nil {
		return nil, err
	}

	code, err := kernel.NewBarcode(barcode)
	if err != nil {
		return nil, err
	}

	if source == SourceScan && quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("scanner events require a positive quantity, got %v", quantity))
	}

	item := t.itemByBarcode(code)
	if item == nil {
		return newScanEvent(t.id, nil, code.String(), quantity, source,
			fmt.Sprintf("%s not in task", code.String()), true, actor, at), nil
	}

	overScan := quantity > 0 && item.ScannedQty()+quantity > item.ExpectedQty()

	if err = item.addScanned(quantity); err != nil {
		return nil, err
	}

	if t.status == StatusOpen {
		t.status = StatusInProgress
	}

	itemID := item.ID()
	message := ""
	if overScan {
		message = "over scanned"
	}
	return newScanEvent(t.id, &itemID, code.String(), quantity, source,
		message, overScan, actor, at), nil
}

// Complete finishes the task.
//
// Without an override every item must have reached its expected quantity.
// With an override the task completes short, a reason is mandatory and a
// manual event documenting the override is returned; the caller persists it
// alongside the task. When no override event is needed the returned event is
// nil.
func (t *ScanTask) Complete(
	override bool,
	reason string,
	actor kernel.UUID,
	at time.Time,
) (*ScanEvent, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	if t.status.IsCompleted() {
		return nil, errs.NewInvalidStateError("task is already completed")
	}

	if t.IsSatisfied() {
		t.status = StatusCompleted
		return nil, nil
	}

	if !override {
		return nil, errs.NewInvalidStateErrorWithCause(
			"task cannot be completed",
			fmt.Errorf("%d items are short-picked", len(t.ShortItems())),
		)
	}
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}

	t.status = StatusCompleted
	return newScanEvent(t.id, nil, "", 0, SourceManual,
		"short-pick override: "+reason, false, actor, at), nil
}

// itemByBarcode returns the item matching the barcode, or nil when no line
// of the task carries it.
func (t *ScanTask) itemByBarcode(code kernel.Barcode) *TaskItem {
	for _, item := range t.items {
		if item.Barcode().IsEqual(code) {
			return item
		}
	}
	return nil
}

func (t *ScanTask) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *ScanTask) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *ScanTask) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	t.name = name
	return nil
}

func (t *ScanTask) setItems(items []*TaskItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	t.items = make([]*TaskItem, len(items))
	copy(t.items, items)
	return nil
}
