package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/scantask"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRecordScanEventCommandIsNotConstructed = errors.New(
		"RecordScanEventCommand must be created via NewRecordScanEventCommand constructor",
	)
	ErrBarcodeIsRequired = errs.NewValueIsRequiredError("barcode")
)

// RecordScanEventCommand represents one scan attempt against a task: a
// barcode, a quantity delta and the source it came from. Attempts that
// cannot be applied (unknown barcode, over-scan) are still recorded in the
// audit trail; the handler returns the resulting event either way.
type RecordScanEventCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	barcode  string
	quantity float64
	source   scantask.Source
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordScanEventCommand creates a command to record one scan attempt.
// The quantity is not validated here: scanner attempts require a positive
// quantity while manual attempts may be negative, which the ScanTask
// aggregate enforces.
func NewRecordScanEventCommand(
	taskID kernel.UUID,
	barcode string,
	quantity float64,
	source scantask.Source,
	actorID kernel.UUID,
) (RecordScanEventCommand, error) {
	cmd := RecordScanEventCommand{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setBarcode(barcode),
		cmd.setSource(source),
		cmd.setActorID(actorID),
	); err != nil {
		return RecordScanEventCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordScanEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordScanEventCommandIsNotConstructed)
}

// TaskID returns the scan task the attempt targets.
func (c RecordScanEventCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Barcode returns the raw scanned or entered code.
func (c RecordScanEventCommand) Barcode() string {
	return c.barcode
}

// Quantity returns the quantity delta of the attempt.
func (c RecordScanEventCommand) Quantity() float64 {
	return c.quantity
}

// Source returns where the attempt came from.
func (c RecordScanEventCommand) Source() scantask.Source {
	return c.source
}

// ActorID returns the user making the attempt.
func (c RecordScanEventCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RecordScanEventCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *RecordScanEventCommand) setBarcode(barcode string) error {
	if barcode == "" {
		return ErrBarcodeIsRequired
	}

	c.barcode = barcode
	return nil
}

func (c *RecordScanEventCommand) setSource(source scantask.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	c.source = source
	return nil
}

func (c *RecordScanEventCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
