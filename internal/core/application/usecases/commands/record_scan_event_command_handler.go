package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/scantask"
)

// RecordScanEventCommandHandler handles recording one scan attempt. The
// task's updated totals and the appended event persist in one transaction,
// so the audit trail can always be replayed into the stored totals.
type RecordScanEventCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewRecordScanEventCommandHandler creates a handler for scan recording.
func NewRecordScanEventCommandHandler(uowFactory TaskUoWFactory) RecordScanEventCommandHandler {
	return RecordScanEventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the scan attempt and returns the recorded event.
// Unknown barcodes and over-scans produce flagged events, not errors; the
// caller inspects the event to tell the operator what happened.
func (h RecordScanEventCommandHandler) Handle(
	ctx context.Context,
	cmd RecordScanEventCommand,
) (*scantask.ScanEvent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.ScanTaskRepository()
	task, err := taskRepo.Get(ctx, cmd.TaskID())
	if err != nil {
		return nil, err
	}

	event, err := task.Record(
		cmd.Barcode(), cmd.Quantity(), cmd.Source(), cmd.ActorID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if err = taskRepo.AppendEvent(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return event, nil
}
