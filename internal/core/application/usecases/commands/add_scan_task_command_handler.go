package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/scantask"
)

// AddScanTaskCommandHandler handles attaching a picking checklist to a
// stock order. The task and the order's status change persist in one
// transaction.
type AddScanTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewAddScanTaskCommandHandler creates a handler for scan task creation.
func NewAddScanTaskCommandHandler(uowFactory TaskUoWFactory) AddScanTaskCommandHandler {
	return AddScanTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the scan task creation command.
//
// Every checklist line must reference an existing item of the order; a task
// for goods the order never asked for is refused. Adding a task moves the
// order into Preparing, which fails for delivered orders.
func (h AddScanTaskCommandHandler) Handle(ctx context.Context, cmd AddScanTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	items := make([]*scantask.TaskItem, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		if _, err = aggregate.ItemByID(line.OrderItemID); err != nil {
			return err
		}

		barcode, codeErr := kernel.NewBarcode(line.Barcode)
		if codeErr != nil {
			return codeErr
		}

		item, itemErr := scantask.NewTaskItem(line.ID, line.OrderItemID, barcode, line.ExpectedQty)
		if itemErr != nil {
			return itemErr
		}
		items = append(items, item)
	}

	task, err := scantask.NewScanTask(cmd.TaskID(), cmd.OrderID(), cmd.Name(), items, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = aggregate.EnterPreparation(); err != nil {
		return err
	}

	if err = uow.ScanTaskRepository().Add(ctx, task); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
