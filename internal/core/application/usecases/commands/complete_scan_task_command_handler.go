package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
)

// CompleteScanTaskCommandHandler handles finishing a scan task and
// re-projecting its order's status. When the completed task was the last
// open one the order becomes ready for handover, in the same transaction.
type CompleteScanTaskCommandHandler struct {
	uowFactory UoWFactory
	projector  services.StatusProjector
}

// NewCompleteScanTaskCommandHandler creates a handler for task completion.
func NewCompleteScanTaskCommandHandler(uowFactory UoWFactory) CompleteScanTaskCommandHandler {
	return CompleteScanTaskCommandHandler{
		uowFactory: uowFactory,
		projector:  services.NewStatusProjector(),
	}
}

// Handle processes the task completion command.
//
// Completing with outstanding quantities requires the override flag and a
// reason; the aggregate records the override as a manual event, which is
// appended here so the audit trail explains the short task.
func (h CompleteScanTaskCommandHandler) Handle(ctx context.Context, cmd CompleteScanTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.ScanTaskRepository()
	task, err := taskRepo.Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	overrideEvent, err := task.Complete(cmd.Override(), cmd.Reason(), cmd.ActorID(), now)
	if err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}
	if overrideEvent != nil {
		if err = taskRepo.AppendEvent(ctx, overrideEvent); err != nil {
			return err
		}
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, task.OrderID())
	if err != nil {
		return err
	}

	tasks, err := taskRepo.GetAllForOrder(ctx, task.OrderID())
	if err != nil {
		return err
	}
	documents, err := uow.DocumentRepository().GetAllForOrder(ctx, task.OrderID())
	if err != nil {
		return err
	}

	target := h.projector.Project(tasks, documents)
	if err = aggregate.ApplyProjection(target, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
