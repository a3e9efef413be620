package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
)

// ReconcileOrderStatusesCommandHandler re-projects the status of every
// active order from the state of its tasks and documents. Orders whose
// stored status already matches the projection are left untouched.
type ReconcileOrderStatusesCommandHandler struct {
	uowFactory UoWFactory
	projector  services.StatusProjector
}

// NewReconcileOrderStatusesCommandHandler creates a reconciliation handler.
func NewReconcileOrderStatusesCommandHandler(uowFactory UoWFactory) ReconcileOrderStatusesCommandHandler {
	return ReconcileOrderStatusesCommandHandler{
		uowFactory: uowFactory,
		projector:  services.NewStatusProjector(),
	}
}

// Handle re-projects all active orders in one transaction and returns how
// many orders changed status.
func (h ReconcileOrderStatusesCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileOrderStatusesCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetAllActive(ctx)
	if err != nil {
		return 0, err
	}

	reconciled := 0
	for _, aggregate := range orders {
		tasks, tasksErr := uow.ScanTaskRepository().GetAllForOrder(ctx, aggregate.ID())
		if tasksErr != nil {
			return 0, tasksErr
		}
		documents, docsErr := uow.DocumentRepository().GetAllForOrder(ctx, aggregate.ID())
		if docsErr != nil {
			return 0, docsErr
		}

		target := h.projector.Project(tasks, documents)
		if target == aggregate.Status() {
			continue
		}

		if err = aggregate.ApplyProjection(target, now); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
		reconciled++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return reconciled, nil
}
