package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SignDocumentCommandHandler handles the atomic end of a fulfillment: the
// document freezes as signed, the snapshot quantities are booked onto the
// order's items and the order becomes delivered - all in one transaction,
// so a signed document without a delivered order can never be observed.
type SignDocumentCommandHandler struct {
	uowFactory UoWFactory
	renderer   ports.DocumentRenderer
}

// NewSignDocumentCommandHandler creates a handler for document signing.
func NewSignDocumentCommandHandler(
	uowFactory UoWFactory,
	renderer ports.DocumentRenderer,
) SignDocumentCommandHandler {
	return SignDocumentCommandHandler{
		uowFactory: uowFactory,
		renderer:   renderer,
	}
}

// Handle processes the signing command.
//
// Signing requires an attached signature and every scan task of the order
// completed. The signed artifact is rendered before the transaction commits
// but only its reference is persisted.
func (h SignDocumentCommandHandler) Handle(ctx context.Context, cmd SignDocumentCommand) error {
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

	docRepo := uow.DocumentRepository()
	doc, err := docRepo.Get(ctx, cmd.DocumentID())
	if err != nil {
		return err
	}
	if doc.SignatureRef() == "" {
		return errs.NewInvalidStateError("document has no attached signature")
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, doc.OrderID())
	if err != nil {
		return err
	}

	tasks, err := uow.ScanTaskRepository().GetAllForOrder(ctx, doc.OrderID())
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if !task.Status().IsCompleted() {
			return errs.NewInvalidStateErrorWithCause(
				"order has unfinished scan tasks",
				fmt.Errorf("task %s is %s", task.ID(), task.Status()),
			)
		}
	}

	signedArtifact, err := h.renderer.RenderSigned(
		ctx, doc.ExternalID(), doc.Snapshot(), doc.SignatureRef())
	if err != nil {
		return err
	}

	if err = doc.Sign(signedArtifact, cmd.ActorID(), now); err != nil {
		return err
	}

	for _, line := range doc.Snapshot().Lines {
		if line.Quantity <= 0 {
			continue
		}

		itemID, idErr := kernel.UUIDFromString(line.OrderItemID)
		if idErr != nil {
			return idErr
		}
		if err = aggregate.AddDeliveredQuantity(itemID, line.Quantity); err != nil {
			return err
		}
	}

	if err = aggregate.Deliver(cmd.ActorID(), now); err != nil {
		return err
	}

	if err = docRepo.Update(ctx, doc); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
