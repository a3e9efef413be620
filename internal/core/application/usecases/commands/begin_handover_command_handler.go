package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// BeginHandoverCommandHandler handles starting a handover: it freezes a
// snapshot of the undelivered quantities, renders a draft document and
// records the handover on the order, all in one transaction.
//
// Re-running the handover for the same order produces the next numbered
// document; earlier drafts stay in the registry as history.
type BeginHandoverCommandHandler struct {
	uowFactory UoWFactory
	renderer   ports.DocumentRenderer
}

// NewBeginHandoverCommandHandler creates a handler for starting handovers.
func NewBeginHandoverCommandHandler(
	uowFactory UoWFactory,
	renderer ports.DocumentRenderer,
) BeginHandoverCommandHandler {
	return BeginHandoverCommandHandler{
		uowFactory: uowFactory,
		renderer:   renderer,
	}
}

// Handle processes the handover start command.
//
// The order must be ready for handover: every scan task completed and the
// order not yet delivered. The snapshot freezes each item's undelivered
// quantity at this moment; later scans or corrections do not touch it.
func (h BeginHandoverCommandHandler) Handle(ctx context.Context, cmd BeginHandoverCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Status() != order.ReadyForHandover {
		return errs.NewInvalidStateErrorWithCause(
			"order is not ready for handover",
			fmt.Errorf("order status is %s", aggregate.Status()),
		)
	}

	snapshot, err := buildHandoverSnapshot(aggregate, cmd.RecipientName(), now)
	if err != nil {
		return err
	}
	if !snapshot.HasQuantity() {
		return errs.NewValueIsInvalidErrorWithCause("snapshot",
			errors.New("nothing to hand over"))
	}

	docRepo := uow.DocumentRepository()
	number, err := docRepo.NextNumber(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	externalID := fmt.Sprintf("%s-%02d", aggregate.ExternalRef(), number)

	draftArtifact, err := h.renderer.RenderDraft(ctx, externalID, snapshot)
	if err != nil {
		return err
	}

	draft, err := document.NewDraft(
		cmd.DocumentID(), cmd.OrderID(), number, externalID, snapshot, draftArtifact, now)
	if err != nil {
		return err
	}

	if err = aggregate.RecordHandover(cmd.RecipientName(), cmd.ActorID(), now); err != nil {
		return err
	}

	if err = docRepo.Add(ctx, draft); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// buildHandoverSnapshot freezes the undelivered quantity of every order
// item. Items already fully delivered by earlier handovers appear with a
// zero quantity so the document shows the complete order.
func buildHandoverSnapshot(
	aggregate *order.StockOrder,
	recipientName string,
	takenAt time.Time,
) (document.Snapshot, error) {
	lines := make([]document.SnapshotLine, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		lines = append(lines, document.SnapshotLine{
			OrderItemID: item.ID().String(),
			ProductCode: item.ProductCode(),
			ProductName: item.ProductName(),
			Unit:        item.Unit(),
			Quantity:    item.RemainingToDeliver(),
		})
	}

	return document.NewSnapshot(recipientName, takenAt, lines)
}
