package services

import (
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/scantask"
)

// StatusProjector is a domain service that derives a stock order's lifecycle
// status from the state of its scan tasks and handover documents.
//
// The stored status is a projection of the facts, not an independent field:
//   - a signed handover document means Delivered, unconditionally
//   - tasks that all completed mean ReadyForHandover
//   - any task at all means Preparing
//   - no tasks means Created
//
// Command handlers use the projector after every task or document change;
// the reconciliation job re-runs it over active orders as a safety net for
// crashes between related writes.
type StatusProjector struct{}

// NewStatusProjector creates a new StatusProjector instance.
func NewStatusProjector() StatusProjector {
	return StatusProjector{}
}

// Project computes the status the order should have given its tasks and
// documents.
func (StatusProjector) Project(
	tasks []*scantask.ScanTask,
	documents []*document.HandoverDocument,
) order.Status {
	for _, doc := range documents {
		if doc.Status().IsSigned() {
			return order.Delivered
		}
	}

	if len(tasks) == 0 {
		return order.Created
	}

	for _, task := range tasks {
		if !task.Status().IsCompleted() {
			return order.Preparing
		}
	}
	return order.ReadyForHandover
}
