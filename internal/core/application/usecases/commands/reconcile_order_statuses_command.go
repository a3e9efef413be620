package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrReconcileOrderStatusesCommandIsNotConstructed = errors.New(
	"ReconcileOrderStatusesCommand must be created via NewReconcileOrderStatusesCommand constructor",
)

// ReconcileOrderStatusesCommand represents a request to re-project the
// status of every active order from its tasks and documents. Run
// periodically as a safety net for crashes between related writes.
type ReconcileOrderStatusesCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileOrderStatusesCommand creates a reconciliation command.
func NewReconcileOrderStatusesCommand() ReconcileOrderStatusesCommand {
	return ReconcileOrderStatusesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileOrderStatusesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrderStatusesCommandIsNotConstructed)
}
