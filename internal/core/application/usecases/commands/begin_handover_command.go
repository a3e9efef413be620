package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrBeginHandoverCommandIsNotConstructed = errors.New(
		"BeginHandoverCommand must be created via NewBeginHandoverCommand constructor",
	)
	ErrRecipientNameIsRequired = errs.NewValueIsRequiredError("recipientName")
)

// BeginHandoverCommand represents a request to start handing a prepared
// order over to a recipient. It produces a new draft handover document with
// a frozen snapshot of the quantities being handed over.
type BeginHandoverCommand struct { //nolint:recvcheck //using for validation
	documentID    kernel.UUID
	orderID       kernel.UUID
	recipientName string
	actorID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewBeginHandoverCommand creates a command to start a handover.
func NewBeginHandoverCommand(
	documentID, orderID kernel.UUID,
	recipientName string,
	actorID kernel.UUID,
) (BeginHandoverCommand, error) {
	cmd := BeginHandoverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentID(documentID),
		cmd.setOrderID(orderID),
		cmd.setRecipientName(recipientName),
		cmd.setActorID(actorID),
	); err != nil {
		return BeginHandoverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BeginHandoverCommand) Validate() error {
	return c.guard.Validate(ErrBeginHandoverCommandIsNotConstructed)
}

// DocumentID returns the unique identifier for the new draft document.
func (c BeginHandoverCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// OrderID returns the stock order being handed over.
func (c BeginHandoverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RecipientName returns who receives the goods.
func (c BeginHandoverCommand) RecipientName() string {
	return c.recipientName
}

// ActorID returns the user starting the handover.
func (c BeginHandoverCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *BeginHandoverCommand) setDocumentID(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	c.documentID = documentID
	return nil
}

func (c *BeginHandoverCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *BeginHandoverCommand) setRecipientName(recipientName string) error {
	if recipientName == "" {
		return ErrRecipientNameIsRequired
	}

	c.recipientName = recipientName
	return nil
}

func (c *BeginHandoverCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
