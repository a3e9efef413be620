package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSignDocumentCommandIsNotConstructed = errors.New(
	"SignDocumentCommand must be created via NewSignDocumentCommand constructor",
)

// SignDocumentCommand represents a request to sign a handover document.
// Signing freezes the document and marks its order delivered; the two
// changes always commit together.
type SignDocumentCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewSignDocumentCommand creates a command to sign a handover document.
func NewSignDocumentCommand(documentID, actorID kernel.UUID) (SignDocumentCommand, error) {
	cmd := SignDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentID(documentID),
		cmd.setActorID(actorID),
	); err != nil {
		return SignDocumentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SignDocumentCommand) Validate() error {
	return c.guard.Validate(ErrSignDocumentCommandIsNotConstructed)
}

// DocumentID returns the document to sign.
func (c SignDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// ActorID returns the user signing the document.
func (c SignDocumentCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *SignDocumentCommand) setDocumentID(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	c.documentID = documentID
	return nil
}

func (c *SignDocumentCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
