package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAttachSignatureCommandIsNotConstructed = errors.New(
		"AttachSignatureCommand must be created via NewAttachSignatureCommand constructor",
	)
	ErrSignatureRefIsRequired = errs.NewValueIsRequiredError("signatureRef")
)

// AttachSignatureCommand represents a request to attach a captured
// recipient signature to a draft handover document.
type AttachSignatureCommand struct { //nolint:recvcheck //using for validation
	documentID   kernel.UUID
	signatureRef string

	guard guard.ConstructorGuard
}

// NewAttachSignatureCommand creates a command to attach a signature.
func NewAttachSignatureCommand(
	documentID kernel.UUID,
	signatureRef string,
) (AttachSignatureCommand, error) {
	cmd := AttachSignatureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentID(documentID),
		cmd.setSignatureRef(signatureRef),
	); err != nil {
		return AttachSignatureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachSignatureCommand) Validate() error {
	return c.guard.Validate(ErrAttachSignatureCommandIsNotConstructed)
}

// DocumentID returns the draft document to attach the signature to.
func (c AttachSignatureCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// SignatureRef returns the reference to the captured signature.
func (c AttachSignatureCommand) SignatureRef() string {
	return c.signatureRef
}

func (c *AttachSignatureCommand) setDocumentID(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	c.documentID = documentID
	return nil
}

func (c *AttachSignatureCommand) setSignatureRef(signatureRef string) error {
	if signatureRef == "" {
		return ErrSignatureRefIsRequired
	}

	c.signatureRef = signatureRef
	return nil
}
