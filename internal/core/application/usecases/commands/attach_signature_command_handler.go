package commands

import (
	"context"
)

// AttachSignatureCommandHandler handles attaching a captured recipient
// signature to a draft document.
type AttachSignatureCommandHandler struct {
	uowFactory DocumentUoWFactory
}

// NewAttachSignatureCommandHandler creates a handler for signature
// attachment.
func NewAttachSignatureCommandHandler(uowFactory DocumentUoWFactory) AttachSignatureCommandHandler {
	return AttachSignatureCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the signature attachment command. A draft may replace
// its signature with a different one; re-attaching the same reference or
// touching a signed document is refused by the aggregate.
func (h AttachSignatureCommandHandler) Handle(ctx context.Context, cmd AttachSignatureCommand) error {
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

	docRepo := uow.DocumentRepository()
	doc, err := docRepo.Get(ctx, cmd.DocumentID())
	if err != nil {
		return err
	}

	if err = doc.AttachSignature(cmd.SignatureRef()); err != nil {
		return err
	}

	if err = docRepo.Update(ctx, doc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
