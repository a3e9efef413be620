package document

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for handover document operations.
var (
	// ErrExternalIDIsRequired is returned when attempting to create a document without an external ID.
	ErrExternalIDIsRequired = errs.NewValueIsRequiredError("externalID")
	// ErrDraftArtifactIsRequired is returned when attempting to create a document without a rendered draft.
	ErrDraftArtifactIsRequired = errs.NewValueIsRequiredError("draftArtifact")
	// ErrHandoverDocumentIsNotConstructed is returned when using an improperly initialized document.
	ErrHandoverDocumentIsNotConstructed = errors.New(
		"HandoverDocument must be created via NewDraft constructor")
)

// HandoverDocument is the aggregate root for one proof-of-delivery document
// of a stock order.
//
// Documents are numbered per order, starting at 1. Each carries an external
// identifier of the form "<orderRef>-<NN>" used by downstream systems, a
// frozen snapshot of the handed-over quantities, and references to rendered
// artifacts. A draft collects a recipient signature reference and is then
// signed; signing freezes the document forever and is the event that marks
// the order delivered.
type HandoverDocument struct {
	// id uniquely identifies the document
	id kernel.UUID
	// orderID is the stock order the document attests for
	orderID kernel.UUID
	// number is the per-order document number, starting at 1
	number int
	// externalID is the downstream identifier, "<orderRef>-<NN>"
	externalID string
	// status is the Draft -> Signed state machine
	status Status
	// snapshot freezes the handed-over quantities
	snapshot Snapshot
	// draftArtifact references the rendered draft file
	draftArtifact string
	// signedArtifact references the rendered signed file, empty for drafts
	signedArtifact string
	// signatureRef references the captured recipient signature
	signatureRef string
	// createdAt is when the draft was produced
	createdAt time.Time
	// signedAt is when the document was signed
	signedAt *time.Time
	// signedBy is the user who signed the document
	signedBy *kernel.UUID
	// version is the optimistic concurrency token
	version int64
	// guard ensures the document was properly constructed
	guard guard.ConstructorGuard
}

// NewDraft creates a draft handover document with a frozen snapshot.
// A snapshot with nothing to hand over is refused: a document attesting an
// empty handover has no meaning.
func NewDraft(
	id, orderID kernel.UUID,
	number int,
	externalID string,
	snapshot Snapshot,
	draftArtifact string,
	createdAt time.Time,
) (*HandoverDocument, error) {
	doc := &HandoverDocument{
		status:    StatusDraft,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		doc.setID(id),
		doc.setOrderID(orderID),
		doc.setNumber(number),
		doc.setExternalID(externalID),
		doc.setSnapshot(snapshot),
		doc.setDraftArtifact(draftArtifact),
	); err != nil {
		return nil, err
	}

	return doc, nil
}

// RestoreHandoverDocument reconstructs a document from persistence,
// including its signature state and optimistic-lock version.
func RestoreHandoverDocument(
	id, orderID kernel.UUID,
	number int,
	externalID string,
	status Status,
	snapshot Snapshot,
	draftArtifact, signedArtifact, signatureRef string,
	createdAt time.Time,
	signedAt *time.Time,
	signedBy *kernel.UUID,
	version int64,
) (*HandoverDocument, error) {
	doc, err := NewDraft(id, orderID, number, externalID, snapshot, draftArtifact, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	doc.status = status
	doc.signedArtifact = signedArtifact
	doc.signatureRef = signatureRef
	doc.signedAt = signedAt
	doc.signedBy = signedBy
	doc.version = version
	return doc, nil
}

// Validate checks if the document was created through a constructor. The
// zero value is invalid and fails this validation.
func (d *HandoverDocument) Validate() error {
	if d == nil {
		return ErrHandoverDocumentIsNotConstructed
	}
	return d.guard.Validate(ErrHandoverDocumentIsNotConstructed)
}

// IsEqual compares two documents by their unique identifiers.
func (d *HandoverDocument) IsEqual(other *HandoverDocument) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// ID returns the unique identifier of the document.
func (d *HandoverDocument) ID() kernel.UUID {
	return d.id
}

// OrderID returns the stock order the document attests for.
func (d *HandoverDocument) OrderID() kernel.UUID {
	return d.orderID
}

// Number returns the per-order document number.
func (d *HandoverDocument) Number() int {
	return d.number
}

// ExternalID returns the downstream identifier of the document.
func (d *HandoverDocument) ExternalID() string {
	return d.externalID
}

// Status returns the current lifecycle state of the document.
func (d *HandoverDocument) Status() Status {
	return d.status
}

// Snapshot returns the frozen handed-over quantities.
func (d *HandoverDocument) Snapshot() Snapshot {
	return d.snapshot
}

// DraftArtifact returns the reference to the rendered draft file.
func (d *HandoverDocument) DraftArtifact() string {
	return d.draftArtifact
}

// SignedArtifact returns the reference to the rendered signed file, empty
// while the document is a draft.
func (d *HandoverDocument) SignedArtifact() string {
	return d.signedArtifact
}

// SignatureRef returns the reference to the captured recipient signature,
// empty until one is attached.
func (d *HandoverDocument) SignatureRef() string {
	return d.signatureRef
}

// CreatedAt returns when the draft was produced.
func (d *HandoverDocument) CreatedAt() time.Time {
	return d.createdAt
}

// SignedAt returns when the document was signed, nil for drafts.
func (d *HandoverDocument) SignedAt() *time.Time {
	return d.signedAt
}

// SignedBy returns the user who signed the document, nil for drafts.
func (d *HandoverDocument) SignedBy() *kernel.UUID {
	return d.signedBy
}

// Version returns the optimistic concurrency token loaded from storage.
func (d *HandoverDocument) Version() int64 {
	return d.version
}

// AttachSignature stores the reference to a captured recipient signature.
//
// A draft may replace its signature with a different one (the recipient
// re-signed), but attaching the same reference twice is refused so retried
// requests surface as a conflict instead of silently succeeding. Signed
// documents never change.
func (d *HandoverDocument) AttachSignature(ref string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if ref == "" {
		return errs.NewValueIsRequiredError("signatureRef")
	}

	if d.status.IsSigned() {
		return errs.NewInvalidStateError("document is already signed")
	}
	if d.signatureRef == ref {
		return errs.NewInvalidStateError("signature is already attached")
	}

	d.signatureRef = ref
	return nil
}

// Sign freezes the document.
//
// Signing requires an attached signature and a rendered signed artifact.
// After signing, the document, its snapshot and its artifacts never change
// again.
func (d *HandoverDocument) Sign(signedArtifact string, by kernel.UUID, at time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}
	if signedArtifact == "" {
		return errs.NewValueIsRequiredError("signedArtifact")
	}

	if d.status.IsSigned() {
		return errs.NewInvalidStateError("document is already signed")
	}
	if d.signatureRef == "" {
		return errs.NewInvalidStateError("document has no attached signature")
	}

	d.status = StatusSigned
	d.signedArtifact = signedArtifact
	d.signedAt = &at
	d.signedBy = &by
	return nil
}

func (d *HandoverDocument) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *HandoverDocument) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.orderID = id
	return nil
}

func (d *HandoverDocument) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("number",
			fmt.Errorf("%d is not greater than 0", number))
	}
	d.number = number
	return nil
}

func (d *HandoverDocument) setExternalID(externalID string) error {
	if externalID == "" {
		return ErrExternalIDIsRequired
	}
	d.externalID = externalID
	return nil
}

func (d *HandoverDocument) setSnapshot(snapshot Snapshot) error {
	if len(snapshot.Lines) == 0 {
		return errs.NewValueIsRequiredError("snapshot lines")
	}
	if !snapshot.HasQuantity() {
		return errs.NewValueIsInvalidErrorWithCause("snapshot",
			errors.New("nothing to hand over"))
	}
	d.snapshot = snapshot
	return nil
}

func (d *HandoverDocument) setDraftArtifact(artifact string) error {
	if artifact == "" {
		return ErrDraftArtifactIsRequired
	}
	d.draftArtifact = artifact
	return nil
}
