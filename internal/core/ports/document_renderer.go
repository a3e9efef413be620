package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/document"
)

// DocumentRenderer renders handover documents into stored artifacts and
// returns references to them. Rendering happens outside the database
// transaction boundary; only the returned references are persisted.
type DocumentRenderer interface {
	// RenderDraft renders the draft form of a document from its
	// snapshot and returns the artifact reference.
	RenderDraft(ctx context.Context, externalID string, snapshot document.Snapshot) (string, error)

	// RenderSigned renders the final signed form, embedding the
	// captured signature, and returns the artifact reference.
	RenderSigned(ctx context.Context, externalID string, snapshot document.Snapshot, signatureRef string) (string, error)
}
