// Package renderer provides the document rendering adapter. Rendering is
// delegated to an external service in production setups; this implementation
// derives deterministic artifact references from the document identity so
// the rest of the system can be exercised without one.
package renderer

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ArtifactRenderer implements ports.DocumentRenderer with deterministic
// artifact references. The same document always renders to the same
// reference, so retried commands stay idempotent.
type ArtifactRenderer struct {
	prefix string
}

var _ ports.DocumentRenderer = (*ArtifactRenderer)(nil)

// NewArtifactRenderer creates a renderer that prefixes artifact references
// with the given storage location, e.g. "artifacts".
func NewArtifactRenderer(prefix string) (*ArtifactRenderer, error) {
	if prefix == "" {
		return nil, errs.NewValueIsRequiredError("prefix")
	}
	return &ArtifactRenderer{prefix: prefix}, nil
}

// RenderDraft produces the draft artifact reference for a document.
func (r *ArtifactRenderer) RenderDraft(
	_ context.Context,
	externalID string,
	snapshot document.Snapshot,
) (string, error) {
	if externalID == "" {
		return "", errs.NewValueIsRequiredError("externalID")
	}
	if !snapshot.HasQuantity() {
		return "", errs.NewValueIsRequiredError("snapshot")
	}

	return fmt.Sprintf("%s/draft-%s.pdf", r.prefix, externalID), nil
}

// RenderSigned produces the signed artifact reference for a document,
// binding it to the captured signature.
func (r *ArtifactRenderer) RenderSigned(
	_ context.Context,
	externalID string,
	snapshot document.Snapshot,
	signatureRef string,
) (string, error) {
	if externalID == "" {
		return "", errs.NewValueIsRequiredError("externalID")
	}
	if signatureRef == "" {
		return "", errs.NewValueIsRequiredError("signatureRef")
	}
	if !snapshot.HasQuantity() {
		return "", errs.NewValueIsRequiredError("snapshot")
	}

	return fmt.Sprintf("%s/signed-%s.pdf", r.prefix, externalID), nil
}
