package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLatestDocumentQueryHandler retrieves the current handover document of
// an order from the database. Signed documents sort above drafts, so the
// one signed document always wins over any later re-handover drafts.
type GetLatestDocumentQueryHandler struct {
	db *gorm.DB
}

// NewGetLatestDocumentQueryHandler creates a handler for current document
// queries. Requires a GORM database connection for query execution.
func NewGetLatestDocumentQueryHandler(db *gorm.DB) GetLatestDocumentQueryHandler {
	return GetLatestDocumentQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the order
// has no documents yet.
func (h GetLatestDocumentQueryHandler) Handle(
	ctx context.Context,
	query GetLatestDocumentQuery,
) (DocumentResponse, error) {
	if err := query.Validate(); err != nil {
		return DocumentResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			number,
			external_id,
			status,
			snapshot,
			draft_artifact,
			signed_artifact,
			created_at,
			signed_at
		FROM handover_documents
		WHERE order_id = ?
		ORDER BY status DESC, created_at DESC
		LIMIT 1
	`, query.OrderID().String()).Row()

	response, err := scanDocumentRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return DocumentResponse{}, err
	}

	return response, nil
}

// scanDocumentRow maps one handover_documents row into the read model. The
// scan callback form lets it serve both Row and Rows results.
func scanDocumentRow(scan func(dest ...any) error) (DocumentResponse, error) {
	var response DocumentResponse
	var id, orderID uuid.UUID
	var status int
	var snapshotJSON []byte

	if err := scan(
		&id,
		&orderID,
		&response.Number,
		&response.ExternalID,
		&status,
		&snapshotJSON,
		&response.DraftArtifact,
		&response.SignedArtifact,
		&response.CreatedAt,
		&response.SignedAt,
	); err != nil {
		return DocumentResponse{}, err
	}

	responseID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return DocumentResponse{}, err
	}
	responseOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return DocumentResponse{}, err
	}
	response.ID = responseID
	response.OrderID = responseOrderID
	response.Status = document.Status(status).String()

	if err = json.Unmarshal(snapshotJSON, &response.Snapshot); err != nil {
		return DocumentResponse{}, err
	}

	return response, nil
}
