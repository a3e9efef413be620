package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListDocumentHistoryQueryHandler retrieves the full document trail of an
// order from the database, oldest first.
type ListDocumentHistoryQueryHandler struct {
	db *gorm.DB
}

// NewListDocumentHistoryQueryHandler creates a handler for document history
// queries. Requires a GORM database connection for query execution.
func NewListDocumentHistoryQueryHandler(db *gorm.DB) ListDocumentHistoryQueryHandler {
	return ListDocumentHistoryQueryHandler{db: db}
}

// Handle executes the history query. An order without documents yields an
// empty list, not an error.
func (h ListDocumentHistoryQueryHandler) Handle(
	ctx context.Context,
	query ListDocumentHistoryQuery,
) ([]DocumentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
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
		ORDER BY number
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := make([]DocumentResponse, 0)
	for rows.Next() {
		response, scanErr := scanDocumentRow(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		documents = append(documents, response)
	}

	return documents, rows.Err()
}
