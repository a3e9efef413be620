// Package documentrepo provides data transfer objects and mapping functions
// for handover document persistence. This package implements the repository
// pattern for the handover document aggregate, handling the conversion
// between domain entities and database representations. The frozen snapshot
// is stored as a JSON column.
package documentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HandoverDocumentDTO represents the database structure for persisting
// handover document aggregates. Draft status sorts below Signed so the
// current document of an order can be selected by status, then recency.
type HandoverDocumentDTO struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_handover_documents_order_number"`
	Number         int               `gorm:"type:int;not null;uniqueIndex:idx_handover_documents_order_number"`
	ExternalID     string            `gorm:"type:varchar(64);not null"`
	Status         int               `gorm:"type:int;not null"`
	Snapshot       document.Snapshot `gorm:"serializer:json;type:jsonb"`
	DraftArtifact  string            `gorm:"type:varchar(255);not null"`
	SignedArtifact string            `gorm:"type:varchar(255)"`
	SignatureRef   string            `gorm:"type:varchar(255)"`
	CreatedAt      time.Time         `gorm:"not null"`
	SignedAt       *time.Time
	SignedBy       *uuid.UUID `gorm:"type:uuid"`
	Version        int64      `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for handover document entities.
// Overrides GORM's default naming convention to use "handover_documents".
func (HandoverDocumentDTO) TableName() string {
	return "handover_documents"
}

// fromDomain converts a handover document aggregate to its database
// representation.
func fromDomain(aggregate *document.HandoverDocument) HandoverDocumentDTO {
	var signedBy *uuid.UUID
	if by := aggregate.SignedBy(); by != nil {
		raw := by.Bytes()
		signedBy = &raw
	}

	return HandoverDocumentDTO{
		ID:             aggregate.ID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		Number:         aggregate.Number(),
		ExternalID:     aggregate.ExternalID(),
		Status:         int(aggregate.Status()),
		Snapshot:       aggregate.Snapshot(),
		DraftArtifact:  aggregate.DraftArtifact(),
		SignedArtifact: aggregate.SignedArtifact(),
		SignatureRef:   aggregate.SignatureRef(),
		CreatedAt:      aggregate.CreatedAt(),
		SignedAt:       aggregate.SignedAt(),
		SignedBy:       signedBy,
		Version:        aggregate.Version(),
	}
}

// toDomain converts a database DTO to a handover document aggregate using
// RestoreHandoverDocument.
func toDomain(dto HandoverDocumentDTO) (*document.HandoverDocument, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var signedBy *kernel.UUID
	if dto.SignedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.SignedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		signedBy = &by
	}

	return document.RestoreHandoverDocument(
		id,
		orderID,
		dto.Number,
		dto.ExternalID,
		document.Status(dto.Status),
		dto.Snapshot,
		dto.DraftArtifact,
		dto.SignedArtifact,
		dto.SignatureRef,
		dto.CreatedAt,
		dto.SignedAt,
		signedBy,
		dto.Version,
	)
}
