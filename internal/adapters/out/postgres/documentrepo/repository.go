package documentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM.
type GormDocumentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDocumentRepository creates a new GORM handover document repository.
func NewGormDocumentRepository(db *gorm.DB, tracker aggregateTracker) *GormDocumentRepository {
	return &GormDocumentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new handover document to the database.
// A freshly drafted aggregate is stored with version 1.
func (r *GormDocumentRepository) Add(ctx context.Context, aggregate *document.HandoverDocument) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing handover document to the database. The row is
// updated only when the stored version still matches the version the
// aggregate was loaded with; otherwise a ConcurrencyConflictError is
// returned and nothing is written. The snapshot is frozen at draft time and
// never rewritten.
func (r *GormDocumentRepository) Update(ctx context.Context, aggregate *document.HandoverDocument) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&HandoverDocumentDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"status":          dto.Status,
			"signed_artifact": dto.SignedArtifact,
			"signature_ref":   dto.SignatureRef,
			"signed_at":       dto.SignedAt,
			"signed_by":       dto.SignedBy,
			"version":         aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("handoverDocument", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a handover document by ID.
func (r *GormDocumentRepository) Get(ctx context.Context, id kernel.UUID) (*document.HandoverDocument, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HandoverDocumentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("handoverDocument", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForOrder retrieves every handover document of a stock order in
// numbering order.
func (r *GormDocumentRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*document.HandoverDocument, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HandoverDocumentDTO
	if err := r.db.WithContext(ctx).
		Order("number").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	documents := make([]*document.HandoverDocument, 0, len(dtos))
	for _, dto := range dtos {
		doc, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	return documents, nil
}

// NextNumber returns the next per-order document number, starting at 1 for
// an order without documents. Must run inside the same transaction as the
// subsequent Add so concurrent drafts collide on the unique order/number
// index instead of silently sharing a number.
func (r *GormDocumentRepository) NextNumber(ctx context.Context, orderID kernel.UUID) (int, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var maxNumber int
	err := r.db.WithContext(ctx).Model(&HandoverDocumentDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Select("COALESCE(MAX(number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}

	return maxNumber + 1, nil
}
