package taskrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/scantask"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormScanTaskRepository implements ScanTaskRepository using GORM.
type GormScanTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormScanTaskRepository creates a new GORM scan task repository.
func NewGormScanTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormScanTaskRepository {
	return &GormScanTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new scan task with its lines to the database.
// A freshly created aggregate is stored with version 1.
func (r *GormScanTaskRepository) Add(ctx context.Context, aggregate *scantask.ScanTask) error {
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

// Update saves an existing scan task to the database. The parent row is
// updated only when the stored version still matches the version the
// aggregate was loaded with; otherwise a ConcurrencyConflictError is
// returned and nothing is written.
func (r *GormScanTaskRepository) Update(ctx context.Context, aggregate *scantask.ScanTask) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ScanTaskDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"status":  dto.Status,
			"version": aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("scanTask", aggregate.ID().String())
	}

	// Lines carry the scanned totals; their identity never changes.
	for i := range dto.Items {
		if err := r.db.WithContext(ctx).Save(&dto.Items[i]).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a scan task by ID, including all of its lines.
func (r *GormScanTaskRepository) Get(ctx context.Context, id kernel.UUID) (*scantask.ScanTask, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScanTaskDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("scanTask", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForOrder retrieves every scan task of a stock order, oldest first.
func (r *GormScanTaskRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*scantask.ScanTask, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ScanTaskDTO
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	tasks := make([]*scantask.ScanTask, 0, len(dtos))
	for _, dto := range dtos {
		task, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// AppendEvent inserts one immutable scan event. The database assigns the
// global sequence number at insert and it is copied back onto the event;
// events are never updated or deleted.
func (r *GormScanTaskRepository) AppendEvent(ctx context.Context, event *scantask.ScanEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := eventFromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	event.AssignSequence(dto.Seq)
	return nil
}
