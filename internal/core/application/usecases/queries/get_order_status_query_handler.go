package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/scantask"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler retrieves an order's fulfillment state from
// the database. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the query for one order.
// Returns an ObjectNotFoundError when the order does not exist.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	response, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	if response.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	if response.Tasks, err = h.loadTasks(ctx, query.OrderID()); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderStatusQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderStatusQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			external_ref,
			recipient_name,
			status,
			created_at,
			last_handover_at,
			delivered_at
		FROM stock_orders
		WHERE id = ?
	`, orderID.String()).Row()

	var response GetOrderStatusQueryResponse
	var id uuid.UUID
	var status int

	err := row.Scan(
		&id,
		&response.ExternalRef,
		&response.RecipientName,
		&status,
		&response.CreatedAt,
		&response.LastHandoverAt,
		&response.DeliveredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	responseID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	response.ID = responseID
	response.Status = order.Status(status).String()

	return response, nil
}

func (h GetOrderStatusQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemStatusResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_code,
			product_name,
			unit,
			quantity_ordered,
			quantity_delivered
		FROM stock_order_items
		WHERE order_id = ?
		ORDER BY product_code
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemStatusResponse, 0)
	for rows.Next() {
		var item OrderItemStatusResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&item.ProductCode,
			&item.ProductName,
			&item.Unit,
			&item.QuantityOrdered,
			&item.QuantityDelivered,
		); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = itemID
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderStatusQueryHandler) loadTasks(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderTaskStatusResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status
		FROM scan_tasks
		WHERE order_id = ?
		ORDER BY created_at
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]OrderTaskStatusResponse, 0)
	for rows.Next() {
		var task OrderTaskStatusResponse
		var id uuid.UUID
		var status int

		if err = rows.Scan(&id, &task.Name, &status); err != nil {
			return nil, err
		}

		taskID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		task.ID = taskID
		task.Status = scantask.Status(status).String()
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}
