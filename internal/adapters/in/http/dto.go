package http

import "time"

// ErrorResponse is the uniform error body returned by all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	ExternalRef string                   `json:"externalRef"`
	Items       []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest is one ordered line of a new stock order.
type CreateOrderItemRequest struct {
	ProductCode     string  `json:"productCode"`
	ProductName     string  `json:"productName"`
	Unit            string  `json:"unit"`
	QuantityOrdered float64 `json:"quantityOrdered"`
}

// CreatedResponse returns the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// AddScanTaskRequest is the body of POST /api/v1/orders/:orderId/tasks.
type AddScanTaskRequest struct {
	Name  string                   `json:"name"`
	Items []AddScanTaskItemRequest `json:"items"`
}

// AddScanTaskItemRequest is one line of a new scan task.
type AddScanTaskItemRequest struct {
	OrderItemID string  `json:"orderItemId"`
	Barcode     string  `json:"barcode"`
	ExpectedQty float64 `json:"expectedQty"`
}

// RecordScanEventRequest is the body of POST /api/v1/tasks/:taskId/events.
// Source is "scan" for scanner hardware or "manual" for corrections.
type RecordScanEventRequest struct {
	Barcode  string  `json:"barcode"`
	Quantity float64 `json:"quantity"`
	Source   string  `json:"source"`
	ActorID  string  `json:"actorId"`
}

// CompleteScanTaskRequest is the body of POST /api/v1/tasks/:taskId/complete.
type CompleteScanTaskRequest struct {
	Override bool   `json:"override"`
	Reason   string `json:"reason"`
	ActorID  string `json:"actorId"`
}

// BeginHandoverRequest is the body of POST /api/v1/orders/:orderId/handover.
type BeginHandoverRequest struct {
	RecipientName string `json:"recipientName"`
	ActorID       string `json:"actorId"`
}

// AttachSignatureRequest is the body of
// POST /api/v1/documents/:documentId/signature.
type AttachSignatureRequest struct {
	SignatureRef string `json:"signatureRef"`
}

// SignDocumentRequest is the body of POST /api/v1/documents/:documentId/sign.
type SignDocumentRequest struct {
	ActorID string `json:"actorId"`
}

// ScanEventResponse describes one recorded scan event.
type ScanEventResponse struct {
	ID         string    `json:"id"`
	Sequence   int64     `json:"sequence"`
	TaskID     string    `json:"taskId"`
	ItemID     *string   `json:"itemId,omitempty"`
	Barcode    string    `json:"barcode"`
	Quantity   float64   `json:"quantity"`
	Source     string    `json:"source"`
	Message    string    `json:"message,omitempty"`
	IsError    bool      `json:"isError"`
	OccurredAt time.Time `json:"occurredAt"`
	ActorID    string    `json:"actorId"`
}

// OrderStatusResponse is the fulfillment state of one stock order.
type OrderStatusResponse struct {
	ID             string                    `json:"id"`
	ExternalRef    string                    `json:"externalRef"`
	Status         string                    `json:"status"`
	RecipientName  string                    `json:"recipientName,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	LastHandoverAt *time.Time                `json:"lastHandoverAt,omitempty"`
	DeliveredAt    *time.Time                `json:"deliveredAt,omitempty"`
	Items          []OrderItemStatusResponse `json:"items"`
	Tasks          []OrderTaskStatusResponse `json:"tasks"`
}

// OrderItemStatusResponse is the per-item progress of an order.
type OrderItemStatusResponse struct {
	ID                string  `json:"id"`
	ProductCode       string  `json:"productCode"`
	ProductName       string  `json:"productName"`
	Unit              string  `json:"unit,omitempty"`
	QuantityOrdered   float64 `json:"quantityOrdered"`
	QuantityDelivered float64 `json:"quantityDelivered"`
}

// OrderTaskStatusResponse summarizes one scan task of an order.
type OrderTaskStatusResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// DocumentResponse describes one handover document.
type DocumentResponse struct {
	ID             string           `json:"id"`
	OrderID        string           `json:"orderId"`
	Number         int              `json:"number"`
	ExternalID     string           `json:"externalId"`
	Status         string           `json:"status"`
	Snapshot       SnapshotResponse `json:"snapshot"`
	DraftArtifact  string           `json:"draftArtifact"`
	SignedArtifact string           `json:"signedArtifact,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	SignedAt       *time.Time       `json:"signedAt,omitempty"`
}

// SnapshotResponse is the frozen quantity snapshot of a document.
type SnapshotResponse struct {
	RecipientName string                 `json:"recipientName"`
	TakenAt       time.Time              `json:"takenAt"`
	Lines         []SnapshotLineResponse `json:"lines"`
}

// SnapshotLineResponse is one frozen line of a document snapshot.
type SnapshotLineResponse struct {
	OrderItemID string  `json:"orderItemId"`
	ProductCode string  `json:"productCode"`
	ProductName string  `json:"productName"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    float64 `json:"quantity"`
}
