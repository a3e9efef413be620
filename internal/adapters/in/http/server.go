// Package http exposes the fulfillment use cases over a JSON REST API.
// It coordinates between HTTP handlers and application use cases and maps
// the domain error taxonomy onto response codes: validation failures become
// 400, missing objects 404, and state or concurrency conflicts 409.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/scantask"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the fulfillment API.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	addScanTaskHandler      commands.AddScanTaskCommandHandler
	recordScanEventHandler  commands.RecordScanEventCommandHandler
	completeScanTaskHandler commands.CompleteScanTaskCommandHandler
	beginHandoverHandler    commands.BeginHandoverCommandHandler
	attachSignatureHandler  commands.AttachSignatureCommandHandler
	signDocumentHandler     commands.SignDocumentCommandHandler

	// Query handlers
	getOrderStatusHandler      queries.GetOrderStatusQueryHandler
	listScanHistoryHandler     queries.ListScanHistoryQueryHandler
	getLatestDocumentHandler   queries.GetLatestDocumentQueryHandler
	listDocumentHistoryHandler queries.ListDocumentHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addScanTaskHandler commands.AddScanTaskCommandHandler,
	recordScanEventHandler commands.RecordScanEventCommandHandler,
	completeScanTaskHandler commands.CompleteScanTaskCommandHandler,
	beginHandoverHandler commands.BeginHandoverCommandHandler,
	attachSignatureHandler commands.AttachSignatureCommandHandler,
	signDocumentHandler commands.SignDocumentCommandHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
	listScanHistoryHandler queries.ListScanHistoryQueryHandler,
	getLatestDocumentHandler queries.GetLatestDocumentQueryHandler,
	listDocumentHistoryHandler queries.ListDocumentHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		addScanTaskHandler:         addScanTaskHandler,
		recordScanEventHandler:     recordScanEventHandler,
		completeScanTaskHandler:    completeScanTaskHandler,
		beginHandoverHandler:       beginHandoverHandler,
		attachSignatureHandler:     attachSignatureHandler,
		signDocumentHandler:        signDocumentHandler,
		getOrderStatusHandler:      getOrderStatusHandler,
		listScanHistoryHandler:     listScanHistoryHandler,
		getLatestDocumentHandler:   getLatestDocumentHandler,
		listDocumentHistoryHandler: listDocumentHistoryHandler,
	}
}

// RegisterRoutes attaches all API endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrderStatus)
	api.POST("/orders/:orderId/tasks", s.AddScanTask)
	api.GET("/orders/:orderId/events", s.ListScanHistory)
	api.POST("/orders/:orderId/handover", s.BeginHandover)
	api.GET("/orders/:orderId/documents", s.ListDocumentHistory)
	api.GET("/orders/:orderId/documents/latest", s.GetLatestDocument)

	api.POST("/tasks/:taskId/events", s.RecordScanEvent)
	api.POST("/tasks/:taskId/complete", s.CompleteScanTask)

	api.POST("/documents/:documentId/signature", s.AttachSignature)
	api.POST("/documents/:documentId/sign", s.SignDocument)
}

// CreateOrder handles POST /api/v1/orders - registers a new stock order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.CreateOrderItem, 0, len(request.Items))
	for _, line := range request.Items {
		items = append(items, commands.CreateOrderItem{
			ID:              kernel.NewUUID(),
			ProductCode:     line.ProductCode,
			ProductName:     line.ProductName,
			Unit:            line.Unit,
			QuantityOrdered: line.QuantityOrdered,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.ExternalRef, items)
	if err != nil {
		return mapError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// AddScanTask handles POST /api/v1/orders/:orderId/tasks - attaches a scan
// task to an order.
func (s *Server) AddScanTask(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request AddScanTaskRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.AddScanTaskItem, 0, len(request.Items))
	for _, line := range request.Items {
		orderItemID, idErr := kernel.UUIDFromString(line.OrderItemID)
		if idErr != nil {
			return mapError(ctx, idErr)
		}
		items = append(items, commands.AddScanTaskItem{
			ID:          kernel.NewUUID(),
			OrderItemID: orderItemID,
			Barcode:     line.Barcode,
			ExpectedQty: line.ExpectedQty,
		})
	}

	taskID := kernel.NewUUID()
	cmd, err := commands.NewAddScanTaskCommand(taskID, orderID, request.Name, items)
	if err != nil {
		return mapError(ctx, err)
	}

	handle := func() error { return s.addScanTaskHandler.Handle(ctx.Request().Context(), cmd) }
	if err := withConflictRetry(handle); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: taskID.String()})
}

// RecordScanEvent handles POST /api/v1/tasks/:taskId/events - records one
// scan attempt against a task.
func (s *Server) RecordScanEvent(ctx echo.Context) error {
	taskID, err := uuidParam(ctx, "taskId")
	if err != nil {
		return badRequest(ctx, "Invalid task ID")
	}

	var request RecordScanEventRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	source, err := parseSource(request.Source)
	if err != nil {
		return mapError(ctx, err)
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return mapError(ctx, err)
	}

	cmd, err := commands.NewRecordScanEventCommand(
		taskID, request.Barcode, request.Quantity, source, actorID)
	if err != nil {
		return mapError(ctx, err)
	}

	event, err := s.recordScanEventHandler.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		event, err = s.recordScanEventHandler.Handle(ctx.Request().Context(), cmd)
	}
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, scanEventToResponse(event))
}

// CompleteScanTask handles POST /api/v1/tasks/:taskId/complete - finishes a
// scan task, optionally overriding short-picked lines.
func (s *Server) CompleteScanTask(ctx echo.Context) error {
	taskID, err := uuidParam(ctx, "taskId")
	if err != nil {
		return badRequest(ctx, "Invalid task ID")
	}

	var request CompleteScanTaskRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return mapError(ctx, err)
	}

	cmd, err := commands.NewCompleteScanTaskCommand(taskID, request.Override, request.Reason, actorID)
	if err != nil {
		return mapError(ctx, err)
	}

	handle := func() error { return s.completeScanTaskHandler.Handle(ctx.Request().Context(), cmd) }
	if err := withConflictRetry(handle); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BeginHandover handles POST /api/v1/orders/:orderId/handover - drafts a
// handover document with a frozen quantity snapshot.
func (s *Server) BeginHandover(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request BeginHandoverRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return mapError(ctx, err)
	}

	documentID := kernel.NewUUID()
	cmd, err := commands.NewBeginHandoverCommand(documentID, orderID, request.RecipientName, actorID)
	if err != nil {
		return mapError(ctx, err)
	}

	handle := func() error { return s.beginHandoverHandler.Handle(ctx.Request().Context(), cmd) }
	if err := withConflictRetry(handle); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: documentID.String()})
}

// AttachSignature handles POST /api/v1/documents/:documentId/signature -
// attaches a captured recipient signature to a draft document.
func (s *Server) AttachSignature(ctx echo.Context) error {
	documentID, err := uuidParam(ctx, "documentId")
	if err != nil {
		return badRequest(ctx, "Invalid document ID")
	}

	var request AttachSignatureRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAttachSignatureCommand(documentID, request.SignatureRef)
	if err != nil {
		return mapError(ctx, err)
	}

	handle := func() error { return s.attachSignatureHandler.Handle(ctx.Request().Context(), cmd) }
	if err := withConflictRetry(handle); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SignDocument handles POST /api/v1/documents/:documentId/sign - signs a
// document and delivers its order in one transaction.
func (s *Server) SignDocument(ctx echo.Context) error {
	documentID, err := uuidParam(ctx, "documentId")
	if err != nil {
		return badRequest(ctx, "Invalid document ID")
	}

	var request SignDocumentRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return mapError(ctx, err)
	}

	cmd, err := commands.NewSignDocumentCommand(documentID, actorID)
	if err != nil {
		return mapError(ctx, err)
	}

	handle := func() error { return s.signDocumentHandler.Handle(ctx.Request().Context(), cmd) }
	if err := withConflictRetry(handle); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderStatus handles GET /api/v1/orders/:orderId - retrieves the
// fulfillment state of one order.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return mapError(ctx, err)
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := OrderStatusResponse{
		ID:             status.ID.String(),
		ExternalRef:    status.ExternalRef,
		Status:         status.Status,
		RecipientName:  status.RecipientName,
		CreatedAt:      status.CreatedAt,
		LastHandoverAt: status.LastHandoverAt,
		DeliveredAt:    status.DeliveredAt,
		Items:          make([]OrderItemStatusResponse, 0, len(status.Items)),
		Tasks:          make([]OrderTaskStatusResponse, 0, len(status.Tasks)),
	}
	for _, item := range status.Items {
		response.Items = append(response.Items, OrderItemStatusResponse{
			ID:                item.ID.String(),
			ProductCode:       item.ProductCode,
			ProductName:       item.ProductName,
			Unit:              item.Unit,
			QuantityOrdered:   item.QuantityOrdered,
			QuantityDelivered: item.QuantityDelivered,
		})
	}
	for _, task := range status.Tasks {
		response.Tasks = append(response.Tasks, OrderTaskStatusResponse{
			ID:     task.ID.String(),
			Name:   task.Name,
			Status: task.Status,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListScanHistory handles GET /api/v1/orders/:orderId/events - retrieves
// the scan event trail of an order with since-cursor pagination.
func (s *Server) ListScanHistory(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	since, err := int64QueryParam(ctx, "since", 0)
	if err != nil {
		return badRequest(ctx, "Invalid since cursor")
	}

	limit, err := int64QueryParam(ctx, "limit", 0)
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewListScanHistoryQuery(orderID, since, int(limit))
	if err != nil {
		return mapError(ctx, err)
	}

	events, err := s.listScanHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]ScanEventResponse, 0, len(events))
	for _, event := range events {
		var itemID *string
		if event.ItemID != nil {
			id := event.ItemID.String()
			itemID = &id
		}
		response = append(response, ScanEventResponse{
			ID:         event.ID.String(),
			Sequence:   event.Sequence,
			TaskID:     event.TaskID.String(),
			ItemID:     itemID,
			Barcode:    event.Barcode,
			Quantity:   event.Quantity,
			Source:     event.Source,
			Message:    event.Message,
			IsError:    event.IsError,
			OccurredAt: event.OccurredAt,
			ActorID:    event.ActorID.String(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetLatestDocument handles GET /api/v1/orders/:orderId/documents/latest -
// retrieves the current handover document of an order.
func (s *Server) GetLatestDocument(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetLatestDocumentQuery(orderID)
	if err != nil {
		return mapError(ctx, err)
	}

	doc, err := s.getLatestDocumentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, documentToResponse(doc))
}

// ListDocumentHistory handles GET /api/v1/orders/:orderId/documents -
// retrieves all handover documents of an order in numbering order.
func (s *Server) ListDocumentHistory(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewListDocumentHistoryQuery(orderID)
	if err != nil {
		return mapError(ctx, err)
	}

	documents, err := s.listDocumentHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]DocumentResponse, 0, len(documents))
	for _, doc := range documents {
		response = append(response, documentToResponse(doc))
	}

	return ctx.JSON(http.StatusOK, response)
}

func documentToResponse(doc queries.DocumentResponse) DocumentResponse {
	lines := make([]SnapshotLineResponse, 0, len(doc.Snapshot.Lines))
	for _, line := range doc.Snapshot.Lines {
		lines = append(lines, SnapshotLineResponse{
			OrderItemID: line.OrderItemID,
			ProductCode: line.ProductCode,
			ProductName: line.ProductName,
			Unit:        line.Unit,
			Quantity:    line.Quantity,
		})
	}

	return DocumentResponse{
		ID:         doc.ID.String(),
		OrderID:    doc.OrderID.String(),
		Number:     doc.Number,
		ExternalID: doc.ExternalID,
		Status:     doc.Status,
		Snapshot: SnapshotResponse{
			RecipientName: doc.Snapshot.RecipientName,
			TakenAt:       doc.Snapshot.TakenAt,
			Lines:         lines,
		},
		DraftArtifact:  doc.DraftArtifact,
		SignedArtifact: doc.SignedArtifact,
		CreatedAt:      doc.CreatedAt,
		SignedAt:       doc.SignedAt,
	}
}

func scanEventToResponse(event *scantask.ScanEvent) ScanEventResponse {
	var itemID *string
	if id := event.ItemID(); id != nil {
		raw := id.String()
		itemID = &raw
	}

	return ScanEventResponse{
		ID:         event.ID().String(),
		Sequence:   event.Sequence(),
		TaskID:     event.TaskID().String(),
		ItemID:     itemID,
		Barcode:    event.Barcode(),
		Quantity:   event.Quantity(),
		Source:     event.Source().String(),
		Message:    event.Message(),
		IsError:    event.IsError(),
		OccurredAt: event.OccurredAt(),
		ActorID:    event.Actor().String(),
	}
}

func parseSource(value string) (scantask.Source, error) {
	switch value {
	case "scan", "Scan":
		return scantask.SourceScan, nil
	case "manual", "Manual":
		return scantask.SourceManual, nil
	default:
		return scantask.SourceUnknown, errs.NewValueIsInvalidErrorWithCause("source",
			errors.New("source must be scan or manual"))
	}
}

func uuidParam(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func int64QueryParam(ctx echo.Context, name string, fallback int64) (int64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// withConflictRetry runs a command once more when it lost a race against a
// concurrent writer. Optimistic-lock conflicts are safe to retry whole; a
// second conflict surfaces to the caller.
func withConflictRetry(handle func() error) error {
	err := handle()
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		return handle()
	}
	return err
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates the error taxonomy into HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrConcurrencyConflict):
		code = http.StatusConflict
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
