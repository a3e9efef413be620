package postgres_test

import (
	"context"
	"testing"

	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/documentrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/taskrepo"
	"fulfillment/internal/adapters/out/renderer"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/scantask"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// FulfillmentFlowIntegrationTestSuite drives the real command handlers over
// a PostgreSQL database through the whole order lifecycle: register, scan,
// complete, draft a handover document, sign, deliver.
type FulfillmentFlowIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	createOrder      commands.CreateOrderCommandHandler
	addScanTask      commands.AddScanTaskCommandHandler
	recordScanEvent  commands.RecordScanEventCommandHandler
	completeScanTask commands.CompleteScanTaskCommandHandler
	beginHandover    commands.BeginHandoverCommandHandler
	attachSignature  commands.AttachSignatureCommandHandler
	signDocument     commands.SignDocumentCommandHandler
}

type flowOrderUoWFactory struct{ inner ports.UnitOfWorkFactory }

func (f flowOrderUoWFactory) Create() commands.OrderUoW { return f.inner.Create() }

type flowTaskUoWFactory struct{ inner ports.UnitOfWorkFactory }

func (f flowTaskUoWFactory) Create() commands.TaskUoW { return f.inner.Create() }

type flowDocumentUoWFactory struct{ inner ports.UnitOfWorkFactory }

func (f flowDocumentUoWFactory) Create() commands.DocumentUoW { return f.inner.Create() }

type flowUoWFactory struct{ inner ports.UnitOfWorkFactory }

func (f flowUoWFactory) Create() commands.UoW { return f.inner.Create() }

func (suite *FulfillmentFlowIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.StockOrderDTO{}, &orderrepo.ItemDTO{},
		&taskrepo.ScanTaskDTO{}, &taskrepo.TaskItemDTO{}, &taskrepo.ScanEventDTO{},
		&documentrepo.HandoverDocumentDTO{},
	)
	suite.Require().NoError(err)

	factory := postgresadapter.NewGormUnitOfWorkFactory(db)
	artifactRenderer, err := renderer.NewArtifactRenderer("artifacts")
	suite.Require().NoError(err)

	suite.createOrder = commands.NewCreateOrderCommandHandler(flowOrderUoWFactory{factory})
	suite.addScanTask = commands.NewAddScanTaskCommandHandler(flowTaskUoWFactory{factory})
	suite.recordScanEvent = commands.NewRecordScanEventCommandHandler(flowTaskUoWFactory{factory})
	suite.completeScanTask = commands.NewCompleteScanTaskCommandHandler(flowUoWFactory{factory})
	suite.beginHandover = commands.NewBeginHandoverCommandHandler(flowUoWFactory{factory}, artifactRenderer)
	suite.attachSignature = commands.NewAttachSignatureCommandHandler(flowDocumentUoWFactory{factory})
	suite.signDocument = commands.NewSignDocumentCommandHandler(flowUoWFactory{factory}, artifactRenderer)
}

func (suite *FulfillmentFlowIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE stock_orders, stock_order_items, scan_tasks, scan_task_items, scan_events, handover_documents").Error
	suite.Require().NoError(err)
}

func (suite *FulfillmentFlowIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *FulfillmentFlowIntegrationTestSuite) TestFullLifecycle_ScanCompleteHandoverSign() {
	ctx := context.Background()
	actor := kernel.NewUUID()

	orderID, itemA, itemB := suite.createTwoLineOrder(ctx)
	taskID := suite.planTask(ctx, orderID, itemA, itemB)

	suite.scan(ctx, taskID, "4006381333931", 4, actor)
	suite.scan(ctx, taskID, "4006381333931", 6, actor)
	suite.scan(ctx, taskID, "4006381333948", 5, actor)

	suite.assertScannedTotals(taskID, map[kernel.UUID]float64{itemA: 10, itemB: 5})

	completeCmd, err := commands.NewCompleteScanTaskCommand(taskID, false, "", actor)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.completeScanTask.Handle(ctx, completeCmd))

	suite.assertOrderStatus(orderID, order.ReadyForHandover)

	documentID := kernel.NewUUID()
	handoverCmd, err := commands.NewBeginHandoverCommand(documentID, orderID, "Jane Porter", actor)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.beginHandover.Handle(ctx, handoverCmd))

	var docDTO documentrepo.HandoverDocumentDTO
	suite.Require().NoError(
		suite.db.First(&docDTO, "id = ?", documentID.String()).Error)
	suite.Equal(1, docDTO.Number)
	suite.Equal(int(document.StatusDraft), docDTO.Status)
	suite.Require().Len(docDTO.Snapshot.Lines, 2)
	quantities := map[string]float64{}
	for _, line := range docDTO.Snapshot.Lines {
		quantities[line.OrderItemID] = line.Quantity
	}
	suite.Equal(10.0, quantities[itemA.String()])
	suite.Equal(5.0, quantities[itemB.String()])

	attachCmd, err := commands.NewAttachSignatureCommand(documentID, "sig-001")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.attachSignature.Handle(ctx, attachCmd))

	signCmd, err := commands.NewSignDocumentCommand(documentID, actor)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.signDocument.Handle(ctx, signCmd))

	suite.assertOrderStatus(orderID, order.Delivered)
	suite.Require().NoError(
		suite.db.First(&docDTO, "id = ?", documentID.String()).Error)
	suite.Equal(int(document.StatusSigned), docDTO.Status)
	suite.NotEmpty(docDTO.SignedArtifact)
	suite.NotNil(docDTO.SignedAt)

	var lineA orderrepo.ItemDTO
	suite.Require().NoError(suite.db.First(&lineA, "id = ?", itemA.String()).Error)
	suite.Equal(10.0, lineA.QuantityDelivered)

	// Signing is terminal: a second call on the same document must fail.
	suite.Require().ErrorIs(suite.signDocument.Handle(ctx, signCmd), errs.ErrInvalidState)
}

func (suite *FulfillmentFlowIntegrationTestSuite) TestTwoDrafts_OnlyOneSignDelivers() {
	ctx := context.Background()
	actor := kernel.NewUUID()

	orderID, itemA, itemB := suite.createTwoLineOrder(ctx)
	taskID := suite.planTask(ctx, orderID, itemA, itemB)

	suite.scan(ctx, taskID, "4006381333931", 10, actor)
	suite.scan(ctx, taskID, "4006381333948", 5, actor)

	completeCmd, err := commands.NewCompleteScanTaskCommand(taskID, false, "", actor)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.completeScanTask.Handle(ctx, completeCmd))

	firstDoc := kernel.NewUUID()
	secondDoc := kernel.NewUUID()
	for _, documentID := range []kernel.UUID{firstDoc, secondDoc} {
		handoverCmd, cmdErr := commands.NewBeginHandoverCommand(documentID, orderID, "Jane Porter", actor)
		suite.Require().NoError(cmdErr)
		suite.Require().NoError(suite.beginHandover.Handle(ctx, handoverCmd))

		attachCmd, cmdErr := commands.NewAttachSignatureCommand(documentID, "sig-001")
		suite.Require().NoError(cmdErr)
		suite.Require().NoError(suite.attachSignature.Handle(ctx, attachCmd))
	}

	signFirst, err := commands.NewSignDocumentCommand(firstDoc, actor)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.signDocument.Handle(ctx, signFirst))

	// The racing loser: the order is already delivered, so the second
	// draft can never be signed and the order delivers exactly once.
	signSecond, err := commands.NewSignDocumentCommand(secondDoc, actor)
	suite.Require().NoError(err)
	suite.Require().ErrorIs(suite.signDocument.Handle(ctx, signSecond), errs.ErrInvalidState)

	suite.assertOrderStatus(orderID, order.Delivered)

	var signedCount int64
	suite.Require().NoError(suite.db.Model(&documentrepo.HandoverDocumentDTO{}).
		Where("status = ?", int(document.StatusSigned)).Count(&signedCount).Error)
	suite.Equal(int64(1), signedCount)
}

// createTwoLineOrder registers an order with lines of 10 and 5 units and
// returns its id plus both line ids.
func (suite *FulfillmentFlowIntegrationTestSuite) createTwoLineOrder(
	ctx context.Context,
) (kernel.UUID, kernel.UUID, kernel.UUID) {
	orderID := kernel.NewUUID()
	itemA := kernel.NewUUID()
	itemB := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, "SO-2024-042", []commands.CreateOrderItem{
		{ID: itemA, ProductCode: "P-100", ProductName: "Cement", Unit: "bag", QuantityOrdered: 10},
		{ID: itemB, ProductCode: "P-200", ProductName: "Gravel", Unit: "bag", QuantityOrdered: 5},
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.createOrder.Handle(ctx, cmd))

	return orderID, itemA, itemB
}

// planTask attaches one scan task expecting the full ordered quantities.
func (suite *FulfillmentFlowIntegrationTestSuite) planTask(
	ctx context.Context,
	orderID, itemA, itemB kernel.UUID,
) kernel.UUID {
	taskID := kernel.NewUUID()

	cmd, err := commands.NewAddScanTaskCommand(taskID, orderID, "Pick zone A", []commands.AddScanTaskItem{
		{ID: kernel.NewUUID(), OrderItemID: itemA, Barcode: "4006381333931", ExpectedQty: 10},
		{ID: kernel.NewUUID(), OrderItemID: itemB, Barcode: "4006381333948", ExpectedQty: 5},
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.addScanTask.Handle(ctx, cmd))

	suite.assertOrderStatus(orderID, order.Preparing)
	return taskID
}

func (suite *FulfillmentFlowIntegrationTestSuite) scan(
	ctx context.Context,
	taskID kernel.UUID,
	barcode string,
	qty float64,
	actor kernel.UUID,
) {
	cmd, err := commands.NewRecordScanEventCommand(taskID, barcode, qty, scantask.SourceScan, actor)
	suite.Require().NoError(err)

	event, err := suite.recordScanEvent.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Require().NotNil(event)
	suite.False(event.IsError())
	suite.Greater(event.Sequence(), int64(0))
}

func (suite *FulfillmentFlowIntegrationTestSuite) assertScannedTotals(
	taskID kernel.UUID,
	expected map[kernel.UUID]float64,
) {
	var items []taskrepo.TaskItemDTO
	suite.Require().NoError(
		suite.db.Find(&items, "task_id = ?", taskID.String()).Error)
	suite.Require().Len(items, len(expected))

	for _, item := range items {
		itemID, err := kernel.UUIDFromBytes(item.OrderItemID[:])
		suite.Require().NoError(err)
		suite.Equal(expected[itemID], item.ScannedQty)
	}
}

func (suite *FulfillmentFlowIntegrationTestSuite) assertOrderStatus(
	orderID kernel.UUID,
	expected order.Status,
) {
	var dto orderrepo.StockOrderDTO
	suite.Require().NoError(
		suite.db.First(&dto, "id = ?", orderID.String()).Error)
	suite.Equal(int(expected), dto.Status)
}

func TestFulfillmentFlowIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(FulfillmentFlowIntegrationTestSuite))
}
