package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// StockOrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify database
// persistence behavior.
type StockOrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormStockOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *StockOrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.StockOrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *StockOrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stock_orders, stock_order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormStockOrderRepository(suite.db, suite.tracker)
}

func (suite *StockOrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StockOrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StockOrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrderWithItems() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal("SO-2024-001", retrieved.ExternalRef())
	suite.Equal(order.Created, retrieved.Status())
	suite.Equal(int64(1), retrieved.Version())
	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal("P-100", retrieved.Items()[0].ProductCode())
	suite.Equal(10.0, retrieved.Items()[0].QuantityOrdered())
	suite.Equal(0.0, retrieved.Items()[0].QuantityDelivered())
	suite.WithinDuration(testOrder.CreatedAt(), retrieved.CreatedAt(), time.Second)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StockOrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StockOrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndDeliveredQuantities() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Reload so the aggregate carries the stored version.
	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(loaded.EnterPreparation())
	suite.Require().NoError(loaded.AddDeliveredQuantity(loaded.Items()[0].ID(), 4))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, retrieved.Status())
	suite.Equal(int64(2), retrieved.Version())
	suite.Equal(4.0, retrieved.Items()[0].QuantityDelivered())
	suite.Equal(0.0, retrieved.Items()[1].QuantityDelivered())
}

func (suite *StockOrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConcurrencyConflict() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.EnterPreparation())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// The second copy still carries the old version and must lose the race.
	suite.Require().NoError(second.EnterPreparation())
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
}

func (suite *StockOrderRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesDeliveredOrders() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	active := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, active))

	delivered := suite.createDeliveredOrder()
	suite.Require().NoError(suite.repository.Add(ctx, delivered))

	orders, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(active.ID(), orders[0].ID())
}

func (suite *StockOrderRepositoryIntegrationTestSuite) TestGetAllActive_NoOrders_ReturnsEmptySlice() {
	orders, err := suite.repository.GetAllActive(context.Background())
	suite.Require().NoError(err)
	suite.Empty(orders)
}

// createTestOrder creates a basic two-line order with default values.
func (suite *StockOrderRepositoryIntegrationTestSuite) createTestOrder() *order.StockOrder {
	item1, err := order.NewItem(kernel.NewUUID(), "P-100", "Cement", "bag", 10)
	suite.Require().NoError(err)
	item2, err := order.NewItem(kernel.NewUUID(), "P-200", "Gravel", "kg", 5)
	suite.Require().NoError(err)

	testOrder, err := order.NewStockOrder(
		kernel.NewUUID(), "SO-2024-001", []*order.Item{item1, item2}, time.Now().UTC())
	suite.Require().NoError(err)
	return testOrder
}

// createDeliveredOrder creates an order already in the terminal status.
func (suite *StockOrderRepositoryIntegrationTestSuite) createDeliveredOrder() *order.StockOrder {
	item, err := order.RestoreItem(kernel.NewUUID(), "P-300", "Sand", "kg", 3, 3)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	by := kernel.NewUUID()
	testOrder, err := order.RestoreStockOrder(
		kernel.NewUUID(), "SO-2024-002", "Acme Builders", order.Delivered,
		[]*order.Item{item}, now, &now, &by, &now, &by, 1)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *StockOrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.StockOrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestStockOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StockOrderRepositoryIntegrationTestSuite))
}
