package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/scantask"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.StockOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.StockOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.StockOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.StockOrder), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.StockOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.StockOrder), args.Error(1)
}

type MockScanTaskRepository struct{ mock.Mock }

func (m *MockScanTaskRepository) Add(ctx context.Context, t *scantask.ScanTask) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockScanTaskRepository) Update(ctx context.Context, t *scantask.ScanTask) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockScanTaskRepository) Get(ctx context.Context, id kernel.UUID) (*scantask.ScanTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scantask.ScanTask), args.Error(1)
}

func (m *MockScanTaskRepository) GetAllForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*scantask.ScanTask, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scantask.ScanTask), args.Error(1)
}

func (m *MockScanTaskRepository) AppendEvent(ctx context.Context, e *scantask.ScanEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) Add(ctx context.Context, d *document.HandoverDocument) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, d *document.HandoverDocument) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*document.HandoverDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.HandoverDocument), args.Error(1)
}

func (m *MockDocumentRepository) GetAllForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*document.HandoverDocument, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.HandoverDocument), args.Error(1)
}

func (m *MockDocumentRepository) NextNumber(ctx context.Context, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

// MockUoW satisfies every unit of work interface the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ScanTaskRepository() ports.ScanTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.ScanTaskRepository)
}

func (m *MockUoW) DocumentRepository() ports.DocumentRepository {
	args := m.Called()
	return args.Get(0).(ports.DocumentRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTaskUoWFactory struct{ mock.Mock }

func (m *MockTaskUoWFactory) Create() commands.TaskUoW {
	args := m.Called()
	return args.Get(0).(commands.TaskUoW)
}

type MockDocumentUoWFactory struct{ mock.Mock }

func (m *MockDocumentUoWFactory) Create() commands.DocumentUoW {
	args := m.Called()
	return args.Get(0).(commands.DocumentUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDocumentRenderer struct{ mock.Mock }

func (m *MockDocumentRenderer) RenderDraft(
	ctx context.Context,
	externalID string,
	snapshot document.Snapshot,
) (string, error) {
	args := m.Called(ctx, externalID, snapshot)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRenderer) RenderSigned(
	ctx context.Context,
	externalID string,
	snapshot document.Snapshot,
	signatureRef string,
) (string, error) {
	args := m.Called(ctx, externalID, snapshot, signatureRef)
	return args.String(0), args.Error(1)
}
