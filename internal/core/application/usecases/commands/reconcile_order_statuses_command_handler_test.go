package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/scantask"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcileOrderStatusesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	// stale order: stuck in Preparing although its only task completed
	item := newOrderItem(t, "P-100", 10)
	stale := newStockOrder(t, item)
	require.NoError(t, stale.EnterPreparation())
	task := completedScanTaskFor(t, stale.ID(), item.ID(), "A", 10)

	// current order: status already matches the projection
	current := newStockOrder(t)

	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockScanTaskRepository)
	docRepo := new(MockDocumentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ScanTaskRepository").Return(taskRepo)
	uow.On("DocumentRepository").Return(docRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("GetAllActive", mock.Anything).
		Return([]*order.StockOrder{stale, current}, nil).Once()
	taskRepo.On("GetAllForOrder", mock.Anything, stale.ID()).
		Return([]*scantask.ScanTask{task}, nil).Once()
	docRepo.On("GetAllForOrder", mock.Anything, stale.ID()).
		Return([]*document.HandoverDocument{}, nil).Once()
	taskRepo.On("GetAllForOrder", mock.Anything, current.ID()).
		Return([]*scantask.ScanTask{}, nil).Once()
	docRepo.On("GetAllForOrder", mock.Anything, current.ID()).
		Return([]*document.HandoverDocument{}, nil).Once()
	orderRepo.On("Update", mock.Anything, stale).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileOrderStatusesCommandHandler(factory)
	reconciled, err := h.Handle(ctx, commands.NewReconcileOrderStatusesCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, reconciled)
	assert.Equal(t, order.ReadyForHandover, stale.Status())
	assert.Equal(t, order.Created, current.Status())
	orderRepo.AssertExpectations(t)
}
