package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAttachSignatureCommand(t *testing.T) {
	t.Run("should fail with empty reference", func(t *testing.T) {
		_, err := commands.NewAttachSignatureCommand(kernel.NewUUID(), "")
		require.ErrorIs(t, err, commands.ErrSignatureRefIsRequired)
	})
}

func TestAttachSignatureCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	doc := draftDocumentFor(t, readyStockOrder(t), "")

	cmd, err := commands.NewAttachSignatureCommand(doc.ID(), "sig-001")
	require.NoError(t, err)

	docRepo := new(MockDocumentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(docRepo).Once(),
		docRepo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		docRepo.On("Update", mock.Anything, doc).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDocumentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachSignatureCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, "sig-001", doc.SignatureRef())
	docRepo.AssertExpectations(t)
}

func TestAttachSignatureCommandHandler_Handle_SameReferenceTwice(t *testing.T) {
	ctx := t.Context()
	doc := draftDocumentFor(t, readyStockOrder(t), "sig-001")

	cmd, err := commands.NewAttachSignatureCommand(doc.ID(), "sig-001")
	require.NoError(t, err)

	docRepo := new(MockDocumentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(docRepo).Once(),
		docRepo.On("Get", mock.Anything, doc.ID()).Return(doc, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDocumentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachSignatureCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}
