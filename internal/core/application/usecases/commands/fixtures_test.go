package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/scantask"

	"github.com/stretchr/testify/require"
)

func newOrderItem(t *testing.T, code string, qty float64) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), code, code+" name", "pcs", qty)
	require.NoError(t, err)
	return item
}

func newStockOrder(t *testing.T, items ...*order.Item) *order.StockOrder {
	t.Helper()
	if len(items) == 0 {
		items = []*order.Item{newOrderItem(t, "P-100", 10)}
	}
	aggregate, err := order.NewStockOrder(kernel.NewUUID(), "SO-2024-001", items, time.Now())
	require.NoError(t, err)
	return aggregate
}

func readyStockOrder(t *testing.T, items ...*order.Item) *order.StockOrder {
	t.Helper()
	aggregate := newStockOrder(t, items...)
	require.NoError(t, aggregate.EnterPreparation())
	require.NoError(t, aggregate.MakeReady())
	return aggregate
}

func newScanTaskFor(t *testing.T, orderID, orderItemID kernel.UUID, barcode string, expected float64) *scantask.ScanTask {
	t.Helper()
	code, err := kernel.NewBarcode(barcode)
	require.NoError(t, err)
	item, err := scantask.NewTaskItem(kernel.NewUUID(), orderItemID, code, expected)
	require.NoError(t, err)
	task, err := scantask.NewScanTask(
		kernel.NewUUID(), orderID, "Pallet 1", []*scantask.TaskItem{item}, time.Now())
	require.NoError(t, err)
	return task
}

func completedScanTaskFor(t *testing.T, orderID, orderItemID kernel.UUID, barcode string, expected float64) *scantask.ScanTask {
	t.Helper()
	task := newScanTaskFor(t, orderID, orderItemID, barcode, expected)
	_, err := task.Record(barcode, expected, scantask.SourceScan, kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	_, err = task.Complete(false, "", kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	return task
}

func draftDocumentFor(t *testing.T, aggregate *order.StockOrder, signatureRef string) *document.HandoverDocument {
	t.Helper()
	lines := make([]document.SnapshotLine, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		lines = append(lines, document.SnapshotLine{
			OrderItemID: item.ID().String(),
			ProductCode: item.ProductCode(),
			ProductName: item.ProductName(),
			Unit:        item.Unit(),
			Quantity:    item.RemainingToDeliver(),
		})
	}
	snapshot, err := document.NewSnapshot("Ivan Petrov", time.Now(), lines)
	require.NoError(t, err)

	doc, err := document.NewDraft(
		kernel.NewUUID(), aggregate.ID(), 1, aggregate.ExternalRef()+"-01",
		snapshot, "draft.pdf", time.Now())
	require.NoError(t, err)

	if signatureRef != "" {
		require.NoError(t, doc.AttachSignature(signatureRef))
	}
	return doc
}
