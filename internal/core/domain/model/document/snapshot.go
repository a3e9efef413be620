package document

import (
	"time"

	"fulfillment/internal/pkg/errs"
)

// SnapshotLine is one frozen line of a handover snapshot. Fields are plain
// exported values so the snapshot serializes as-is; it is a record, not an
// entity.
type SnapshotLine struct {
	OrderItemID string  `json:"orderItemId"`
	ProductCode string  `json:"productCode"`
	ProductName string  `json:"productName"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
}

// Snapshot freezes what a handover document attests: who receives the goods
// and the exact line quantities at the moment the handover began. Once a
// document is created its snapshot never changes, even if the order's items
// are scanned or corrected afterwards.
type Snapshot struct {
	RecipientName string         `json:"recipientName"`
	TakenAt       time.Time      `json:"takenAt"`
	Lines         []SnapshotLine `json:"lines"`
}

// NewSnapshot freezes the given lines for a handover document.
func NewSnapshot(recipientName string, takenAt time.Time, lines []SnapshotLine) (Snapshot, error) {
	if recipientName == "" {
		return Snapshot{}, errs.NewValueIsRequiredError("recipientName")
	}
	if len(lines) == 0 {
		return Snapshot{}, errs.NewValueIsRequiredError("lines")
	}

	frozen := make([]SnapshotLine, len(lines))
	copy(frozen, lines)
	return Snapshot{
		RecipientName: recipientName,
		TakenAt:       takenAt,
		Lines:         frozen,
	}, nil
}

// TotalQuantity sums the snapshot line quantities.
func (s Snapshot) TotalQuantity() float64 {
	var total float64
	for _, line := range s.Lines {
		total += line.Quantity
	}
	return total
}

// HasQuantity reports whether any line carries a positive quantity. A
// handover with nothing to hand over is refused.
func (s Snapshot) HasQuantity() bool {
	for _, line := range s.Lines {
		if line.Quantity > 0 {
			return true
		}
	}
	return false
}
