package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// BarcodeMaxLength is the longest barcode accepted by the scanning surface.
// Matches the widest symbology the warehouse scanners emit.
const BarcodeMaxLength = 128

// ErrBarcodeIsNotConstructed is returned when validating a zero-value Barcode.
// Barcodes must be created via NewBarcode.
var ErrBarcodeIsNotConstructed = errs.NewValueIsRequiredError(
	"barcode must be created via NewBarcode constructor")

// Barcode is an immutable value object holding a product barcode exactly as
// it is matched against scan task items. Surrounding whitespace is trimmed at
// construction; everything else is preserved, because a misread barcode must
// still be recordable verbatim in the audit trail.
//
// Example:
//
//	code, err := kernel.NewBarcode("3800065711931")
//	if err != nil {
//	    // empty or oversized input
//	}
type Barcode struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewBarcode creates a Barcode from raw scanner input. The input is trimmed;
// an empty or oversized result is rejected.
func NewBarcode(value string) (Barcode, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Barcode{}, errs.NewValueIsRequiredError("barcode")
	}
	if len(trimmed) > BarcodeMaxLength {
		return Barcode{}, errs.NewValueIsInvalidErrorWithCause("barcode",
			fmt.Errorf("length %d exceeds %d", len(trimmed), BarcodeMaxLength))
	}

	return Barcode{
		value: trimmed,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the barcode text.
func (b Barcode) String() string {
	return b.value
}

// IsEqual reports whether two barcodes carry the same text.
func (b Barcode) IsEqual(other Barcode) bool {
	return b.value == other.value
}

// Validate returns ErrBarcodeIsNotConstructed for a zero-value Barcode.
func (b Barcode) Validate() error {
	return b.guard.Validate(ErrBarcodeIsNotConstructed)
}
