package scantask

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Source identifies where a scan event originated.
type Source int

const (
	// SourceUnknown represents an invalid or undefined source.
	SourceUnknown Source = iota

	// SourceScan marks events produced by a barcode scanner. Scanner
	// events must carry a positive quantity.
	SourceScan

	// SourceManual marks events entered by hand, including negative
	// quantities used to compensate earlier mistakes.
	SourceManual
)

func getSourceStrings() map[Source]string {
	return map[Source]string{
		SourceUnknown: "Unknown",
		SourceScan:    "Scan",
		SourceManual:  "Manual",
	}
}

func getValidSourceStrings() map[Source]string {
	//nolint:exhaustive // SourceUnknown is intentionally excluded as it's invalid
	return map[Source]string{
		SourceScan:   "Scan",
		SourceManual: "Manual",
	}
}

// Validate checks if the Source value is one of the defined origins.
func (s Source) Validate() error {
	if _, ok := getValidSourceStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event source is invalid",
			fmt.Errorf("%d is not a valid event source", s))
	}
	return nil
}

// String returns the human-readable name of the source.
func (s Source) String() string {
	if str, ok := getSourceStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
