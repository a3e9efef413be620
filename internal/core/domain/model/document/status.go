package document

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a handover document.
//
// State transitions:
//
//	Draft ──> Signed
//
// Signed is terminal: a signed document and its snapshot never change again.
// The numeric values are ordered so that sorting by status descending puts
// signed documents first.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusDraft is the initial status of a freshly rendered document
	// awaiting a signature.
	StatusDraft

	// StatusSigned indicates the document was signed and frozen. This is
	// a final state.
	StatusSigned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		StatusDraft:   "Draft",
		StatusSigned:  "Signed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusDraft:  "Draft",
		StatusSigned: "Signed",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("document status is invalid",
			fmt.Errorf("%d is not a valid document status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsSigned reports whether the document reached its final state.
func (s Status) IsSigned() bool {
	return s == StatusSigned
}
