package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a stock order. It implements a
// state machine with defined transitions so orders follow the fulfillment
// workflow.
//
// State transitions:
//
//	Created ──> Preparing ──> ReadyForHandover ──> Delivered
//	                ^                │
//	                └────────────────┘
//	        (new scan task reopens preparation)
//
// Delivered is terminal. Status is a value object that validates transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status of a freshly registered order,
	// before any scan task exists for it.
	Created

	// Preparing indicates at least one scan task exists and picking is
	// under way. An order returns here if a new task is added after it
	// was ready for handover.
	Preparing

	// ReadyForHandover indicates every scan task of the order is
	// completed and a handover may begin.
	ReadyForHandover

	// Delivered indicates a handover document was signed for the order.
	// This is a final state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Created:          "Created",
		Preparing:        "Preparing",
		ReadyForHandover: "ReadyForHandover",
		Delivered:        "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:          "Created",
		Preparing:        "Preparing",
		ReadyForHandover: "ReadyForHandover",
		Delivered:        "Delivered",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and any other values are invalid. Used when statuses arrive
// from external sources such as the database.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// EnterPreparation transitions the status to Preparing.
//
// Valid transitions:
//   - Created -> Preparing (first scan task created)
//   - Preparing -> Preparing (another scan task added)
//   - ReadyForHandover -> Preparing (handover aborted, preparation reopened)
//
// Returns an InvalidStateError for Delivered or Unknown.
func (s Status) EnterPreparation() (Status, error) {
	if s != Created && s != Preparing && s != ReadyForHandover {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order cannot enter preparation",
			fmt.Errorf("%s is not a valid status to start preparing from", s.String()),
		)
	}

	return Preparing, nil
}

// MakeReady transitions the status to ReadyForHandover.
//
// Valid transitions:
//   - Preparing -> ReadyForHandover (all scan tasks completed)
//   - ReadyForHandover -> ReadyForHandover (projection re-applied)
//
// Returns an InvalidStateError otherwise.
func (s Status) MakeReady() (Status, error) {
	if s != Preparing && s != ReadyForHandover {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order cannot become ready for handover",
			fmt.Errorf("%s is not a valid status to become ready from", s.String()),
		)
	}

	return ReadyForHandover, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - ReadyForHandover -> Delivered (handover document signed)
//
// Delivered is terminal; any other starting status is an InvalidStateError.
func (s Status) Deliver() (Status, error) {
	if s != ReadyForHandover {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order cannot be delivered",
			fmt.Errorf("%s is not a valid status to deliver from", s.String()),
		)
	}

	return Delivered, nil
}
