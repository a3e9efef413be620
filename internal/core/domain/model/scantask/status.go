package scantask

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a scan task.
//
// State transitions:
//
//	Open ──> InProgress ──> Completed
//
// A task opens empty, moves to InProgress on the first matched scan and is
// Completed either when every item reaches its expected quantity or through
// a short-pick override. Completed tasks still accept compensating events
// but never change status again.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOpen is the initial status of a freshly created task with no
	// matched scans yet.
	StatusOpen

	// StatusInProgress indicates at least one scan matched an item of
	// the task.
	StatusInProgress

	// StatusCompleted indicates picking for the task is finished. This
	// is a final state.
	StatusCompleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusOpen:       "Open",
		StatusInProgress: "InProgress",
		StatusCompleted:  "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusOpen:       "Open",
		StatusInProgress: "InProgress",
		StatusCompleted:  "Completed",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("task status is invalid",
			fmt.Errorf("%d is not a valid task status", s))
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

// IsCompleted reports whether the task reached its final state.
func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}
