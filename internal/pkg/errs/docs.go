// Package errs provides standardized error types for the fulfillment core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the core's error taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed or out-of-range input, the caller's fault, not retried
//   - ObjectNotFoundError: a referenced entity is absent
//   - InvalidStateError: the operation violates the current lifecycle state
//     and needs a corrective action, never an automatic retry
//   - ConcurrencyConflictError: the transaction lost a race with a concurrent
//     writer; retrying the whole operation once is safe
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Classifying errors with errors.Is against the sentinels is how the HTTP
// adapter maps failures onto response codes without inspecting messages.
package errs
