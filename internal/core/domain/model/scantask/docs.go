// Package scantask contains the ScanTask aggregate: a picking checklist for
// one stock order with an append-only trail of scan events.
//
// A ScanTask lists barcoded items with expected quantities. Warehouse staff
// scan items against the task; every attempt - matched, unmatched, over-scan
// or manual correction - produces an immutable ScanEvent. The task completes
// when all items reach their expected quantity, or earlier via a short-pick
// override that must carry a reason.
//
// Core types:
//   - ScanTask: aggregate root holding items, status and version
//   - TaskItem: one barcode line with expected and scanned quantities
//   - ScanEvent: immutable record of a single scan attempt
//   - Status: Open -> InProgress -> Completed state machine
//   - Source: origin of an event (scanner or manual entry)
package scantask
