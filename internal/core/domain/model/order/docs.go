// Package order provides the StockOrder aggregate root: the top of the
// fulfillment lifecycle that ties ordered line items to scan tasks and
// handover documents.
//
// The package includes:
//   - StockOrder: the aggregate root with recipient, line items, and lifecycle state
//   - Item: an ordered (product, quantity) line owned by exactly one order
//   - Status: the lifecycle state machine
//
// Key business rules:
//   - Status follows Created -> Preparing -> ReadyForHandover -> Delivered,
//     with Preparing re-entrant (a new scan task reopens preparation)
//   - Delivered is terminal; no further scan tasks or documents may target
//     a delivered order
//   - Ordered quantities are fixed at creation; only delivered quantities
//     advance, and only through a signed handover
//   - Status is a projection of scan task and document state, never an
//     independently authoritative field; document signing is the source of
//     truth for Delivered
package order
