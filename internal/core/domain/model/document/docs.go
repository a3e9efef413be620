// Package document contains the HandoverDocument aggregate: a versioned
// proof-of-delivery record for a stock order.
//
// Each handover produces a new draft document with a frozen snapshot of the
// quantities being handed over. Drafts collect a recipient signature and are
// then signed, which freezes them permanently. Signing a document is the
// moment an order counts as delivered, so the two state changes always
// commit together.
//
// Core types:
//   - HandoverDocument: aggregate root with number, snapshot and artifacts
//   - Snapshot: frozen line quantities taken when the handover began
//   - Status: Draft -> Signed state machine
package document
