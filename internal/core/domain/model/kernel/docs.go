// Package kernel contains shared value objects used across the fulfillment
// domain model.
//
// The package includes:
//   - UUID: validated identifier for entities and aggregates
//   - Barcode: validated product barcode as scanned on the warehouse floor
//
// All value objects are immutable, must be created through their constructor
// functions, and expose a Validate method that fails for zero values. This
// keeps identifiers and barcodes trustworthy everywhere they travel: a value
// that exists was validated once, at the boundary where it entered the domain.
package kernel
