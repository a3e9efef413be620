// Package services contains domain services that coordinate logic spanning
// multiple aggregates.
//
// StatusProjector derives a stock order's lifecycle status from the state of
// its scan tasks and handover documents, keeping the order's stored status a
// projection of the facts rather than an independently mutated field.
package services
