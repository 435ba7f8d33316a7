package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// WorkingSet defines the contract for the station's local order set. It holds
// immutable order snapshots: callers never mutate a stored record, they
// replace it with a new one produced by the aggregate's copy-on-write
// mutators.
//
// GetAll returns orders in stable insertion order so that queue projections
// have a deterministic tie-break for equal deadlines.
type WorkingSet interface {
	// Upsert inserts the order or replaces the stored record with the same id.
	Upsert(ctx context.Context, aggregate *order.Order) error

	// Remove drops the order with the given id. Removing an absent id is a
	// no-op.
	Remove(ctx context.Context, id kernel.OrderID) error

	// Get retrieves an order by id.
	// Returns errs.ErrObjectNotFound when the set does not hold the id.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetAll returns a snapshot slice of every held order in insertion order.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// ReplaceAll atomically swaps the entire set for the given orders,
	// resetting insertion order to the slice order.
	ReplaceAll(ctx context.Context, aggregates []*order.Order) error
}
