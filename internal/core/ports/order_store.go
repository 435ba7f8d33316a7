package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrStoreRejected is returned when the order store refuses a status change,
// typically because another station won a concurrent claim or the order moved
// on since the local snapshot was taken. The wrapped message carries the
// store's reason text for display to the acting staff member.
var ErrStoreRejected = errors.New("order store rejected the status change")

// StatusChange describes one requested status transition submitted to the
// order store. Optional fields are nil when the action does not carry them.
type StatusChange struct {
	// Status is the requested destination status.
	Status order.Status

	// Parallel carries the updated per-leg record for orders with both legs
	// in flight.
	Parallel *order.ParallelState

	// ClaimedBy identifies the staff member claiming or finishing the work,
	// set on claim and completion actions.
	ClaimedBy *kernel.StaffID

	// Station identifies the stage the acting staff member works at.
	Station order.Station

	// TeamNotes carries stage notes entered by the staff member, if any.
	TeamNotes string

	// ReturnDestination and ReturnReason are set only on a send-back.
	ReturnDestination *order.Leg
	ReturnReason      string
}

// OrderStore defines the contract with the authoritative order store. The
// store owns the canonical record: every local mutation is optimistic until
// the store confirms it, and the order returned by SubmitStatusChange
// replaces the local copy.
type OrderStore interface {
	// GetOrders retrieves the full active order set for snapshot refreshes.
	GetOrders(ctx context.Context) ([]*order.Order, error)

	// GetOrder retrieves one order by its store-issued identifier.
	// Returns errs.ErrObjectNotFound when the store does not know the id.
	GetOrder(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// SubmitStatusChange submits a transition and returns the authoritative
	// order state after the store applied it. Returns ErrStoreRejected when
	// the store refuses the change.
	SubmitStatusChange(ctx context.Context, id kernel.OrderID, change StatusChange) (*order.Order, error)
}
