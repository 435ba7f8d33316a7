package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// IngestOrderUpdateCommandHandler merges a status-update event into the
// working set.
//
// For a held order the patch is merged and the result kept or dropped by the
// visibility policy — an update moving an order out of the station's view
// removes it. For an unknown order the handler fetches the full record from
// the store and inserts it if it passes visibility: an update may be the
// station's first sight of an order (a send-back arriving at the kitchen).
// An id the store no longer knows is ignored.
//
// Replayed events are harmless: the merge is idempotent and the
// fetch-and-insert path converges on the store's record.
//
// Example:
//
//	handler := NewIngestOrderUpdateCommandHandler(
//	    workingSet, orderStore, policy, order.StationKitchen, viewer,
//	)
//	cmd, _ := NewIngestOrderUpdateCommand(orderID, patch)
//	_ = handler.Handle(ctx, cmd)
type IngestOrderUpdateCommandHandler struct {
	workingSet ports.WorkingSet
	orderStore ports.OrderStore
	visibility services.VisibilityPolicy
	station    order.Station
	viewer     *kernel.StaffID
}

// NewIngestOrderUpdateCommandHandler creates a handler for status-update
// events. The order store is consulted only for orders the working set does
// not hold.
func NewIngestOrderUpdateCommandHandler(
	workingSet ports.WorkingSet,
	orderStore ports.OrderStore,
	visibility services.VisibilityPolicy,
	station order.Station,
	viewer *kernel.StaffID,
) IngestOrderUpdateCommandHandler {
	return IngestOrderUpdateCommandHandler{
		workingSet: workingSet,
		orderStore: orderStore,
		visibility: visibility,
		station:    station,
		viewer:     viewer,
	}
}

// Handle processes the status-update command.
func (h IngestOrderUpdateCommandHandler) Handle(ctx context.Context, cmd IngestOrderUpdateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	current, err := h.workingSet.Get(ctx, cmd.OrderID())
	switch {
	case err == nil:
		return h.mergeHeld(ctx, current, cmd.Patch())
	case errors.Is(err, errs.ErrObjectNotFound):
		return h.fetchUnknown(ctx, cmd.OrderID())
	default:
		return err
	}
}

// mergeHeld applies the patch to the held order and keeps or drops the result
// per the visibility policy.
func (h IngestOrderUpdateCommandHandler) mergeHeld(ctx context.Context, current *order.Order, patch order.Patch) error {
	merged, err := current.ApplyPatch(patch)
	if err != nil {
		return err
	}

	if !h.visibility.ShouldShow(merged, h.station, h.viewer) {
		return h.workingSet.Remove(ctx, merged.ID())
	}
	return h.workingSet.Upsert(ctx, merged)
}

// fetchUnknown pulls the full record for an order the station has never seen
// and inserts it if the station should see it now.
func (h IngestOrderUpdateCommandHandler) fetchUnknown(ctx context.Context, id kernel.OrderID) error {
	fetched, err := h.orderStore.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if !h.visibility.ShouldShow(fetched, h.station, h.viewer) {
		return nil
	}
	return h.workingSet.Upsert(ctx, fetched)
}
