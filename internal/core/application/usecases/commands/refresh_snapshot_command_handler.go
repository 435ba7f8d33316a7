package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RefreshSnapshotCommandHandler replaces the working set with the store's
// current view of the station's queue.
//
// The store wins every divergence. A held order whose status differs from
// the snapshot is logged as stale local state before being overwritten, so
// missed events leave a trace without blocking convergence.
//
// Example:
//
//	handler := NewRefreshSnapshotCommandHandler(
//	    workingSet, orderStore, policy, order.StationKitchen, viewer, logger,
//	)
//	_ = handler.Handle(ctx, NewRefreshSnapshotCommand())
type RefreshSnapshotCommandHandler struct {
	workingSet ports.WorkingSet
	orderStore ports.OrderStore
	visibility services.VisibilityPolicy
	station    order.Station
	viewer     *kernel.StaffID
	logger     *slog.Logger
}

// NewRefreshSnapshotCommandHandler creates a handler for snapshot refreshes.
func NewRefreshSnapshotCommandHandler(
	workingSet ports.WorkingSet,
	orderStore ports.OrderStore,
	visibility services.VisibilityPolicy,
	station order.Station,
	viewer *kernel.StaffID,
	logger *slog.Logger,
) RefreshSnapshotCommandHandler {
	return RefreshSnapshotCommandHandler{
		workingSet: workingSet,
		orderStore: orderStore,
		visibility: visibility,
		station:    station,
		viewer:     viewer,
		logger:     logger.With("component", "refresh_snapshot_handler"),
	}
}

// Handle processes the snapshot refresh command.
// Fetches the full order set, filters it by visibility, and atomically
// replaces the working set with the result.
func (h RefreshSnapshotCommandHandler) Handle(ctx context.Context, cmd RefreshSnapshotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	fetched, err := h.orderStore.GetOrders(ctx)
	if err != nil {
		return err
	}

	held := make(map[string]*order.Order)
	if current, getErr := h.workingSet.GetAll(ctx); getErr == nil {
		for _, o := range current {
			held[o.ID().String()] = o
		}
	}

	visible := make([]*order.Order, 0, len(fetched))
	for _, o := range fetched {
		if !h.visibility.ShouldShow(o, h.station, h.viewer) {
			continue
		}
		if local, ok := held[o.ID().String()]; ok && local.Status() != o.Status() {
			h.logger.WarnContext(ctx, "Stale local state overwritten by snapshot",
				"orderId", o.ID().String(),
				"localStatus", local.Status().String(),
				"storeStatus", o.Status().String(),
			)
		}
		visible = append(visible, o)
	}

	return h.workingSet.ReplaceAll(ctx, visible)
}
