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

// IngestNewOrderCommandHandler merges a new-order event into the working set.
// Orders the station should not see are dropped; orders already held are left
// alone, so replayed events are harmless.
//
// Example:
//
//	handler := NewIngestNewOrderCommandHandler(
//	    workingSet, policy, order.StationKitchen, viewer,
//	)
//	cmd, _ := NewIngestNewOrderCommand(aggregate)
//	_ = handler.Handle(ctx, cmd)
type IngestNewOrderCommandHandler struct {
	workingSet ports.WorkingSet
	visibility services.VisibilityPolicy
	station    order.Station
	viewer     *kernel.StaffID
}

// NewIngestNewOrderCommandHandler creates a handler for new-order events.
// The station and viewer identify whose queue the working set backs; a nil
// viewer means the station has no resolved staff identity and visibility
// fails open.
func NewIngestNewOrderCommandHandler(
	workingSet ports.WorkingSet,
	visibility services.VisibilityPolicy,
	station order.Station,
	viewer *kernel.StaffID,
) IngestNewOrderCommandHandler {
	return IngestNewOrderCommandHandler{
		workingSet: workingSet,
		visibility: visibility,
		station:    station,
		viewer:     viewer,
	}
}

// Handle processes the new-order command.
// Duplicate events and orders outside the station's view are no-ops.
func (h IngestNewOrderCommandHandler) Handle(ctx context.Context, cmd IngestNewOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate := cmd.Order()
	if !h.visibility.ShouldShow(aggregate, h.station, h.viewer) {
		return nil
	}

	if _, err := h.workingSet.Get(ctx, aggregate.ID()); err == nil {
		// Already held; a replayed create never clobbers local state.
		return nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	return h.workingSet.Upsert(ctx, aggregate)
}
