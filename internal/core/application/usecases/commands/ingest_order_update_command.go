package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrIngestOrderUpdateCommandIsNotConstructed = errors.New(
	"IngestOrderUpdateCommand must be created via NewIngestOrderUpdateCommand constructor",
)

// IngestOrderUpdateCommand represents a partial order update delivered by the
// event transport, to be merged into the station's working set.
//
// Example:
//
//	cmd, err := NewIngestOrderUpdateCommand(orderID, patch)
//	if err != nil {
//	    return fmt.Errorf("malformed status-update event: %w", err)
//	}
//
//	handler := NewIngestOrderUpdateCommandHandler(
//	    workingSet, orderStore, policy, station, viewer,
//	)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type IngestOrderUpdateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	patch   order.Patch

	guard guard.ConstructorGuard
}

// NewIngestOrderUpdateCommand creates a command carrying the partial update.
// Validates the order identifier and the set fields of the patch.
func NewIngestOrderUpdateCommand(orderID kernel.OrderID, patch order.Patch) (IngestOrderUpdateCommand, error) {
	if err := errors.Join(orderID.Validate(), patch.Validate()); err != nil {
		return IngestOrderUpdateCommand{}, err
	}

	return IngestOrderUpdateCommand{
		orderID: orderID,
		patch:   patch,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIngestOrderUpdateCommandIsNotConstructed if validation fails.
func (c IngestOrderUpdateCommand) Validate() error {
	return c.guard.Validate(ErrIngestOrderUpdateCommandIsNotConstructed)
}

// OrderID returns the identifier of the updated order.
func (c IngestOrderUpdateCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Patch returns the partial update.
func (c IngestOrderUpdateCommand) Patch() order.Patch {
	return c.patch
}
