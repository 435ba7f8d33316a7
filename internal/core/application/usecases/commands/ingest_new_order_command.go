package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrIngestNewOrderCommandIsNotConstructed = errors.New(
	"IngestNewOrderCommand must be created via NewIngestNewOrderCommand constructor",
)

// IngestNewOrderCommand represents a freshly created order delivered by the
// event transport, to be added to the station's working set if the station
// should see it.
//
// Example:
//
//	cmd, err := NewIngestNewOrderCommand(aggregate)
//	if err != nil {
//	    return fmt.Errorf("malformed new-order event: %w", err)
//	}
//
//	handler := NewIngestNewOrderCommandHandler(workingSet, policy, station, viewer)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type IngestNewOrderCommand struct { //nolint:recvcheck //using for validation
	aggregate *order.Order

	guard guard.ConstructorGuard
}

// NewIngestNewOrderCommand creates a command carrying the new order.
// The aggregate must have been constructed through the order package.
func NewIngestNewOrderCommand(aggregate *order.Order) (IngestNewOrderCommand, error) {
	if err := aggregate.Validate(); err != nil {
		return IngestNewOrderCommand{}, err
	}

	return IngestNewOrderCommand{
		aggregate: aggregate,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIngestNewOrderCommandIsNotConstructed if validation fails.
func (c IngestNewOrderCommand) Validate() error {
	return c.guard.Validate(ErrIngestNewOrderCommandIsNotConstructed)
}

// Order returns the new order aggregate.
func (c IngestNewOrderCommand) Order() *order.Order {
	return c.aggregate
}
