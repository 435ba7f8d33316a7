package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApplyTransitionCommandIsNotConstructed = errors.New(
		"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
	)
	ErrReturnDestinationIsRequired = errors.New("send back requires a return destination")
	ErrReturnReasonIsRequired      = errors.New("send back requires a return reason")
)

// ApplyTransitionCommand represents one staff-requested stage transition on
// one order: claiming it, finishing a leg, forwarding it, or sending it back
// from final check.
//
// Example:
//
//	cmd, err := NewApplyTransitionCommand(
//	    orderID, ActionStartProcessing, order.StationKitchen, staffID,
//	    "", nil, "",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	handler := NewApplyTransitionCommandHandler(workingSet, orderStore, policy)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // Surface the reason to the acting staff member; local state is
//	    // already rolled back.
//	    return err
//	}
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	action  Action
	station order.Station
	staffID kernel.StaffID
	notes   string

	returnDestination *order.Leg
	returnReason      string

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a command for one stage transition.
// Validates the identifiers, the action and the station, and requires a
// return destination and reason for send-back actions.
func NewApplyTransitionCommand(
	orderID kernel.OrderID,
	action Action,
	station order.Station,
	staffID kernel.StaffID,
	notes string,
	returnDestination *order.Leg,
	returnReason string,
) (ApplyTransitionCommand, error) {
	cmd := ApplyTransitionCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
		cmd.setStation(station),
		cmd.setStaffID(staffID),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}
	if err := cmd.setReturn(returnDestination, returnReason); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApplyTransitionCommandIsNotConstructed if validation fails.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ApplyTransitionCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Action returns the requested transition action.
func (c ApplyTransitionCommand) Action() Action {
	return c.action
}

// Station returns the stage the acting staff member works at.
func (c ApplyTransitionCommand) Station() order.Station {
	return c.station
}

// StaffID returns the acting staff member.
func (c ApplyTransitionCommand) StaffID() kernel.StaffID {
	return c.staffID
}

// Notes returns the stage notes entered by the staff member, if any.
func (c ApplyTransitionCommand) Notes() string {
	return c.notes
}

// ReturnDestination returns the leg a send-back targets, or nil.
func (c ApplyTransitionCommand) ReturnDestination() *order.Leg {
	return c.returnDestination
}

// ReturnReason returns the send-back reason, if any.
func (c ApplyTransitionCommand) ReturnReason() string {
	return c.returnReason
}

func (c *ApplyTransitionCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyTransitionCommand) setAction(action Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *ApplyTransitionCommand) setStation(station order.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}

	c.station = station
	return nil
}

func (c *ApplyTransitionCommand) setStaffID(staffID kernel.StaffID) error {
	if err := staffID.Validate(); err != nil {
		return err
	}

	c.staffID = staffID
	return nil
}

func (c *ApplyTransitionCommand) setReturn(destination *order.Leg, reason string) error {
	if c.action != ActionSendBack {
		return nil
	}
	if destination == nil {
		return ErrReturnDestinationIsRequired
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return ErrReturnReasonIsRequired
	}

	leg := *destination
	c.returnDestination = &leg
	c.returnReason = reason
	return nil
}
