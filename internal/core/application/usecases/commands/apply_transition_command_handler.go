package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ApplyTransitionCommandHandler executes one stage transition end to end:
// it applies the action to the local copy, optimistically publishes the
// result to the working set, submits the change to the order store, and
// reconciles against the store's answer.
//
// Failure handling follows the optimistic model: a store rejection or a
// transport failure rolls the working set back to the pre-transition
// snapshot and the error is surfaced to the acting staff member. Nothing in
// this handler is fatal to the station process.
//
// Example:
//
//	handler := NewApplyTransitionCommandHandler(workingSet, orderStore, policy)
//	cmd, _ := NewApplyTransitionCommand(
//	    orderID, ActionMarkReady, order.StationKitchen, staffID,
//	    "less frosting", nil, "",
//	)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // Local state already reverted; show the reason.
//	    return err
//	}
type ApplyTransitionCommandHandler struct {
	workingSet ports.WorkingSet
	orderStore ports.OrderStore
	visibility services.VisibilityPolicy
}

// NewApplyTransitionCommandHandler creates a handler for stage transitions.
// Requires the station's working set, the order store client, and the
// visibility policy used to decide whether the reconciled order stays in
// the local set.
func NewApplyTransitionCommandHandler(
	workingSet ports.WorkingSet,
	orderStore ports.OrderStore,
	visibility services.VisibilityPolicy,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		workingSet: workingSet,
		orderStore: orderStore,
		visibility: visibility,
	}
}

// Handle processes the transition command.
// An action illegal from the order's current status returns the domain's
// transition error and leaves the working set untouched.
func (h ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	current, err := h.workingSet.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	next, err := h.apply(current, cmd)
	if err != nil {
		return err
	}

	// Optimistic apply: the station sees the outcome immediately.
	if err = h.workingSet.Upsert(ctx, next); err != nil {
		return err
	}

	authoritative, err := h.orderStore.SubmitStatusChange(ctx, cmd.OrderID(), h.statusChange(next, cmd))
	if err != nil {
		// Roll back to the pre-transition snapshot and surface the reason.
		_ = h.workingSet.Upsert(ctx, current)
		return err
	}

	staff := cmd.StaffID()
	if !h.visibility.ShouldShow(authoritative, cmd.Station(), &staff) {
		return h.workingSet.Remove(ctx, cmd.OrderID())
	}
	return h.workingSet.Upsert(ctx, authoritative)
}

// apply routes the action to the aggregate's transition method.
func (h ApplyTransitionCommandHandler) apply(current *order.Order, cmd ApplyTransitionCommand) (*order.Order, error) {
	switch cmd.Action() {
	case ActionStartProcessing:
		return current.StartProcessing(cmd.Station(), cmd.StaffID())
	case ActionMarkReady:
		return current.MarkReady(cmd.Station(), cmd.StaffID(), cmd.Notes())
	case ActionSendToDesign:
		return current.SendToDesign(cmd.Notes())
	case ActionSendToFinalCheck:
		return current.SendToFinalCheck(cmd.Notes())
	case ActionSendBack:
		return current.SendBack(*cmd.ReturnDestination(), cmd.ReturnReason(), time.Now().UTC())
	default:
		return nil, ErrApplyTransitionCommandIsNotConstructed
	}
}

// statusChange builds the store submission from the transitioned order.
func (h ApplyTransitionCommandHandler) statusChange(next *order.Order, cmd ApplyTransitionCommand) ports.StatusChange {
	staff := cmd.StaffID()
	change := ports.StatusChange{
		Status:    next.Status(),
		Parallel:  next.Parallel(),
		Station:   cmd.Station(),
		TeamNotes: cmd.Notes(),
	}
	switch cmd.Action() {
	case ActionStartProcessing, ActionMarkReady:
		change.ClaimedBy = &staff
	case ActionSendBack:
		change.ReturnDestination = cmd.ReturnDestination()
		change.ReturnReason = cmd.ReturnReason()
	}
	return change
}
