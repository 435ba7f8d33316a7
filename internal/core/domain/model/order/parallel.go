package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ParallelState holds the true per-leg state of an order that requires both
// the kitchen and the design leg. While either leg is open the order's
// Status is the ParallelProcessing macro-status and this record is
// authoritative; once both legs reach ready the order joins into
// FinalCheckQueue and the record is kept for audit.
//
// ParallelState is an immutable value object: the with* helpers return a new
// value and never modify the receiver.
type ParallelState struct {
	kitchen Status
	design  Status
}

// NewParallelState creates the per-leg state record. Each leg status must
// belong to its own leg family (queue, processing or ready).
func NewParallelState(kitchen, design Status) (ParallelState, error) {
	if !kitchen.IsKitchen() {
		return ParallelState{}, errs.NewValueIsInvalidErrorWithCause(
			"parallel kitchen status",
			fmt.Errorf("%s is not a kitchen leg status", kitchen),
		)
	}
	if !design.IsDesign() {
		return ParallelState{}, errs.NewValueIsInvalidErrorWithCause(
			"parallel design status",
			fmt.Errorf("%s is not a design leg status", design),
		)
	}
	return ParallelState{kitchen: kitchen, design: design}, nil
}

// Kitchen returns the kitchen leg status.
func (p ParallelState) Kitchen() Status {
	return p.kitchen
}

// Design returns the design leg status.
func (p ParallelState) Design() Status {
	return p.design
}

// Leg returns the status of the given leg.
func (p ParallelState) Leg(leg Leg) Status {
	if leg == LegDesign {
		return p.design
	}
	return p.kitchen
}

// BothReady reports whether both legs have reached their ready terminal,
// i.e. the join condition for advancing to final check.
func (p ParallelState) BothReady() bool {
	return p.kitchen == KitchenReady && p.design == DesignReady
}

// Validate checks that both leg statuses belong to their leg families.
// A zero value fails because Unknown belongs to neither.
func (p ParallelState) Validate() error {
	_, err := NewParallelState(p.kitchen, p.design)
	return err
}

// withLeg returns a copy of the state with the given leg replaced.
func (p ParallelState) withLeg(leg Leg, status Status) ParallelState {
	if leg == LegDesign {
		return ParallelState{kitchen: p.kitchen, design: status}
	}
	return ParallelState{kitchen: status, design: p.design}
}
