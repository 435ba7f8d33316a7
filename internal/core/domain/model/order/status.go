package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested action is not legal from
// the order's current status. Rejection is a hard invariant: the order record
// is left untouched.
var ErrInvalidTransition = errors.New("transition is not allowed from the current status")

// Status represents the lifecycle state of an order as it moves through the
// fulfillment pipeline. The macro-progression is linear with a parallel
// fork/join in the middle:
//
//	KitchenQueue ─> KitchenProcessing ─> KitchenReady ─┐
//	                                                   ├─> FinalCheckQueue ─> FinalCheckProcessing ─> Completed
//	DesignQueue ──> DesignProcessing ──> DesignReady ──┘            │
//	                                                                └──(send-back)──> KitchenQueue / DesignQueue
//
// ParallelProcessing is a macro-status used while an order requires both the
// kitchen and the design leg and at least one of them is still open; the
// true per-leg state then lives in the order's ParallelState.
//
// Status is a value object that validates state transitions and provides the
// wire representation used by the order store and the event transport.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// KitchenQueue means the order awaits a kitchen claim.
	KitchenQueue

	// KitchenProcessing means a staff member is working the kitchen leg.
	KitchenProcessing

	// KitchenReady means the kitchen leg is finished.
	KitchenReady

	// DesignQueue means the order awaits a design claim.
	DesignQueue

	// DesignProcessing means a staff member is working the design leg.
	DesignProcessing

	// DesignReady means the design leg is finished.
	DesignReady

	// ParallelProcessing is the macro-status of an order whose kitchen and
	// design legs are in flight simultaneously.
	ParallelProcessing

	// FinalCheckQueue means the order awaits final review.
	FinalCheckQueue

	// FinalCheckProcessing means a reviewer is inspecting the order.
	FinalCheckProcessing

	// Completed is the terminal status after final check sign-off.
	Completed
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "UNKNOWN",
		KitchenQueue:         "KITCHEN_QUEUE",
		KitchenProcessing:    "KITCHEN_PROCESSING",
		KitchenReady:         "KITCHEN_READY",
		DesignQueue:          "DESIGN_QUEUE",
		DesignProcessing:     "DESIGN_PROCESSING",
		DesignReady:          "DESIGN_READY",
		ParallelProcessing:   "PARALLEL_PROCESSING",
		FinalCheckQueue:      "FINAL_CHECK_QUEUE",
		FinalCheckProcessing: "FINAL_CHECK_PROCESSING",
		Completed:            "COMPLETED",
	}
}

// StatusFromString parses the wire representation of a status.
// "FINAL_CHECK_COMPLETE" is accepted as a legacy alias of "COMPLETED".
func StatusFromString(s string) (Status, error) {
	if s == "FINAL_CHECK_COMPLETE" {
		return Completed, nil
	}
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known order status", s),
	)
}

// Validate checks if the Status value is valid. Unknown (0) and any
// out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsKitchen reports whether the status belongs to the kitchen leg.
func (s Status) IsKitchen() bool {
	return s == KitchenQueue || s == KitchenProcessing || s == KitchenReady
}

// IsDesign reports whether the status belongs to the design leg.
func (s Status) IsDesign() bool {
	return s == DesignQueue || s == DesignProcessing || s == DesignReady
}

// IsFinalCheck reports whether the status belongs to the final check stage.
func (s Status) IsFinalCheck() bool {
	return s == FinalCheckQueue || s == FinalCheckProcessing
}

// IsQueue reports whether the status is a waiting-for-claim status.
func (s Status) IsQueue() bool {
	return s == KitchenQueue || s == DesignQueue || s == FinalCheckQueue
}

// IsProcessing reports whether a staff member is actively working the order
// at some stage. ParallelProcessing is a macro-status, not a claim, and is
// excluded.
func (s Status) IsProcessing() bool {
	return s == KitchenProcessing || s == DesignProcessing || s == FinalCheckProcessing
}

// IsReady reports whether a leg has reached its ready terminal.
func (s Status) IsReady() bool {
	return s == KitchenReady || s == DesignReady
}

// StartProcessing transitions a queue status to its processing counterpart.
//
// Valid transitions:
//   - KitchenQueue -> KitchenProcessing
//   - DesignQueue -> DesignProcessing
//   - FinalCheckQueue -> FinalCheckProcessing (re-processing after a
//     send-back round trip is explicitly allowed)
//
// Returns ErrInvalidTransition for any other origin.
func (s Status) StartProcessing() (Status, error) {
	switch s {
	case KitchenQueue:
		return KitchenProcessing, nil
	case DesignQueue:
		return DesignProcessing, nil
	case FinalCheckQueue:
		return FinalCheckProcessing, nil
	default:
		return Unknown, newInvalidTransitionError("start processing", s)
	}
}

// MarkReady transitions a processing status to its ready terminal.
// At final check there is no separate ready state: marking a final check
// review ready completes the order.
//
// Valid transitions:
//   - KitchenProcessing -> KitchenReady
//   - DesignProcessing -> DesignReady
//   - FinalCheckProcessing -> Completed
//
// Returns ErrInvalidTransition for any other origin.
func (s Status) MarkReady() (Status, error) {
	switch s {
	case KitchenProcessing:
		return KitchenReady, nil
	case DesignProcessing:
		return DesignReady, nil
	case FinalCheckProcessing:
		return Completed, nil
	default:
		return Unknown, newInvalidTransitionError("mark ready", s)
	}
}

func newInvalidTransitionError(action string, from Status) error {
	return fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, action, from)
}
